package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/rolling-paper/internal/app"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/service"
	"github.com/MKhiriev/rolling-paper/internal/utils"
	"github.com/MKhiriev/rolling-paper/models"
	"github.com/go-chi/chi/v5"
)

// editProfile applies a partial profile update from form fields. Empty
// fields are left untouched; an uploaded picture replaces the stored one.
func (h *Handler) editProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Err(err).Msg(app.MsgInvalidFormData)
		http.Error(w, app.MsgInvalidFormData, http.StatusBadRequest)
		return
	}

	var update models.ProfileUpdate
	if name := r.PostFormValue("name"); name != "" {
		update.Name = &name
	}
	if nickname := r.PostFormValue("nickname"); nickname != "" {
		update.Nickname = &nickname
	}

	ref, ok := h.acceptUploadedFile(w, r, "profile_pic")
	if !ok {
		return
	}
	if ref != "" {
		update.ProfilePicture = &ref
	}

	if err := h.services.UserService.UpdateProfile(ctx, caller.UserID, update); err != nil {
		log.Err(err).Int64("id", caller.UserID).Msg("profile update failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// changePassword rotates the caller's password after verifying the current
// one and the confirmation pair.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg(app.MsgInvalidFormData)
		http.Error(w, app.MsgInvalidFormData, http.StatusBadRequest)
		return
	}

	err := h.services.UserService.ChangePassword(ctx, caller.UserID,
		r.PostFormValue("current_password"), r.PostFormValue("new_password"), r.PostFormValue("confirm_password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			log.Err(err).Msg(app.MsgPasswordConfirmationMismatch)
			http.Error(w, app.MsgPasswordConfirmationMismatch, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrWrongCurrentPassword):
			log.Err(err).Msg(app.MsgWrongCurrentPassword)
			http.Error(w, app.MsgWrongCurrentPassword, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg(app.MsgInvalidPasswordData)
			http.Error(w, app.MsgInvalidPasswordData, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("password change failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// deleteProfile removes the caller's account with the full cascade and
// invalidates the credential.
func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.UserService.DeleteAccount(ctx, caller.UserID); err != nil {
		log.Err(err).Int64("id", caller.UserID).Msg("account deletion failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.authenticator.Clear(ctx, w, r); err != nil {
		log.Err(err).Msg("clearing credential failed")
	}

	log.Info().Int64("id", caller.UserID).Msg("account deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// uploadProfilePicture stores a new avatar. Callers may only upload for
// themselves.
func (h *Handler) uploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		log.Err(err).Msg(app.MsgInvalidUserID)
		http.Error(w, app.MsgInvalidUserID, http.StatusBadRequest)
		return
	}

	if targetID != caller.UserID {
		log.Error().Int64("caller", caller.UserID).Int64("target", targetID).Msg("avatar upload for another user rejected")
		http.Error(w, app.MsgAvatarUploadForbidden, http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Err(err).Msg(app.MsgInvalidFormData)
		http.Error(w, app.MsgInvalidFormData, http.StatusBadRequest)
		return
	}

	ref, ok := h.acceptUploadedFile(w, r, "profile_pic")
	if !ok {
		return
	}
	if ref == "" {
		http.Error(w, app.MsgNoPictureUploaded, http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.UpdateProfile(ctx, caller.UserID, models.ProfileUpdate{ProfilePicture: &ref}); err != nil {
		log.Err(err).Int64("id", caller.UserID).Msg("storing avatar reference failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]string{"profile_picture": h.services.MediaService.ResolveURL(ref)}, http.StatusOK)
}
