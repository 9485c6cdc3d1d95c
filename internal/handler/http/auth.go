package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/rolling-paper/internal/app"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/service"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/MKhiriev/rolling-paper/internal/utils"
	"github.com/MKhiriev/rolling-paper/models"
)

// maxUploadSize caps multipart request bodies (note attachments, profile
// pictures) at 10 MB.
const maxUploadSize = 10 << 20

// root is the entry point of the site: an already authenticated caller is
// sent straight to the user directory, everyone else gets the login view.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authenticator.Identify(r); err == nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	utils.WriteJSON(w, map[string]string{"view": "login"}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg(app.MsgInvalidFormData)
		http.Error(w, app.MsgInvalidFormData, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Login(ctx, r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg(app.MsgInvalidDataProvided)
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg(app.MsgWrongUsernameOrPassword)
			http.Error(w, app.MsgWrongUsernameOrPassword, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	credential, err := h.authenticator.Issue(ctx, w, user)
	if err != nil {
		log.Err(err).Msg("issuing credential failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully logged in")

	// the token variant hands the credential to API clients; the session
	// variant carries everything in the cookie
	if credential != "" {
		utils.WriteJSON(w, map[string]string{"token": credential}, http.StatusOK)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Err(err).Msg(app.MsgInvalidFormData)
		http.Error(w, app.MsgInvalidFormData, http.StatusBadRequest)
		return
	}

	password := r.PostFormValue("password")
	if password != r.PostFormValue("confirm_password") {
		log.Error().Msg(app.MsgPasswordConfirmationMismatch)
		http.Error(w, app.MsgPasswordConfirmationMismatch, http.StatusBadRequest)
		return
	}

	// the optional avatar is validated and stored before the account is
	// created: a rejected file must not leave a half-registered user behind
	ref, ok := h.acceptUploadedFile(w, r, "profile_pic")
	if !ok {
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx,
		r.PostFormValue("username"), password, r.PostFormValue("name"), r.PostFormValue("nickname"))
	if err != nil {
		if ref != "" {
			if removeErr := h.services.MediaService.Remove(ctx, ref); removeErr != nil {
				log.Err(removeErr).Str("file", ref).Msg("removing stored avatar after failed registration failed")
			}
		}

		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg(app.MsgInvalidDataProvided)
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			log.Err(err).Msg(app.MsgUsernameAlreadyExists)
			http.Error(w, app.MsgUsernameAlreadyExists, http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	if ref != "" {
		if err := h.services.UserService.UpdateProfile(ctx, user.UserID, models.ProfileUpdate{ProfilePicture: &ref}); err != nil {
			log.Err(err).Int64("id", user.UserID).Msg("storing avatar reference failed")
		}
	}

	log.Debug().Int64("id", user.UserID).Str("username", user.Username).Msg("user registered")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.authenticator.Clear(r.Context(), w, r); err != nil {
		log.Err(err).Msg("clearing credential failed")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// acceptUploadedFile pulls the named optional file out of a multipart form
// and stores it through the media service. The ok result is false when a
// response has already been written (validation failure); ref is "" when
// the form simply carries no such file.
func (h *Handler) acceptUploadedFile(w http.ResponseWriter, r *http.Request, field string) (ref string, ok bool) {
	log := logger.FromRequest(r)

	if r.MultipartForm == nil {
		return "", true
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", true
		}
		log.Err(err).Str("field", field).Msg("reading uploaded file failed")
		http.Error(w, app.MsgInvalidUploadedFile, http.StatusBadRequest)
		return "", false
	}
	defer file.Close()

	ref, err = h.services.MediaService.Accept(r.Context(), header.Filename, file)
	if err != nil {
		log.Err(err).Str("file", header.Filename).Msg("uploaded file rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}

	return ref, true
}
