package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/rolling-paper/internal/app"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/service"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/MKhiriev/rolling-paper/internal/utils"
	"github.com/MKhiriev/rolling-paper/models"
	"github.com/go-chi/chi/v5"
)

// boardView is the JSON payload of a single user's board.
type boardView struct {
	Owner models.User   `json:"owner"`
	Notes []models.Note `json:"notes"`
}

// board serves the notes on the addressed user's board.
func (h *Handler) board(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		log.Err(err).Msg(app.MsgInvalidUserID)
		http.Error(w, app.MsgInvalidUserID, http.StatusBadRequest)
		return
	}

	owner, err := h.services.UserService.GetUser(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			http.Error(w, app.MsgUserNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Int64("owner", ownerID).Msg("board owner lookup failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	notes, err := h.services.NoteService.ListForRecipient(ctx, ownerID)
	if err != nil {
		log.Err(err).Int64("owner", ownerID).Msg("listing board notes failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	owner.ProfilePicture = h.services.MediaService.ResolveURL(owner.ProfilePicture)
	utils.WriteJSON(w, boardView{Owner: owner, Notes: notes}, http.StatusOK)
}

// postMessage posts a new note onto a recipient's board. The form may carry
// an attachment file alongside recipient_id, content, and theme.
func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	author, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Err(err).Msg(app.MsgInvalidFormData)
		http.Error(w, app.MsgInvalidFormData, http.StatusBadRequest)
		return
	}

	recipientID, err := strconv.ParseInt(r.PostFormValue("recipient_id"), 10, 64)
	if err != nil {
		log.Err(err).Msg(app.MsgInvalidRecipientID)
		http.Error(w, app.MsgInvalidRecipientID, http.StatusBadRequest)
		return
	}

	attachment, ok := h.acceptUploadedFile(w, r, "file")
	if !ok {
		return
	}

	_, err = h.services.NoteService.PostNote(ctx, author, recipientID,
		r.PostFormValue("content"), attachment, r.PostFormValue("theme"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg(app.MsgInvalidNoteData)
			http.Error(w, app.MsgInvalidNoteData, http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUserNotFound):
			log.Err(err).Int64("recipient", recipientID).Msg(app.MsgRecipientNotFound)
			http.Error(w, app.MsgRecipientNotFound, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("posting note failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, fmt.Sprintf("/paper/%d", recipientID), http.StatusSeeOther)
}

// updatePosition moves a note on the caller's board. Responds with an empty
// 200 so board scripts can fire-and-forget.
func (h *Handler) updatePosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var position models.NotePosition
	if err := json.NewDecoder(r.Body).Decode(&position); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSONProvided)
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.Reposition(ctx, caller, position); err != nil {
		switch {
		case errors.Is(err, service.ErrNotBoardOwner):
			log.Err(err).Str("note", position.ID).Msg("caller does not own the board")
			http.Error(w, app.MsgOnlyBoardOwnerMayMoveNotes, http.StatusForbidden)
			return
		case errors.Is(err, store.ErrNoteNotFound):
			log.Err(err).Str("note", position.ID).Msg(app.MsgNoteNotFound)
			http.Error(w, app.MsgNoteNotFound, http.StatusNotFound)
			return
		default:
			log.Err(err).Str("note", position.ID).Msg("reposition failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

// deleteMessage removes the caller's own note. A note that is already gone
// degrades to the redirect so double-clicks stay harmless.
func (h *Handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID := chi.URLParam(r, "id")

	if err := h.services.NoteService.DeleteNote(ctx, caller, noteID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthor):
			log.Err(err).Str("note", noteID).Msg("caller is not the author")
			http.Error(w, app.MsgOnlyAuthorMayDeleteNote, http.StatusForbidden)
			return
		case errors.Is(err, store.ErrNoteNotFound):
			log.Debug().Str("note", noteID).Msg("note already gone")
		default:
			log.Err(err).Str("note", noteID).Msg("note deletion failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	back := r.Referer()
	if back == "" {
		back = "/users"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// myMessages serves the notes the caller has sent, joined with recipient
// display names.
func (h *Handler) myMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	sent, err := h.services.NoteService.ListByAuthor(ctx, caller)
	if err != nil {
		log.Err(err).Msg("listing sent notes failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, sent, http.StatusOK)
}
