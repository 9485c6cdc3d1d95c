package http

import (
	"net/http"

	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/utils"
)

// listUsers serves the user directory, sorted by display name, with avatar
// references resolved to servable URLs.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		log.Err(err).Msg("listing users failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	for i := range users {
		users[i].ProfilePicture = h.services.MediaService.ResolveURL(users[i].ProfilePicture)
	}

	utils.WriteJSON(w, users, http.StatusOK)
}
