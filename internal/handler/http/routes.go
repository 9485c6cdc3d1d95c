package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.root)
		r.Post("/login", h.login)
		r.Post("/register", h.register)
		r.Get("/api/version", h.getAppVersion)
	})

	// routes behind the authenticator
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/users", h.listUsers)
		r.Get("/logout", h.logout)

		r.Get("/paper/{userID}", h.board)
		r.Post("/message", h.postMessage)
		r.Post("/xy_update", h.updatePosition)
		r.Post("/delete_message/{id}", h.deleteMessage)
		r.Get("/my_messages", h.myMessages)

		r.Post("/edit_profile", h.editProfile)
		r.Post("/change_password", h.changePassword)
		r.Post("/delete_profile", h.deleteProfile)
		r.Post("/upload_profile_picture/{userID}", h.uploadProfilePicture)
	})

	// uploaded media is served read-only under the static prefix
	fileServer := http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(h.uploadDir)))
	router.Get("/static/uploads/*", fileServer.ServeHTTP)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
