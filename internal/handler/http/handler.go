package http

import (
	"github.com/MKhiriev/rolling-paper/internal/config"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/service"
	"github.com/MKhiriev/rolling-paper/internal/store"
)

// Handler owns the HTTP route handlers and the authenticator variant
// selected at startup. All request handling goes through the services; the
// handler layer only translates between HTTP and the service contracts.
type Handler struct {
	services      *service.Services
	authenticator Authenticator

	// uploadDir is served read-only under /static/uploads/.
	uploadDir string

	logger *logger.Logger
}

// NewHandler constructs the HTTP handler with the authenticator variant
// named by cfg.Auth.Mode. Exactly one variant is active per deployment.
func NewHandler(services *service.Services, sessions store.SessionStore, cfg *config.StructuredConfig, logger *logger.Logger) (*Handler, error) {
	authenticator, err := newAuthenticator(services, sessions, cfg.Auth)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("auth_mode", cfg.Auth.Mode).Msg("http handler created")
	return &Handler{
		services:      services,
		authenticator: authenticator,
		uploadDir:     cfg.Storage.Files.UploadDir,
		logger:        logger,
	}, nil
}
