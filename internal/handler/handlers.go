package handler

import (
	"github.com/MKhiriev/rolling-paper/internal/config"
	"github.com/MKhiriev/rolling-paper/internal/handler/http"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/service"
	"github.com/MKhiriev/rolling-paper/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	httpHandler, err := http.NewHandler(services, storages.Session, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Handlers{HTTP: httpHandler}, nil
}
