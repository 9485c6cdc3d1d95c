package service

import (
	"github.com/MKhiriev/rolling-paper/internal/config"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	NoteService    NoteService
	MediaService   MediaService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	mediaService := NewMediaService(storages.Media, logger)

	return &Services{
		AuthService:    NewAuthService(storages.User, cfg.Auth, logger),
		UserService:    NewUserService(storages.User, storages.Note, storages.Session, mediaService, cfg.Storage.Files, logger),
		NoteService:    NewNoteService(storages.Note, storages.User, mediaService, logger),
		MediaService:   mediaService,
		AppInfoService: appInfoService,
	}, nil
}
