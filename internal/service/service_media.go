package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/MKhiriev/rolling-paper/internal/utils"
	"github.com/MKhiriev/rolling-paper/internal/validators"
)

// refPrefix is the directory segment baked into every stored media
// reference. References look like "uploads/<random>.<ext>" and resolve to
// "/static/uploads/<random>.<ext>" when served.
const refPrefix = "uploads"

// mediaService is the concrete implementation of MediaService. It validates
// original file names, generates unguessable stored names, and delegates
// byte movement to the MediaStore.
type mediaService struct {
	mediaStore store.MediaStore
	validator  validators.Validator
	generator  *utils.UUIDGenerator

	logger *logger.Logger
}

// NewMediaService constructs a MediaService on top of the given MediaStore.
func NewMediaService(mediaStore store.MediaStore, logger *logger.Logger) MediaService {
	return &mediaService{
		mediaStore: mediaStore,
		validator:  validators.NewUploadValidator(),
		generator:  utils.NewUUIDGenerator(),
		logger:     logger,
	}
}

// Accept validates the original file name against the extension allow-list,
// stores the content under a server-generated name, and returns the stored
// media reference. The original name never reaches the file system.
func (m *mediaService) Accept(ctx context.Context, originalName string, content io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	if err := m.validator.Validate(ctx, originalName); err != nil {
		log.Err(err).Str("file", originalName).Msg("rejected uploaded file")
		return "", err
	}

	ext := strings.ToLower(originalName[strings.LastIndex(originalName, ".")+1:])
	storedName := strings.ReplaceAll(m.generator.Generate(), "-", "") + "." + ext

	if err := m.mediaStore.Save(ctx, storedName, content); err != nil {
		log.Err(err).Str("file", storedName).Msg("saving uploaded file failed")
		return "", fmt.Errorf("saving uploaded file failed: %w", err)
	}

	return path.Join(refPrefix, storedName), nil
}

// ResolveURL converts a stored media reference into the URL path the HTTP
// layer serves it under. An empty reference resolves to "".
func (m *mediaService) ResolveURL(ref string) string {
	if ref == "" {
		return ""
	}

	return "/static/" + strings.TrimPrefix(ref, "/")
}

// Remove deletes the stored file behind a media reference. Empty references
// and already-removed files are silently ignored.
func (m *mediaService) Remove(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}

	return m.mediaStore.Remove(ctx, path.Base(ref))
}
