package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MKhiriev/rolling-paper/internal/logger"
)

// fileMediaStore keeps uploaded attachments and profile pictures as plain
// files under a base directory. Stored names are generated by the service
// layer; the store never interprets them beyond joining with the base path.
type fileMediaStore struct {
	logger  *logger.Logger
	baseDir string
}

// NewFileMediaStore constructs a [MediaStore] rooted at baseDir, creating
// the directory when it does not exist yet.
func NewFileMediaStore(baseDir string, logger *logger.Logger) (MediaStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		logger.Err(err).Str("func", "NewFileMediaStore").Msg("error creating upload directory")
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	logger.Debug().Str("dir", baseDir).Msg("creating file media store")
	return &fileMediaStore{
		logger:  logger,
		baseDir: baseDir,
	}, nil
}

// Save writes src to a file with the given stored name. An existing file
// with the same name is overwritten; generated names make collisions a
// non-issue in practice.
func (s *fileMediaStore) Save(ctx context.Context, name string, src io.Reader) error {
	log := logger.FromContext(ctx)

	dst, err := os.Create(filepath.Join(s.baseDir, filepath.Base(name)))
	if err != nil {
		log.Err(err).Str("func", "*fileMediaStore.Save").Msg("error creating file")
		return fmt.Errorf("error creating file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		log.Err(err).Str("func", "*fileMediaStore.Save").Msg("error writing file")
		return fmt.Errorf("error writing file: %w", err)
	}

	return nil
}

// Remove deletes the stored file. A missing file is not an error.
func (s *fileMediaStore) Remove(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	err := os.Remove(filepath.Join(s.baseDir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		log.Err(err).Str("func", "*fileMediaStore.Remove").Msg("error removing file")
		return fmt.Errorf("error removing file: %w", err)
	}

	return nil
}
