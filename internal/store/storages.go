package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/rolling-paper/internal/config"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/migrations"
)

// Storages bundles every persistence backend the service layer depends on.
type Storages struct {
	User    UserRepository
	Note    NoteRepository
	Session SessionStore
	Media   MediaStore

	db *DB
}

// NewStorages connects to the configured backends and wires up all
// repositories. A "postgres://" DSN selects the pgx driver and runs goose
// migrations; any other DSN is treated as a SQLite file path.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	if strings.HasPrefix(cfg.DB.DSN, "postgres") {
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting to postgres: %w", err)
		}

		if err := migrations.Migrate(db.DB); err != nil {
			return nil, fmt.Errorf("error running migrations: %w", err)
		}
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting to sqlite: %w", err)
		}
	}

	media, err := NewFileMediaStore(cfg.Files.UploadDir, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		User:    NewUserRepository(db, log),
		Note:    NewNoteRepository(db, log),
		Session: NewMemorySessionStore(log),
		Media:   media,
		db:      db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}
