package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/rolling-paper/internal/config"
	"github.com/MKhiriev/rolling-paper/internal/logger"
)

// Schema bootstrap for the SQLite backend. PostgreSQL deployments run goose
// migrations instead; for local file-backed runs the tables are created on
// connect.
const createSQLiteSchema = `
	CREATE TABLE IF NOT EXISTS users
	(
		user_id         INTEGER PRIMARY KEY AUTOINCREMENT,
		username        TEXT      NOT NULL UNIQUE,
		password_hash   TEXT      NOT NULL,
		name            TEXT      NOT NULL DEFAULT '',
		nickname        TEXT      NOT NULL DEFAULT '',
		profile_picture TEXT      NOT NULL DEFAULT '',
		created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS notes
	(
		id              TEXT PRIMARY KEY,
		author_nickname TEXT      NOT NULL,
		recipient_id    INTEGER   NOT NULL,
		content         TEXT      NOT NULL DEFAULT '',
		attachment      TEXT      NOT NULL DEFAULT '',
		theme           TEXT      NOT NULL DEFAULT '',
		position_x      REAL,
		position_y      REAL,
		created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_notes_recipient ON notes (recipient_id);
	CREATE INDEX IF NOT EXISTS idx_notes_author ON notes (author_nickname);`

// NewConnectSQLite opens a file-backed SQLite database, creating the file
// and the schema when they do not exist yet.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, createSQLiteSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating schema")
		return nil, fmt.Errorf("error creating schema: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:     conn,
		logger: log,
	}

	return db, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
