package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/models"
)

// noteRepository is the SQL-backed implementation of [NoteRepository].
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// CreateNote persists a new note with a caller-generated ID. Position
// columns start out NULL; the recipient places the note later.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createNote,
		note.ID, note.AuthorNickname, note.RecipientID, note.Content, note.Attachment, note.Theme, note.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error executing statement")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return note, nil
}

// FindNoteByID returns a single note or [ErrNoteNotFound].
func (r *noteRepository) FindNoteByID(ctx context.Context, noteID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findNoteByID, noteID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*noteRepository.FindNoteByID").Msg("error: row is nil")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.FindNoteByID").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

// FindNotesByRecipient returns every note on the given user's board, oldest
// first.
func (r *noteRepository) FindNotesByRecipient(ctx context.Context, recipientID int64) ([]models.Note, error) {
	return r.findMany(ctx, findNotesByRecipient, recipientID)
}

// FindNotesByAuthor returns every note stamped with the given author
// nickname, oldest first.
func (r *noteRepository) FindNotesByAuthor(ctx context.Context, authorNickname string) ([]models.Note, error) {
	return r.findMany(ctx, findNotesByAuthor, authorNickname)
}

func (r *noteRepository) findMany(ctx context.Context, query string, arg any) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.findMany").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Err(err).Str("func", "*noteRepository.findMany").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// scanTarget abstracts *sql.Row and *sql.Rows so one scan routine serves
// both single- and multi-row note queries.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanNote(row scanTarget) (models.Note, error) {
	var note models.Note
	var posX, posY sql.NullFloat64

	err := row.Scan(&note.ID, &note.AuthorNickname, &note.RecipientID, &note.Content, &note.Attachment, &note.Theme, &posX, &posY, &note.CreatedAt)
	if err != nil {
		return models.Note{}, err
	}

	if posX.Valid {
		note.PositionX = &posX.Float64
	}
	if posY.Valid {
		note.PositionY = &posY.Float64
	}

	return note, nil
}

// UpdatePosition sets the board coordinates of a note. Writing the same
// coordinates again leaves the row unchanged, so the call is idempotent.
func (r *noteRepository) UpdatePosition(ctx context.Context, noteID string, x, y float64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateNotePosition, x, y, noteID)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdatePosition").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// DeleteNote removes a single note.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteNote, noteID)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// DeleteNotesByUser removes every note the user authored or received.
// Deleting zero rows is fine: a fresh account has no notes.
func (r *noteRepository) DeleteNotesByUser(ctx context.Context, authorNickname string, recipientID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteNotesByUser, authorNickname, recipientID); err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNotesByUser").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
