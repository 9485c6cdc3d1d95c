package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/rolling-paper/models"
)

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new user and returns it with server-assigned
	// fields (UserID, CreatedAt). A taken username yields
	// [ErrUsernameAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername looks up a user by the unique login key.
	// Returns [ErrUserNotFound] when no such user exists.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID looks up a user by internal identifier.
	// Returns [ErrUserNotFound] when no such user exists.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// FindUsersByIDs returns all users whose IDs are in the given set.
	// Missing IDs are silently skipped; the result order is unspecified.
	FindUsersByIDs(ctx context.Context, userIDs []int64) ([]models.User, error)

	// GetAllUsers returns every user ordered by display name ascending.
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// UpdateProfile applies a partial update of name/nickname/profile
	// picture. Nil fields are left untouched.
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// DeleteUser removes the user row. Notes are cascaded by the service
	// layer, which needs the attachment references first.
	DeleteUser(ctx context.Context, userID int64) error
}

// NoteRepository is the persistence contract for board notes.
type NoteRepository interface {
	// CreateNote persists a new note with a caller-generated ID.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// FindNoteByID returns a single note or [ErrNoteNotFound].
	FindNoteByID(ctx context.Context, noteID string) (models.Note, error)

	// FindNotesByRecipient returns every note on the given user's board,
	// oldest first.
	FindNotesByRecipient(ctx context.Context, recipientID int64) ([]models.Note, error)

	// FindNotesByAuthor returns every note stamped with the given author
	// nickname, oldest first.
	FindNotesByAuthor(ctx context.Context, authorNickname string) ([]models.Note, error)

	// UpdatePosition sets the board coordinates of a note. Applying the
	// same coordinates twice is a no-op the second time.
	// Returns [ErrNoteNotFound] when the note does not exist.
	UpdatePosition(ctx context.Context, noteID string, x, y float64) error

	// DeleteNote removes a single note. Returns [ErrNoteNotFound] when
	// the note does not exist.
	DeleteNote(ctx context.Context, noteID string) error

	// DeleteNotesByUser removes every note authored under the given
	// nickname or addressed to the given recipient. Used by the account
	// deletion cascade.
	DeleteNotesByUser(ctx context.Context, authorNickname string, recipientID int64) error
}

// SessionStore holds server-side sessions for the session authenticator
// variant. Implementations must be safe for concurrent use.
type SessionStore interface {
	// Create establishes a new session for the user and returns it with a
	// generated opaque ID.
	Create(ctx context.Context, user models.User) (models.Session, error)

	// Get returns the session with the given ID or [ErrSessionNotFound].
	Get(ctx context.Context, sessionID string) (models.Session, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, sessionID string) error

	// DeleteByUser removes every session belonging to the user. Used when
	// an account is deleted.
	DeleteByUser(ctx context.Context, userID int64) error

	// DeleteOlderThan removes every session established before the cutoff
	// and reports how many were removed. Used by the background janitor.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// MediaStore persists uploaded binary attachments under server-generated
// names. Name generation and extension validation happen in the service
// layer; the store only moves bytes.
type MediaStore interface {
	// Save writes src to the file with the given stored name.
	Save(ctx context.Context, name string, src io.Reader) error

	// Remove deletes the stored file. Removing a missing file is not an
	// error; the operation is idempotent.
	Remove(ctx context.Context, name string) error
}
