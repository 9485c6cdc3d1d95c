package models

import "time"

// Note is a single message posted onto a recipient's board.
//
// AuthorNickname is a denormalized copy of the author's nickname captured
// at post time: renaming a user does not rewrite their past notes. A note
// always has exactly one recipient and may be deleted only by its author
// (or by cascade when an account is deleted).
type Note struct {
	// ID is the unique identifier of the note (UUID).
	ID string `json:"id"`

	// AuthorNickname is the nickname of the author at the moment of posting.
	AuthorNickname string `json:"author"`

	// RecipientID references the user whose board the note is posted on.
	RecipientID int64 `json:"recipient_id"`

	// Content is the freeform text of the note. May be empty when the
	// note only carries an attachment.
	Content string `json:"content"`

	// Attachment is the stored media reference of the attached file,
	// empty when the note has none. Board listings resolve it to a
	// servable URL.
	Attachment string `json:"attachment,omitempty"`

	// Theme is the caller-chosen presentation tag of the note.
	Theme string `json:"theme,omitempty"`

	// PositionX and PositionY are board coordinates. They stay nil until
	// the note is placed for the first time and change only through the
	// reposition operation.
	PositionX *float64 `json:"position_x,omitempty"`
	PositionY *float64 `json:"position_y,omitempty"`

	// CreatedAt is the timestamp when the note was posted.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// SentNote is a note joined with the display name of its recipient.
// It backs the "my sent notes" view.
type SentNote struct {
	Note

	// ToName is the display name of the note's recipient, resolved via a
	// batch user lookup.
	ToName string `json:"to_name"`
}

// NotePosition describes a reposition request for a single note.
type NotePosition struct {
	// ID is the identifier of the note being moved.
	ID string `json:"id"`

	// NewX and NewY are the target board coordinates.
	NewX float64 `json:"newX"`
	NewY float64 `json:"newY"`
}
