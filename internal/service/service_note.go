package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/MKhiriev/rolling-paper/internal/utils"
	"github.com/MKhiriev/rolling-paper/models"
)

// noteService is the concrete implementation of NoteService. It stamps
// notes with the author's current nickname, enforces board ownership on
// reposition and authorship on delete, and keeps attachment files in step
// with the rows that reference them.
type noteService struct {
	noteRepository store.NoteRepository
	userRepository store.UserRepository
	mediaService   MediaService
	generator      *utils.UUIDGenerator

	logger *logger.Logger
}

// NewNoteService constructs a NoteService wired to the given repositories.
func NewNoteService(noteRepository store.NoteRepository, userRepository store.UserRepository, mediaService MediaService, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		userRepository: userRepository,
		mediaService:   mediaService,
		generator:      utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// PostNote creates a note on the recipient's board.
//
// The recipient must exist: posting onto a deleted account would otherwise
// silently create an orphan row. The note carries the author's nickname as
// it is right now; later renames do not touch it.
func (n *noteService) PostNote(ctx context.Context, author models.User, recipientID int64, content, attachment, theme string) (models.Note, error) {
	log := logger.FromContext(ctx)

	if content == "" && attachment == "" {
		return models.Note{}, ErrInvalidDataProvided
	}

	if _, err := n.userRepository.FindUserByID(ctx, recipientID); err != nil {
		log.Err(err).Int64("recipient", recipientID).Msg("posting note failed: recipient lookup")
		return models.Note{}, fmt.Errorf("posting note failed: %w", err)
	}

	note := models.Note{
		ID:             n.generator.Generate(),
		AuthorNickname: author.Nickname,
		RecipientID:    recipientID,
		Content:        content,
		Attachment:     attachment,
		Theme:          theme,
		CreatedAt:      time.Now(),
	}

	created, err := n.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Int64("recipient", recipientID).Msg("posting note failed")
		return models.Note{}, fmt.Errorf("posting note failed: %w", err)
	}

	return created, nil
}

// ListForRecipient returns the notes on a user's board, oldest first, with
// attachment references resolved to servable URLs.
func (n *noteService) ListForRecipient(ctx context.Context, recipientID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	notes, err := n.noteRepository.FindNotesByRecipient(ctx, recipientID)
	if err != nil {
		log.Err(err).Int64("recipient", recipientID).Msg("listing board notes failed")
		return nil, fmt.Errorf("listing board notes failed: %w", err)
	}

	for i := range notes {
		notes[i].Attachment = n.mediaService.ResolveURL(notes[i].Attachment)
	}

	return notes, nil
}

// ListByAuthor returns the notes the user has sent, joined with each
// recipient's display name via one batch lookup.
func (n *noteService) ListByAuthor(ctx context.Context, author models.User) ([]models.SentNote, error) {
	log := logger.FromContext(ctx)

	notes, err := n.noteRepository.FindNotesByAuthor(ctx, author.Nickname)
	if err != nil {
		log.Err(err).Str("author", author.Nickname).Msg("listing sent notes failed")
		return nil, fmt.Errorf("listing sent notes failed: %w", err)
	}

	recipientIDs := make([]int64, 0, len(notes))
	seen := make(map[int64]struct{}, len(notes))
	for _, note := range notes {
		if _, ok := seen[note.RecipientID]; !ok {
			seen[note.RecipientID] = struct{}{}
			recipientIDs = append(recipientIDs, note.RecipientID)
		}
	}

	recipients, err := n.userRepository.FindUsersByIDs(ctx, recipientIDs)
	if err != nil {
		log.Err(err).Str("author", author.Nickname).Msg("recipient lookup failed")
		return nil, fmt.Errorf("recipient lookup failed: %w", err)
	}

	names := make(map[int64]string, len(recipients))
	for _, r := range recipients {
		names[r.UserID] = r.Name
	}

	sent := make([]models.SentNote, 0, len(notes))
	for _, note := range notes {
		note.Attachment = n.mediaService.ResolveURL(note.Attachment)
		sent = append(sent, models.SentNote{
			Note:   note,
			ToName: names[note.RecipientID],
		})
	}

	return sent, nil
}

// Reposition moves a note on a board. Only the owner of the board the note
// sits on may move it; anyone else gets ErrNotBoardOwner. Applying the same
// coordinates twice leaves the note where it is.
func (n *noteService) Reposition(ctx context.Context, caller models.User, position models.NotePosition) error {
	log := logger.FromContext(ctx)

	note, err := n.noteRepository.FindNoteByID(ctx, position.ID)
	if err != nil {
		log.Err(err).Str("note", position.ID).Msg("reposition failed: note lookup")
		return fmt.Errorf("reposition failed: %w", err)
	}

	if note.RecipientID != caller.UserID {
		log.Error().
			Str("note", position.ID).
			Int64("caller", caller.UserID).
			Int64("owner", note.RecipientID).
			Msg("reposition rejected: caller does not own the board")
		return ErrNotBoardOwner
	}

	if err := n.noteRepository.UpdatePosition(ctx, position.ID, position.NewX, position.NewY); err != nil {
		log.Err(err).Str("note", position.ID).Msg("reposition failed")
		return fmt.Errorf("reposition failed: %w", err)
	}

	return nil
}

// DeleteNote removes a note and its attachment file. Only the author may
// delete; anyone else gets ErrNotAuthor.
func (n *noteService) DeleteNote(ctx context.Context, caller models.User, noteID string) error {
	log := logger.FromContext(ctx)

	note, err := n.noteRepository.FindNoteByID(ctx, noteID)
	if err != nil {
		log.Err(err).Str("note", noteID).Msg("note deletion failed: lookup")
		return fmt.Errorf("note deletion failed: %w", err)
	}

	if note.AuthorNickname != caller.Nickname {
		log.Error().
			Str("note", noteID).
			Str("caller", caller.Nickname).
			Str("author", note.AuthorNickname).
			Msg("note deletion rejected: caller is not the author")
		return ErrNotAuthor
	}

	if err := n.noteRepository.DeleteNote(ctx, noteID); err != nil {
		log.Err(err).Str("note", noteID).Msg("note deletion failed")
		return fmt.Errorf("note deletion failed: %w", err)
	}

	if note.Attachment != "" {
		if err := n.mediaService.Remove(ctx, note.Attachment); err != nil {
			log.Err(err).Str("file", note.Attachment).Msg("removing attachment file failed")
		}
	}

	return nil
}
