package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/rolling-paper/internal/config"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/MKhiriev/rolling-paper/internal/utils"
	"github.com/MKhiriev/rolling-paper/models"
)

// userService is the concrete implementation of UserService. It owns the
// user directory, profile updates, password changes, and the account
// deletion cascade.
type userService struct {
	userRepository store.UserRepository
	noteRepository store.NoteRepository
	sessionStore   store.SessionStore
	mediaService   MediaService

	// defaultPicture is substituted into ProfilePicture for accounts that
	// never uploaded an avatar.
	defaultPicture string

	logger *logger.Logger
}

// NewUserService constructs a UserService wired to the given repositories.
// The MediaService is needed to remove stored files during the account
// deletion cascade and on avatar replacement.
func NewUserService(userRepository store.UserRepository, noteRepository store.NoteRepository, sessionStore store.SessionStore, mediaService MediaService, cfg config.Files, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		noteRepository: noteRepository,
		sessionStore:   sessionStore,
		mediaService:   mediaService,
		defaultPicture: cfg.DefaultProfilePicture,
		logger:         logger,
	}
}

// GetUser returns a single account by ID.
func (u *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return u.userRepository.FindUserByID(ctx, userID)
}

// ListUsers returns every registered account ordered by display name.
// Accounts without an avatar get the default picture substituted.
func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := u.userRepository.GetAllUsers(ctx)
	if err != nil {
		log.Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	for i := range users {
		if users[i].ProfilePicture == "" {
			users[i].ProfilePicture = u.defaultPicture
		}
	}

	return users, nil
}

// UpdateProfile applies a partial profile update. When the avatar changes,
// the previously stored picture file is removed after the update succeeds.
func (u *userService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) error {
	log := logger.FromContext(ctx)

	var oldPicture string
	if update.ProfilePicture != nil {
		current, err := u.userRepository.FindUserByID(ctx, userID)
		if err != nil {
			log.Err(err).Int64("id", userID).Msg("profile update failed: user lookup")
			return fmt.Errorf("profile update failed: %w", err)
		}
		oldPicture = current.ProfilePicture
	}

	if err := u.userRepository.UpdateProfile(ctx, userID, update); err != nil {
		log.Err(err).Int64("id", userID).Msg("profile update failed")
		return fmt.Errorf("profile update failed: %w", err)
	}

	if update.ProfilePicture != nil && oldPicture != "" && oldPicture != *update.ProfilePicture {
		if err := u.mediaService.Remove(ctx, oldPicture); err != nil {
			// the profile already points at the new picture; a stale file
			// on disk is not worth failing the request over
			log.Err(err).Str("file", oldPicture).Msg("removing replaced avatar failed")
		}
	}

	return nil
}

// ChangePassword verifies the current password and the confirmation pair
// before storing a new bcrypt hash.
//
// Returns:
//   - ErrPasswordMismatch if newPassword and confirm differ.
//   - ErrWrongCurrentPassword if current does not match the stored hash.
//   - ErrInvalidDataProvided if the new password is empty.
func (u *userService) ChangePassword(ctx context.Context, userID int64, current, newPassword, confirm string) error {
	log := logger.FromContext(ctx)

	if newPassword == "" {
		return ErrInvalidDataProvided
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	user, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("password change failed: user lookup")
		return fmt.Errorf("password change failed: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, current) {
		log.Error().Int64("id", userID).Msg("password change rejected: wrong current password")
		return ErrWrongCurrentPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("password change failed: hashing")
		return fmt.Errorf("password change failed: %w", err)
	}

	if err := u.userRepository.UpdatePassword(ctx, userID, hash); err != nil {
		log.Err(err).Int64("id", userID).Msg("password change failed: update")
		return fmt.Errorf("password change failed: %w", err)
	}

	return nil
}

// DeleteAccount removes the account and everything hanging off it:
// every note the user authored or received, the media files those notes
// referenced, the avatar, the user row, and all live sessions.
//
// Attachment references are gathered before the notes are deleted, since
// the rows are the only place the references live.
func (u *userService) DeleteAccount(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	user, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("account deletion failed: user lookup")
		return fmt.Errorf("account deletion failed: %w", err)
	}

	attachments := make([]string, 0)

	authored, err := u.noteRepository.FindNotesByAuthor(ctx, user.Nickname)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("account deletion failed: authored notes lookup")
		return fmt.Errorf("account deletion failed: %w", err)
	}
	received, err := u.noteRepository.FindNotesByRecipient(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("account deletion failed: received notes lookup")
		return fmt.Errorf("account deletion failed: %w", err)
	}

	for _, note := range append(authored, received...) {
		if note.Attachment != "" {
			attachments = append(attachments, note.Attachment)
		}
	}

	if err := u.noteRepository.DeleteNotesByUser(ctx, user.Nickname, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("account deletion failed: notes")
		return fmt.Errorf("account deletion failed: %w", err)
	}

	if err := u.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("account deletion failed: user row")
		return fmt.Errorf("account deletion failed: %w", err)
	}

	// media cleanup happens after the rows are gone: a leftover file is
	// recoverable noise, a dangling DB reference is not
	for _, ref := range attachments {
		if err := u.mediaService.Remove(ctx, ref); err != nil {
			log.Err(err).Str("file", ref).Msg("removing attachment file failed")
		}
	}
	if user.ProfilePicture != "" {
		if err := u.mediaService.Remove(ctx, user.ProfilePicture); err != nil {
			log.Err(err).Str("file", user.ProfilePicture).Msg("removing avatar file failed")
		}
	}

	if err := u.sessionStore.DeleteByUser(ctx, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("clearing sessions failed")
	}

	return nil
}
