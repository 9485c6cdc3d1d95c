// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service contains the business logic of the rolling-paper
// application: account lifecycle, board note operations, and uploaded media
// handling. Services sit between the HTTP handlers and the store layer and
// own all authorization decisions.
package service

import (
	"context"
	"io"

	"github.com/MKhiriev/rolling-paper/models"
)

// AuthService handles registration, credential verification, and the JWT
// token lifecycle for the token authenticator variant.
type AuthService interface {
	// RegisterUser creates a new account from a username, plaintext
	// password, display name, and nickname. The password is bcrypt-hashed
	// before storage.
	RegisterUser(ctx context.Context, username, password, name, nickname string) (models.User, error)

	// Login verifies the username/password pair and returns the account.
	// A missing user and a wrong password both map to
	// [ErrInvalidCredentials] so the response does not leak which part
	// was wrong.
	Login(ctx context.Context, username, password string) (models.User, error)

	// CreateToken issues a signed JWT for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string and returns the decoded token.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService handles the user directory and profile lifecycle.
type UserService interface {
	// GetUser returns a single account by ID.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// ListUsers returns every registered account ordered by display name.
	// Accounts without an avatar get the configured default picture
	// substituted into ProfilePicture.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateProfile applies a partial profile update. When the avatar
	// changes, the previously stored picture file is removed.
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) error

	// ChangePassword verifies the current password and the confirmation
	// pair before storing a new bcrypt hash.
	ChangePassword(ctx context.Context, userID int64, current, newPassword, confirm string) error

	// DeleteAccount removes the account, every note it authored or
	// received, the media files those notes referenced, the avatar, and
	// all live sessions of the user.
	DeleteAccount(ctx context.Context, userID int64) error
}

// NoteService handles posting, listing, moving, and deleting board notes.
type NoteService interface {
	// PostNote creates a note on the recipient's board stamped with the
	// author's current nickname. The recipient must exist.
	PostNote(ctx context.Context, author models.User, recipientID int64, content, attachment, theme string) (models.Note, error)

	// ListForRecipient returns the notes on a user's board, oldest first,
	// with attachment references resolved to servable URLs.
	ListForRecipient(ctx context.Context, recipientID int64) ([]models.Note, error)

	// ListByAuthor returns the notes the user has sent, joined with each
	// recipient's display name.
	ListByAuthor(ctx context.Context, author models.User) ([]models.SentNote, error)

	// Reposition moves a note on a board. Only the board owner may move
	// notes on it; others get [ErrNotBoardOwner].
	Reposition(ctx context.Context, caller models.User, position models.NotePosition) error

	// DeleteNote removes a note and its attachment file. Only the author
	// may delete; others get [ErrNotAuthor].
	DeleteNote(ctx context.Context, caller models.User, noteID string) error
}

// MediaService handles uploaded file intake and reference resolution.
type MediaService interface {
	// Accept validates the original file name against the extension
	// allow-list, stores the content under a server-generated name, and
	// returns the stored media reference.
	Accept(ctx context.Context, originalName string, content io.Reader) (string, error)

	// ResolveURL converts a stored media reference into the URL path the
	// HTTP layer serves it under. An empty reference resolves to "".
	ResolveURL(ref string) string

	// Remove deletes the stored file behind a media reference. Removing
	// an empty or missing reference is a no-op.
	Remove(ctx context.Context, ref string) error
}

// AppInfoService exposes application-level metadata.
type AppInfoService interface {
	// GetAppVersion returns the configured application version string.
	GetAppVersion(ctx context.Context) string
}
