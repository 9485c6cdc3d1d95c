// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// rolling-paper server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidFormData is returned when a request body cannot be parsed
	// as a URL-encoded or multipart form.
	MsgInvalidFormData = "invalid form data"

	// MsgInvalidDataProvided is returned when a request passes parsing but
	// fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidJSONProvided is returned when a JSON request body cannot be
	// decoded.
	MsgInvalidJSONProvided = "invalid JSON provided"

	// MsgWrongUsernameOrPassword is returned when the supplied credentials
	// do not match any existing account. The wording deliberately does not
	// reveal which of the two was wrong.
	MsgWrongUsernameOrPassword = "wrong username or password"

	// MsgUsernameAlreadyExists is returned when registration is attempted
	// with a username that is already taken.
	MsgUsernameAlreadyExists = "username already exists"

	// MsgPasswordConfirmationMismatch is returned when a password and its
	// confirmation field do not match.
	MsgPasswordConfirmationMismatch = "password confirmation does not match"

	// MsgWrongCurrentPassword is returned when a password change is
	// attempted with an incorrect current password.
	MsgWrongCurrentPassword = "current password is wrong"

	// MsgInvalidPasswordData is returned when a password change request is
	// missing one of its required fields.
	MsgInvalidPasswordData = "invalid password data"

	// MsgInvalidUserID is returned when a user ID path or form parameter is
	// not a valid integer.
	MsgInvalidUserID = "invalid user ID"

	// MsgInvalidRecipientID is returned when the recipient of a note cannot
	// be parsed from the request.
	MsgInvalidRecipientID = "invalid recipient ID"

	// MsgUserNotFound is returned when the addressed user account does not
	// exist.
	MsgUserNotFound = "user not found"

	// MsgRecipientNotFound is returned when a note is posted to an account
	// that does not exist.
	MsgRecipientNotFound = "recipient not found"

	// MsgNoteNotFound is returned when the addressed note does not exist.
	MsgNoteNotFound = "note not found"

	// MsgInvalidNoteData is returned when a posted note carries neither
	// content nor an attachment.
	MsgInvalidNoteData = "invalid note data"

	// MsgOnlyBoardOwnerMayMoveNotes is returned when someone other than the
	// board owner tries to reposition a note.
	MsgOnlyBoardOwnerMayMoveNotes = "only the board owner may move notes"

	// MsgOnlyAuthorMayDeleteNote is returned when someone other than the
	// note's author tries to delete it.
	MsgOnlyAuthorMayDeleteNote = "only the author may delete a note"

	// MsgInvalidUploadedFile is returned when an uploaded file cannot be
	// read from the multipart form.
	MsgInvalidUploadedFile = "invalid uploaded file"

	// MsgNoPictureUploaded is returned when an avatar upload request
	// carries no file.
	MsgNoPictureUploaded = "no picture uploaded"

	// MsgAvatarUploadForbidden is returned when a caller tries to upload a
	// profile picture for a different account.
	MsgAvatarUploadForbidden = "cannot upload a picture for another user"
)
