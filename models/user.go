package models

import "time"

// User represents an account entity used for authentication and for the
// user directory. It contains identity attributes and credential data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// Assigned by the database and immutable afterwards.
	UserID int64 `json:"id"`

	// Username is the unique login identifier chosen at registration.
	// Immutable after creation.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// The plaintext password is never persisted or logged.
	// Excluded from JSON serialization.
	PasswordHash string `json:"-"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Nickname is the short name stamped onto notes the user posts.
	Nickname string `json:"nickname"`

	// ProfilePicture is the stored media reference of the user's avatar.
	// Empty when the user never uploaded one; directory listings
	// substitute a default reference instead.
	ProfilePicture string `json:"profile_picture,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ProfileUpdate describes a partial update of a user's profile.
// Only non-nil fields will be updated.
type ProfileUpdate struct {
	// Name is the new display name. If nil, the field is not updated.
	Name *string `json:"name,omitempty"`

	// Nickname is the new nickname. If nil, the field is not updated.
	// Notes posted before the change keep the old nickname.
	Nickname *string `json:"nickname,omitempty"`

	// ProfilePicture is the new stored media reference.
	// If nil, the field is not updated.
	ProfilePicture *string `json:"profile_picture,omitempty"`
}
