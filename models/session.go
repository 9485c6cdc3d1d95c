package models

import "time"

// Session is a server-held proof of identity keyed by an opaque cookie
// value. Sessions live only in memory and are never persisted; restarting
// the process logs everyone out.
type Session struct {
	// ID is the opaque random value stored in the session cookie.
	ID string `json:"-"`

	// UserID is the account the session belongs to.
	UserID int64 `json:"user_id"`

	// Username and Nickname are captured at login time for cheap access
	// without a database round trip.
	Username string `json:"username"`
	Nickname string `json:"nickname"`

	// CreatedAt is the time the session was established.
	CreatedAt time.Time `json:"created_at"`
}
