// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authenticator implementations. Callers can
// match against them with [errors.Is].
var (
	// ErrNoCredential is returned by an authenticator when the request
	// carries no credential cookie at all. The auth middleware treats it
	// as "not logged in" and redirects to the login view instead of
	// responding 401.
	ErrNoCredential = errors.New("no credential provided")

	// ErrInvalidCredential is returned when a credential cookie is present
	// but expired, malformed, or does not map to a live session or user.
	ErrInvalidCredential = errors.New("invalid or expired credential")

	// errUnknownAuthMode is returned at construction time when the
	// configured auth mode names neither variant.
	errUnknownAuthMode = errors.New("unknown auth mode")
)
