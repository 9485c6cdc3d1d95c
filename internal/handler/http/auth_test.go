// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/MKhiriev/rolling-paper/internal/service"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/MKhiriev/rolling-paper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// root
// ─────────────────────────────────────────────

// TestRoot_Unauthenticated verifies that a visitor without a credential gets
// the login view payload.
func TestRoot_Unauthenticated(t *testing.T) {
	h := newTestHandler(newMockServices(), &fakeAuthenticator{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.root(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"view":"login"}`, rec.Body.String())
}

// TestRoot_Authenticated verifies that an already logged-in caller is sent
// straight to the user directory.
func TestRoot_Authenticated(t *testing.T) {
	auth := &fakeAuthenticator{
		identifyFn: func(_ *http.Request) (models.User, error) { return authedUser, nil },
	}
	h := newTestHandler(newMockServices(), auth)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.root(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

// TestLogin_SessionModeRedirects verifies that in session mode a successful
// login responds with a redirect to the user directory.
func TestLogin_SessionModeRedirects(t *testing.T) {
	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		loginFn: func(_ context.Context, username, password string) (models.User, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "secret", password)
			return authedUser, nil
		},
	}

	// session variant returns an empty credential string
	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := formRequest("/login", url.Values{"username": {"alice"}, "password": {"secret"}})
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
}

// TestLogin_TokenModeReturnsToken verifies that in token mode a successful
// login responds with the signed token as JSON.
func TestLogin_TokenModeReturnsToken(t *testing.T) {
	const signed = "signed.jwt.token"

	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) { return authedUser, nil },
	}
	auth := &fakeAuthenticator{
		issueFn: func(_ context.Context, _ http.ResponseWriter, _ models.User) (string, error) {
			return signed, nil
		},
	}

	h := newTestHandler(svcs, auth)

	req := formRequest("/login", url.Values{"username": {"alice"}, "password": {"secret"}})
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"signed.jwt.token"}`, rec.Body.String())
}

// TestLogin_InvalidCredentials verifies that service.ErrInvalidCredentials
// maps to 401 Unauthorized without revealing which part was wrong.
func TestLogin_InvalidCredentials(t *testing.T) {
	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidCredentials
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := formRequest("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "wrong username or password")
}

// TestLogin_WrappedInvalidCredentials verifies that a wrapped
// service.ErrInvalidCredentials is still matched via errors.Is.
func TestLogin_WrappedInvalidCredentials(t *testing.T) {
	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, errors.Join(errors.New("outer"), service.ErrInvalidCredentials)
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := formRequest("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestLogin_UnexpectedError verifies that an unknown error from Login maps to
// 500 Internal Server Error.
func TestLogin_UnexpectedError(t *testing.T) {
	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, errors.New("db connection lost")
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := formRequest("/login", url.Values{"username": {"alice"}, "password": {"secret"}})
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// TestLogin_IssueFails verifies that a credential issue failure after a
// successful login maps to 500 Internal Server Error.
func TestLogin_IssueFails(t *testing.T) {
	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) { return authedUser, nil },
	}
	auth := &fakeAuthenticator{
		issueFn: func(_ context.Context, _ http.ResponseWriter, _ models.User) (string, error) {
			return "", errors.New("signing key unavailable")
		},
	}

	h := newTestHandler(svcs, auth)

	req := formRequest("/login", url.Values{"username": {"alice"}, "password": {"secret"}})
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

// TestRegister_Success verifies that a valid registration redirects to the
// login view.
func TestRegister_Success(t *testing.T) {
	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		registerUserFn: func(_ context.Context, username, password, name, nickname string) (models.User, error) {
			assert.Equal(t, "bob", username)
			assert.Equal(t, "secret", password)
			assert.Equal(t, "Bob", name)
			assert.Equal(t, "bobby", nickname)
			return models.User{UserID: 3, Username: username, Name: name, Nickname: nickname}, nil
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := formRequest("/register", url.Values{
		"username":         {"bob"},
		"password":         {"secret"},
		"confirm_password": {"secret"},
		"name":             {"Bob"},
		"nickname":         {"bobby"},
	})
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

// TestRegister_PasswordConfirmationMismatch verifies that mismatched
// password fields map to 400 Bad Request before any service call.
func TestRegister_PasswordConfirmationMismatch(t *testing.T) {
	h := newTestHandler(newMockServices(), &fakeAuthenticator{})

	req := formRequest("/register", url.Values{
		"username":         {"bob"},
		"password":         {"secret"},
		"confirm_password": {"different"},
	})
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "password confirmation does not match")
}

// TestRegister_UsernameAlreadyExists verifies that
// store.ErrUsernameAlreadyExists maps to 409 Conflict.
func TestRegister_UsernameAlreadyExists(t *testing.T) {
	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		registerUserFn: func(_ context.Context, _, _, _, _ string) (models.User, error) {
			return models.User{}, store.ErrUsernameAlreadyExists
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := formRequest("/register", url.Values{
		"username":         {"bob"},
		"password":         {"secret"},
		"confirm_password": {"secret"},
	})
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")
}

// TestRegister_WithProfilePicture verifies that an avatar in the
// registration form is accepted and stored on the fresh account.
func TestRegister_WithProfilePicture(t *testing.T) {
	var storedRef string

	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		registerUserFn: func(_ context.Context, username, _, _, _ string) (models.User, error) {
			return models.User{UserID: 3, Username: username}, nil
		},
	}
	svcs.MediaService = &mockMediaService{
		acceptFn: func(_ context.Context, originalName string, _ io.Reader) (string, error) {
			assert.Equal(t, "me.png", originalName)
			return "uploads/abc.png", nil
		},
	}
	svcs.UserService = &mockUserService{
		updateProfileFn: func(_ context.Context, userID int64, update models.ProfileUpdate) error {
			assert.Equal(t, int64(3), userID)
			require.NotNil(t, update.ProfilePicture)
			storedRef = *update.ProfilePicture
			return nil
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := multipartRequest(t, "/register", map[string]string{
		"username":         "bob",
		"password":         "secret",
		"confirm_password": "secret",
	}, "profile_pic", "me.png", []byte("png-bytes"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "uploads/abc.png", storedRef)
}

// TestRegister_RejectedUpload verifies that a disallowed avatar extension
// maps to 400 Bad Request before the account is created: a caller who sees
// the failure can retry without running into a duplicate username.
func TestRegister_RejectedUpload(t *testing.T) {
	accountCreated := false

	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		registerUserFn: func(_ context.Context, username, _, _, _ string) (models.User, error) {
			accountCreated = true
			return models.User{UserID: 3, Username: username}, nil
		},
	}
	svcs.MediaService = &mockMediaService{
		acceptFn: func(_ context.Context, _ string, _ io.Reader) (string, error) {
			return "", errors.New("file extension is not allowed")
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := multipartRequest(t, "/register", map[string]string{
		"username":         "bob",
		"password":         "secret",
		"confirm_password": "secret",
	}, "profile_pic", "malware.exe", []byte("mz"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, accountCreated, "a rejected upload must not leave an account behind")
}

// TestRegister_FailedRegistrationRemovesStoredPicture verifies that the
// avatar file stored ahead of account creation is cleaned up when the
// registration itself fails.
func TestRegister_FailedRegistrationRemovesStoredPicture(t *testing.T) {
	var removedRef string

	svcs := newMockServices()
	svcs.AuthService = &mockAuthService{
		registerUserFn: func(_ context.Context, _, _, _, _ string) (models.User, error) {
			return models.User{}, store.ErrUsernameAlreadyExists
		},
	}
	svcs.MediaService = &mockMediaService{
		acceptFn: func(_ context.Context, _ string, _ io.Reader) (string, error) {
			return "uploads/abc.png", nil
		},
		removeFn: func(_ context.Context, ref string) error {
			removedRef = ref
			return nil
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := multipartRequest(t, "/register", map[string]string{
		"username":         "bob",
		"password":         "secret",
		"confirm_password": "secret",
	}, "profile_pic", "me.png", []byte("png-bytes"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "uploads/abc.png", removedRef)
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

// TestLogout verifies that logout clears the credential and redirects to the
// login view.
func TestLogout(t *testing.T) {
	auth := &fakeAuthenticator{}
	h := newTestHandler(newMockServices(), auth)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 1, auth.clearCalls)
}

// TestLogout_ClearFailureStillRedirects verifies that a failing credential
// clear does not block the redirect.
func TestLogout_ClearFailureStillRedirects(t *testing.T) {
	auth := &fakeAuthenticator{
		clearFn: func(_ context.Context, _ http.ResponseWriter, _ *http.Request) error {
			return errors.New("session store unavailable")
		},
	}
	h := newTestHandler(newMockServices(), auth)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
