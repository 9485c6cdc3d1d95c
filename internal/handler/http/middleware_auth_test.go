// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/MKhiriev/rolling-paper/internal/utils"
	"github.com/MKhiriev/rolling-paper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

// nextRecorder is a terminal handler that captures the user the middleware
// stored in the request context.
type nextRecorder struct {
	called bool
	user   models.User
	userOK bool
}

func (n *nextRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.called = true
		n.user, n.userOK = utils.GetCurrentUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

// TestAuthMiddleware_NoCredentialRedirects verifies that a request without
// any credential is sent to the login view with 303 rather than 401.
func TestAuthMiddleware_NoCredentialRedirects(t *testing.T) {
	h := newTestHandler(newMockServices(), &fakeAuthenticator{})
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.False(t, next.called)
}

// TestAuthMiddleware_InvalidCredential verifies that a present but invalid
// credential maps to 401.
func TestAuthMiddleware_InvalidCredential(t *testing.T) {
	auth := &fakeAuthenticator{
		identifyFn: func(_ *http.Request) (models.User, error) {
			return models.User{}, ErrInvalidCredential
		},
	}
	h := newTestHandler(newMockServices(), auth)
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

// TestAuthMiddleware_StoresUserInContext verifies that downstream handlers
// receive the identified user through the request context.
func TestAuthMiddleware_StoresUserInContext(t *testing.T) {
	auth := &fakeAuthenticator{
		identifyFn: func(_ *http.Request) (models.User, error) { return authedUser, nil },
	}
	h := newTestHandler(newMockServices(), auth)
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	require.True(t, next.userOK)
	assert.Equal(t, authedUser.UserID, next.user.UserID)
	assert.Equal(t, authedUser.Nickname, next.user.Nickname)
}

// ─────────────────────────────────────────────
// tokenAuthenticator
// ─────────────────────────────────────────────

// TestTokenAuthenticator_IssueSetsCookie verifies the cookie attributes and
// the returned credential string.
func TestTokenAuthenticator_IssueSetsCookie(t *testing.T) {
	const signed = "signed.jwt.token"

	a := &tokenAuthenticator{
		auth: &mockAuthService{
			createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
				return models.Token{SignedString: signed, UserID: authedUser.UserID}, nil
			},
		},
		tokenDuration: time.Hour,
	}

	rec := httptest.NewRecorder()
	credential, err := a.Issue(context.Background(), rec, authedUser)
	require.NoError(t, err)
	assert.Equal(t, signed, credential)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, tokenCookieName, cookie.Name)
	assert.Equal(t, signed, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
}

// TestTokenAuthenticator_IdentifyRoundTrip verifies that a parsed token is
// resolved to a live account.
func TestTokenAuthenticator_IdentifyRoundTrip(t *testing.T) {
	a := &tokenAuthenticator{
		auth: &mockAuthService{
			parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
				assert.Equal(t, "signed.jwt.token", tokenString)
				return models.Token{SignedString: tokenString, UserID: authedUser.UserID}, nil
			},
		},
		users: &mockUserService{
			getUserFn: func(_ context.Context, userID int64) (models.User, error) {
				assert.Equal(t, authedUser.UserID, userID)
				return authedUser, nil
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "signed.jwt.token"})

	user, err := a.Identify(req)
	require.NoError(t, err)
	assert.Equal(t, authedUser.UserID, user.UserID)
}

// TestTokenAuthenticator_IdentifyNoCookie verifies the ErrNoCredential
// sentinel.
func TestTokenAuthenticator_IdentifyNoCookie(t *testing.T) {
	a := &tokenAuthenticator{}

	_, err := a.Identify(httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.ErrorIs(t, err, ErrNoCredential)
}

// TestTokenAuthenticator_IdentifyBadToken verifies that an unparsable token
// maps to ErrInvalidCredential.
func TestTokenAuthenticator_IdentifyBadToken(t *testing.T) {
	a := &tokenAuthenticator{
		auth: &mockAuthService{
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				return models.Token{}, errors.New("token is expired or invalid")
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "garbage"})

	_, err := a.Identify(req)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

// TestTokenAuthenticator_IdentifyDeletedAccount verifies that a formally
// valid token for a deleted account stops authenticating.
func TestTokenAuthenticator_IdentifyDeletedAccount(t *testing.T) {
	a := &tokenAuthenticator{
		auth: &mockAuthService{
			parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
				return models.Token{SignedString: tokenString, UserID: 404}, nil
			},
		},
		users: &mockUserService{
			getUserFn: func(_ context.Context, _ int64) (models.User, error) {
				return models.User{}, store.ErrUserNotFound
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "signed.jwt.token"})

	_, err := a.Identify(req)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

// TestTokenAuthenticator_ClearExpiresCookie verifies logout in token mode.
func TestTokenAuthenticator_ClearExpiresCookie(t *testing.T) {
	a := &tokenAuthenticator{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)

	require.NoError(t, a.Clear(context.Background(), rec, req))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, tokenCookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

// ─────────────────────────────────────────────
// sessionAuthenticator
// ─────────────────────────────────────────────

// newSessionAuthenticator wires the session variant over a real in-memory
// session store.
func newSessionAuthenticator(users *mockUserService) (*sessionAuthenticator, store.SessionStore) {
	sessions := store.NewMemorySessionStore(logger.Nop())
	return &sessionAuthenticator{sessions: sessions, users: users}, sessions
}

// TestSessionAuthenticator_RoundTrip verifies issue, identify, and clear
// against a live session store.
func TestSessionAuthenticator_RoundTrip(t *testing.T) {
	users := &mockUserService{
		getUserFn: func(_ context.Context, userID int64) (models.User, error) {
			assert.Equal(t, authedUser.UserID, userID)
			return authedUser, nil
		},
	}
	a, _ := newSessionAuthenticator(users)

	// issue: the session variant hands out no credential string
	rec := httptest.NewRecorder()
	credential, err := a.Issue(context.Background(), rec, authedUser)
	require.NoError(t, err)
	assert.Empty(t, credential)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, sessionCookieName, cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// identify with the issued cookie
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookie.Value})

	user, err := a.Identify(req)
	require.NoError(t, err)
	assert.Equal(t, authedUser.UserID, user.UserID)

	// clear invalidates the server-side state itself
	clearRec := httptest.NewRecorder()
	require.NoError(t, a.Clear(context.Background(), clearRec, req))

	_, err = a.Identify(req)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

// TestSessionAuthenticator_UnknownSession verifies that a stale cookie maps
// to ErrInvalidCredential.
func TestSessionAuthenticator_UnknownSession(t *testing.T) {
	a, _ := newSessionAuthenticator(&mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale-session-id"})

	_, err := a.Identify(req)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

// TestSessionAuthenticator_NoCookie verifies the ErrNoCredential sentinel.
func TestSessionAuthenticator_NoCookie(t *testing.T) {
	a, _ := newSessionAuthenticator(&mockUserService{})

	_, err := a.Identify(httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.ErrorIs(t, err, ErrNoCredential)
}
