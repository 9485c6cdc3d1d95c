// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/rolling-paper/internal/config"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/service"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/MKhiriev/rolling-paper/internal/utils"
	"github.com/MKhiriev/rolling-paper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, username, password, name, nickname string) (models.User, error)
	loginFn        func(ctx context.Context, username, password string) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, username, password, name, nickname string) (models.User, error) {
	return m.registerUserFn(ctx, username, password, name, nickname)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (models.User, error) {
	return m.loginFn(ctx, username, password)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockUserService implements service.UserService for unit tests.
type mockUserService struct {
	getUserFn        func(ctx context.Context, userID int64) (models.User, error)
	listUsersFn      func(ctx context.Context) ([]models.User, error)
	updateProfileFn  func(ctx context.Context, userID int64, update models.ProfileUpdate) error
	changePasswordFn func(ctx context.Context, userID int64, current, newPassword, confirm string) error
	deleteAccountFn  func(ctx context.Context, userID int64) error
}

func (m *mockUserService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listUsersFn(ctx)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) error {
	return m.updateProfileFn(ctx, userID, update)
}

func (m *mockUserService) ChangePassword(ctx context.Context, userID int64, current, newPassword, confirm string) error {
	return m.changePasswordFn(ctx, userID, current, newPassword, confirm)
}

func (m *mockUserService) DeleteAccount(ctx context.Context, userID int64) error {
	return m.deleteAccountFn(ctx, userID)
}

// mockNoteService implements service.NoteService for unit tests.
type mockNoteService struct {
	postNoteFn         func(ctx context.Context, author models.User, recipientID int64, content, attachment, theme string) (models.Note, error)
	listForRecipientFn func(ctx context.Context, recipientID int64) ([]models.Note, error)
	listByAuthorFn     func(ctx context.Context, author models.User) ([]models.SentNote, error)
	repositionFn       func(ctx context.Context, caller models.User, position models.NotePosition) error
	deleteNoteFn       func(ctx context.Context, caller models.User, noteID string) error
}

func (m *mockNoteService) PostNote(ctx context.Context, author models.User, recipientID int64, content, attachment, theme string) (models.Note, error) {
	return m.postNoteFn(ctx, author, recipientID, content, attachment, theme)
}

func (m *mockNoteService) ListForRecipient(ctx context.Context, recipientID int64) ([]models.Note, error) {
	return m.listForRecipientFn(ctx, recipientID)
}

func (m *mockNoteService) ListByAuthor(ctx context.Context, author models.User) ([]models.SentNote, error) {
	return m.listByAuthorFn(ctx, author)
}

func (m *mockNoteService) Reposition(ctx context.Context, caller models.User, position models.NotePosition) error {
	return m.repositionFn(ctx, caller, position)
}

func (m *mockNoteService) DeleteNote(ctx context.Context, caller models.User, noteID string) error {
	return m.deleteNoteFn(ctx, caller, noteID)
}

// mockMediaService implements service.MediaService for unit tests.
type mockMediaService struct {
	acceptFn     func(ctx context.Context, originalName string, content io.Reader) (string, error)
	resolveURLFn func(ref string) string
	removeFn     func(ctx context.Context, ref string) error
}

func (m *mockMediaService) Accept(ctx context.Context, originalName string, content io.Reader) (string, error) {
	return m.acceptFn(ctx, originalName, content)
}

func (m *mockMediaService) ResolveURL(ref string) string {
	return m.resolveURLFn(ref)
}

func (m *mockMediaService) Remove(ctx context.Context, ref string) error {
	return m.removeFn(ctx, ref)
}

// mockAppInfoService implements service.AppInfoService for unit tests.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Authenticator fake
// ─────────────────────────────────────────────

// fakeAuthenticator implements Authenticator with overridable behaviour.
// The zero value issues nothing, identifies nobody, and clears silently.
type fakeAuthenticator struct {
	issueFn    func(ctx context.Context, w http.ResponseWriter, user models.User) (string, error)
	identifyFn func(r *http.Request) (models.User, error)
	clearFn    func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

	clearCalls int
}

func (f *fakeAuthenticator) Issue(ctx context.Context, w http.ResponseWriter, user models.User) (string, error) {
	if f.issueFn == nil {
		return "", nil
	}
	return f.issueFn(ctx, w, user)
}

func (f *fakeAuthenticator) Identify(r *http.Request) (models.User, error) {
	if f.identifyFn == nil {
		return models.User{}, ErrNoCredential
	}
	return f.identifyFn(r)
}

func (f *fakeAuthenticator) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	f.clearCalls++
	if f.clearFn == nil {
		return nil
	}
	return f.clearFn(ctx, w, r)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newMockServices returns a Services value with every interface backed by a
// mock. ResolveURL defaults to the real scheme so view payload assertions
// stay readable; everything else must be set by the test that needs it.
func newMockServices() *service.Services {
	return &service.Services{
		AuthService:  &mockAuthService{},
		UserService:  &mockUserService{},
		NoteService:  &mockNoteService{},
		MediaService: &mockMediaService{resolveURLFn: func(ref string) string {
			if ref == "" {
				return ""
			}
			return "/static/" + ref
		}},
		AppInfoService: &mockAppInfoService{version: "test"},
	}
}

// newTestHandler builds a Handler around the given mocks without going
// through config parsing.
func newTestHandler(svcs *service.Services, auth Authenticator) *Handler {
	return &Handler{
		services:      svcs,
		authenticator: auth,
		uploadDir:     "uploads",
		logger:        logger.Nop(),
	}
}

// formRequest builds a POST request with a URL-encoded form body.
func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// multipartRequest builds a POST request with the given form fields and an
// optional file part under fileField.
func multipartRequest(t *testing.T, path string, fields map[string]string, fileField, fileName string, fileContent []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// withUser stores the user in the request context the way the auth
// middleware does.
func withUser(req *http.Request, user models.User) *http.Request {
	ctx := context.WithValue(req.Context(), utils.CurrentUserCtxKey, user)
	return req.WithContext(ctx)
}

// authedUser is a convenience fixture used across multiple tests.
var authedUser = models.User{UserID: 7, Username: "alice", Name: "Alice", Nickname: "al"}

// ─────────────────────────────────────────────
// NewHandler — authenticator selection
// ─────────────────────────────────────────────

func TestNewHandler_SelectsAuthenticatorByMode(t *testing.T) {
	svcs := newMockServices()
	sessions := store.NewMemorySessionStore(logger.Nop())

	tests := []struct {
		name     string
		mode     string
		wantType any
	}{
		{name: "token mode", mode: config.AuthModeToken, wantType: &tokenAuthenticator{}},
		{name: "session mode", mode: config.AuthModeSession, wantType: &sessionAuthenticator{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.StructuredConfig{}
			cfg.Auth.Mode = tt.mode

			h, err := NewHandler(svcs, sessions, cfg, logger.Nop())
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, h.authenticator)
		})
	}
}

func TestNewHandler_UnknownModeFails(t *testing.T) {
	cfg := &config.StructuredConfig{}
	cfg.Auth.Mode = "kerberos"

	_, err := NewHandler(newMockServices(), store.NewMemorySessionStore(logger.Nop()), cfg, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnknownAuthMode)
}
