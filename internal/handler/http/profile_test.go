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
	"github.com/MKhiriev/rolling-paper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// editProfile
// ─────────────────────────────────────────────

// TestEditProfile_PartialUpdate verifies that only the submitted fields make
// it into the update and empty fields stay nil.
func TestEditProfile_PartialUpdate(t *testing.T) {
	var got models.ProfileUpdate

	svcs := newMockServices()
	svcs.UserService = &mockUserService{
		updateProfileFn: func(_ context.Context, userID int64, update models.ProfileUpdate) error {
			assert.Equal(t, authedUser.UserID, userID)
			got = update
			return nil
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := withUser(formRequest("/edit_profile", url.Values{"name": {"Alice B."}}), authedUser)
	rec := httptest.NewRecorder()

	h.editProfile(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Alice B.", *got.Name)
	assert.Nil(t, got.Nickname)
	assert.Nil(t, got.ProfilePicture)
}

// TestEditProfile_WithPicture verifies that an uploaded picture is accepted
// through the media service and lands in the update.
func TestEditProfile_WithPicture(t *testing.T) {
	var got models.ProfileUpdate

	svcs := newMockServices()
	svcs.MediaService = &mockMediaService{
		acceptFn: func(_ context.Context, _ string, _ io.Reader) (string, error) {
			return "uploads/new.png", nil
		},
	}
	svcs.UserService = &mockUserService{
		updateProfileFn: func(_ context.Context, _ int64, update models.ProfileUpdate) error {
			got = update
			return nil
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := withUser(multipartRequest(t, "/edit_profile", map[string]string{
		"nickname": "al2",
	}, "profile_pic", "new.png", []byte("png-bytes")), authedUser)
	rec := httptest.NewRecorder()

	h.editProfile(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotNil(t, got.Nickname)
	assert.Equal(t, "al2", *got.Nickname)
	require.NotNil(t, got.ProfilePicture)
	assert.Equal(t, "uploads/new.png", *got.ProfilePicture)
}

// TestEditProfile_ServiceError verifies the 500 mapping.
func TestEditProfile_ServiceError(t *testing.T) {
	svcs := newMockServices()
	svcs.UserService = &mockUserService{
		updateProfileFn: func(_ context.Context, _ int64, _ models.ProfileUpdate) error {
			return errors.New("db connection lost")
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := withUser(formRequest("/edit_profile", url.Values{"name": {"Alice"}}), authedUser)
	rec := httptest.NewRecorder()

	h.editProfile(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// changePassword
// ─────────────────────────────────────────────

// TestChangePassword_Success verifies the happy path redirect.
func TestChangePassword_Success(t *testing.T) {
	svcs := newMockServices()
	svcs.UserService = &mockUserService{
		changePasswordFn: func(_ context.Context, userID int64, current, newPassword, confirm string) error {
			assert.Equal(t, authedUser.UserID, userID)
			assert.Equal(t, "old-secret", current)
			assert.Equal(t, "new-secret", newPassword)
			assert.Equal(t, "new-secret", confirm)
			return nil
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := withUser(formRequest("/change_password", url.Values{
		"current_password": {"old-secret"},
		"new_password":     {"new-secret"},
		"confirm_password": {"new-secret"},
	}), authedUser)
	rec := httptest.NewRecorder()

	h.changePassword(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
}

// TestChangePassword_ErrorMapping verifies the 400 mappings for each
// validation failure.
func TestChangePassword_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantBody string
	}{
		{name: "confirmation mismatch", err: service.ErrPasswordMismatch, wantBody: "password confirmation does not match"},
		{name: "wrong current password", err: service.ErrWrongCurrentPassword, wantBody: "current password is wrong"},
		{name: "missing fields", err: service.ErrInvalidDataProvided, wantBody: "invalid password data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := newMockServices()
			svcs.UserService = &mockUserService{
				changePasswordFn: func(_ context.Context, _ int64, _, _, _ string) error {
					return tt.err
				},
			}

			h := newTestHandler(svcs, &fakeAuthenticator{})

			req := withUser(formRequest("/change_password", url.Values{
				"current_password": {"a"},
				"new_password":     {"b"},
				"confirm_password": {"c"},
			}), authedUser)
			rec := httptest.NewRecorder()

			h.changePassword(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

// ─────────────────────────────────────────────
// deleteProfile
// ─────────────────────────────────────────────

// TestDeleteProfile_Success verifies that the account cascade runs, the
// credential is cleared, and the caller lands on the login view.
func TestDeleteProfile_Success(t *testing.T) {
	deleted := false

	svcs := newMockServices()
	svcs.UserService = &mockUserService{
		deleteAccountFn: func(_ context.Context, userID int64) error {
			assert.Equal(t, authedUser.UserID, userID)
			deleted = true
			return nil
		},
	}

	auth := &fakeAuthenticator{}
	h := newTestHandler(svcs, auth)

	req := withUser(httptest.NewRequest(http.MethodPost, "/delete_profile", nil), authedUser)
	rec := httptest.NewRecorder()

	h.deleteProfile(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.True(t, deleted)
	assert.Equal(t, 1, auth.clearCalls)
}

// TestDeleteProfile_ServiceError verifies that a failed cascade maps to 500
// and leaves the credential alone.
func TestDeleteProfile_ServiceError(t *testing.T) {
	svcs := newMockServices()
	svcs.UserService = &mockUserService{
		deleteAccountFn: func(_ context.Context, _ int64) error {
			return errors.New("db connection lost")
		},
	}

	auth := &fakeAuthenticator{}
	h := newTestHandler(svcs, auth)

	req := withUser(httptest.NewRequest(http.MethodPost, "/delete_profile", nil), authedUser)
	rec := httptest.NewRecorder()

	h.deleteProfile(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, auth.clearCalls)
}

// ─────────────────────────────────────────────
// uploadProfilePicture
// ─────────────────────────────────────────────

// TestUploadProfilePicture_Success verifies the resolved URL payload after a
// successful avatar upload.
func TestUploadProfilePicture_Success(t *testing.T) {
	svcs := newMockServices()
	svcs.MediaService = &mockMediaService{
		acceptFn: func(_ context.Context, _ string, _ io.Reader) (string, error) {
			return "uploads/avatar.png", nil
		},
		resolveURLFn: func(ref string) string { return "/static/" + ref },
	}
	svcs.UserService = &mockUserService{
		updateProfileFn: func(_ context.Context, userID int64, update models.ProfileUpdate) error {
			assert.Equal(t, authedUser.UserID, userID)
			require.NotNil(t, update.ProfilePicture)
			assert.Equal(t, "uploads/avatar.png", *update.ProfilePicture)
			return nil
		},
	}

	h := newTestHandler(svcs, &fakeAuthenticator{})

	req := withURLParam(
		withUser(multipartRequest(t, "/upload_profile_picture/7", nil, "profile_pic", "avatar.png", []byte("png-bytes")), authedUser),
		"userID", "7")
	rec := httptest.NewRecorder()

	h.uploadProfilePicture(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"profile_picture":"/static/uploads/avatar.png"}`, rec.Body.String())
}

// TestUploadProfilePicture_OtherUserForbidden verifies that uploading an
// avatar for a different account maps to 403.
func TestUploadProfilePicture_OtherUserForbidden(t *testing.T) {
	h := newTestHandler(newMockServices(), &fakeAuthenticator{})

	req := withURLParam(
		withUser(multipartRequest(t, "/upload_profile_picture/99", nil, "profile_pic", "avatar.png", []byte("png-bytes")), authedUser),
		"userID", "99")
	rec := httptest.NewRecorder()

	h.uploadProfilePicture(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot upload a picture for another user")
}

// TestUploadProfilePicture_MissingFile verifies that a form without a
// picture maps to 400.
func TestUploadProfilePicture_MissingFile(t *testing.T) {
	h := newTestHandler(newMockServices(), &fakeAuthenticator{})

	req := withURLParam(
		withUser(multipartRequest(t, "/upload_profile_picture/7", map[string]string{"unrelated": "field"}, "", "", nil), authedUser),
		"userID", "7")
	rec := httptest.NewRecorder()

	h.uploadProfilePicture(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no picture uploaded")
}
