package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/primetrade/internal/http/middlewarectx"
	"github.com/magabrotheeeer/primetrade/internal/models"
	"github.com/magabrotheeeer/primetrade/internal/services/auth"
)

type ProfileServiceMock struct {
	mock.Mock
}

func (m *ProfileServiceMock) UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error) {
	args := m.Called(ctx, userUID, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestProfileHandler_ServeHTTP(t *testing.T) {
	current := &models.User{UUID: "uid-1", Username: "alice", Name: "Alice", Email: "a@x.com", Role: models.RoleUser, IsActive: true}
	updated := &models.User{UUID: "uid-1", Username: "alice", Name: "Alice Doe", Email: "alice@x.com", Role: models.RoleUser, IsActive: true}

	tests := []struct {
		name           string
		body           string
		withUser       bool
		mockUser       *models.User
		mockErr        error
		callService    bool
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "successful update",
			body:           `{"name":"Alice Doe","email":"alice@x.com"}`,
			withUser:       true,
			mockUser:       updated,
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantMessage:    "Profile updated successfully",
		},
		{
			name:           "no user in context",
			body:           `{"name":"Alice Doe","email":"alice@x.com"}`,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    middlewarectx.MsgNoToken,
		},
		{
			name:           "invalid json",
			body:           `{"name":`,
			withUser:       true,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "invalid request body",
		},
		{
			name:           "short name",
			body:           `{"name":"A","email":"alice@x.com"}`,
			withUser:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantMessage:    "field Name",
		},
		{
			name:           "email too long",
			body:           `{"name":"Alice Doe","email":"a@` + strings.Repeat("abcdefghij.", 25) + `com"}`,
			withUser:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantMessage:    "field Email",
		},
		{
			name:           "email taken",
			body:           `{"name":"Alice Doe","email":"alice@x.com"}`,
			withUser:       true,
			mockErr:        fmt.Errorf("auth.UpdateProfile: %w", auth.ErrDuplicateIdentity),
			callService:    true,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Email already in use",
		},
		{
			name:           "user vanished",
			body:           `{"name":"Alice Doe","email":"alice@x.com"}`,
			withUser:       true,
			mockErr:        fmt.Errorf("auth.UpdateProfile: %w", auth.ErrUserNotFound),
			callService:    true,
			wantStatusCode: http.StatusNotFound,
			wantMessage:    "User not found",
		},
		{
			name:           "service error",
			body:           `{"name":"Alice Doe","email":"alice@x.com"}`,
			withUser:       true,
			mockErr:        errors.New("db error"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    "Server error updating profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ProfileServiceMock)
			if tt.callService {
				var ret any
				if tt.mockUser != nil {
					ret = tt.mockUser
				}
				svc.On("UpdateProfile", mock.Anything, "uid-1", "Alice Doe", "alice@x.com").
					Return(ret, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", bytes.NewBufferString(tt.body))
			if tt.withUser {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, current))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Contains(t, got["message"], tt.wantMessage)
			if tt.wantStatusCode == http.StatusOK {
				user := got["user"].(map[string]any)
				assert.Equal(t, "Alice Doe", user["name"])
				assert.Equal(t, "alice@x.com", user["email"])
			}
			svc.AssertExpectations(t)
		})
	}
}
