package register

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

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/primetrade/internal/models"
	"github.com/magabrotheeeer/primetrade/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, in auth.RegisterInput) (*auth.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	session := &auth.Session{
		Token: "jwt-token",
		User:  &models.User{UUID: "uid-1", Username: "alice", Name: "alice", Email: "a@x.com", Role: models.RoleUser, IsActive: true},
	}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantMessage    string
		wantToken      string
	}{
		{
			name:        "valid registration",
			requestBody: map[string]string{"username": "alice", "email": "a@x.com", "password": "secret1"},
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, auth.RegisterInput{Username: "alice", Email: "a@x.com", Password: "secret1"}).
					Return(session, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
			wantMessage:    "User registered successfully",
			wantToken:      "jwt-token",
		},
		{
			name:        "name used as username",
			requestBody: map[string]string{"name": "alice", "email": "a@x.com", "password": "secret1"},
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, auth.RegisterInput{Username: "alice", Name: "alice", Email: "a@x.com", Password: "secret1"}).
					Return(session, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
			wantMessage:    "User registered successfully",
			wantToken:      "jwt-token",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "invalid request body",
		},
		{
			name:           "validation error - missing password",
			requestBody:    map[string]string{"username": "alice", "email": "a@x.com"},
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantMessage:    "field Password is a required field",
		},
		{
			name:           "validation error - bad email",
			requestBody:    map[string]string{"username": "alice", "email": "nope", "password": "secret1"},
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantMessage:    "field Email must be a valid email",
		},
		{
			name:           "validation error - multibyte password over 72 bytes",
			requestBody:    map[string]string{"username": "alice", "email": "a@x.com", "password": strings.Repeat("п", 40)},
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantMessage:    "field Password must be at most 72 bytes",
		},
		{
			name:           "validation error - email too long",
			requestBody:    map[string]string{"username": "alice", "email": "a@" + strings.Repeat("abcdefghij.", 25) + "com", "password": "secret1"},
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantMessage:    "field Email",
		},
		{
			name:        "duplicate identity",
			requestBody: map[string]string{"username": "alice", "email": "a@x.com", "password": "secret1"},
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("auth.Register: %w", auth.ErrDuplicateIdentity)).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "User already exists",
		},
		{
			name:        "service error",
			requestBody: map[string]string{"username": "alice", "email": "a@x.com", "password": "secret1"},
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    "Server error during registration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)
			handler := New(newNoopLogger(), authMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Contains(t, got["message"], tt.wantMessage)

			if tt.wantToken != "" {
				assert.Equal(t, tt.wantToken, got["token"])
				user, ok := got["user"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "alice", user["username"])
				assert.Equal(t, "uid-1", user["id"])
				assert.NotContains(t, user, "passwordHash")
			} else {
				assert.Equal(t, "Error", got["status"])
				assert.Nil(t, got["token"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
