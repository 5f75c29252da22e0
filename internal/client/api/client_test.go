package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", WithHTTPClient(srv.Client()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_Login(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@x.com", body["email"])
		assert.Equal(t, "secret1", body["password"])
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"token":   "T",
			"user":    map[string]any{"id": "uid-1", "username": "alice", "email": "a@x.com"},
		})
	})

	resp, err := c.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "T", resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestClient_ErrorMessage(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "Error", "message": "Invalid credentials"})
	})

	_, err := c.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	msg, ok := MessageOf(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid credentials", msg)
}

func TestClient_ErrorWithoutBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.Logout(context.Background(), "T")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	_, ok := MessageOf(err)
	assert.False(t, ok)
}

func TestClient_AuthorizedCalls(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer T" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized to access this route"})
			return
		}
		switch r.URL.Path {
		case "/api/auth/me":
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": "uid-1", "username": "alice"}})
		case "/api/auth/profile":
			assert.Equal(t, http.MethodPut, r.Method)
			writeJSON(w, http.StatusOK, map[string]any{"message": "Profile updated successfully", "user": map[string]any{"id": "uid-1", "name": "Alice Doe"}})
		case "/api/dashboard":
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"stats": map[string]any{"totalTrades": 5}}})
		case "/api/dashboard/stats":
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"monthly": []map[string]any{{"month": "Jan"}}}})
		case "/api/auth/logout":
			writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	user, err := c.Me(ctx, "T")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.ID)

	updated, err := c.UpdateProfile(ctx, "T", "Alice Doe", "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice Doe", updated.Name)

	data, err := c.Dashboard(ctx, "T")
	require.NoError(t, err)
	assert.Equal(t, 5, data.Stats.TotalTrades)

	stats, err := c.Stats(ctx, "T")
	require.NoError(t, err)
	assert.Len(t, stats.Monthly, 1)

	require.NoError(t, c.Logout(ctx, "T"))

	_, err = c.Me(ctx, "other")
	msg, _ := MessageOf(err)
	assert.Equal(t, "Not authorized to access this route", msg)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := New(srv.URL)
	srv.Close()

	_, err := c.Me(context.Background(), "T")
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}
