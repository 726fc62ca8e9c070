package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_FormEncodedWithoutBearer(t *testing.T) {
	g, store, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a@b.com", r.PostForm.Get("username"))
		assert.Equal(t, "x", r.PostForm.Get("password"))
		_, _ = io.WriteString(w, `{"access_token":"tok123","refresh_token":"r1","token_type":"bearer"}`)
	}, "old-token")

	resp, err := g.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, models.AuthResponse{AccessToken: "tok123", RefreshToken: "r1", TokenType: "bearer"}, *resp)

	tok, _ := store.Get(context.Background())
	assert.Equal(t, "old-token", tok, "login does not write the store")
}

func TestLogin_WrongCredentialsDoesNotNavigate(t *testing.T) {
	g, store, rr := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Incorrect email or password"}`)
	}, "")

	_, err := g.Login(context.Background(), "a@b.com", "bad")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Incorrect email or password", ErrorDetail(err, "Failed to login"))
	assert.Empty(t, rr.calls())

	tok, _ := store.Get(context.Background())
	assert.Empty(t, tok)
}

func TestLogin_MissingToken(t *testing.T) {
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"token_type":"bearer"}`)
	}, "")

	_, err := g.Login(context.Background(), "a@b.com", "x")
	require.ErrorIs(t, err, ErrNoAccessToken)
}

func TestSignupAndRefresh(t *testing.T) {
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch r.URL.Path {
		case "/api/v1/auth/signup":
			assert.Equal(t, "Ann Lee", body["full_name"])
			_, _ = io.WriteString(w, `{"id":"u1","email":"ann@example.com","full_name":"Ann Lee","is_admin":false}`)
		case "/api/v1/auth/refresh":
			assert.Equal(t, "r1", body["refresh_token"])
			_, _ = io.WriteString(w, `{"access_token":"tok2","refresh_token":"r2"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, "tok")

	u, err := g.Signup(context.Background(), "ann@example.com", "pw", "Ann Lee")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	resp, err := g.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "tok2", resp.AccessToken)
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"backend detail", newAPIError(400, []byte(`{"detail":"Template already exists"}`)), "Template already exists"},
		{"no detail", newAPIError(500, []byte(`<html>`)), "Failed to save template"},
		{"transport", ErrUnavailable, "Failed to save template"},
		{"validation", &models.ValidationError{Message: "Please fill in all required fields"}, "Please fill in all required fields"},
		{"wrapped", errors.Join(errors.New("ctx"), newAPIError(404, []byte(`{"detail":"gone"}`))), "gone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorDetail(tt.err, "Failed to save template"))
		})
	}
}
