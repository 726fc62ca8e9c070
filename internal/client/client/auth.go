package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
)

// ErrNoAccessToken is returned when a login or refresh response lacks a token.
var ErrNoAccessToken = errors.New("response has no access token")

// Login exchanges email and password for tokens. The body is form-encoded
// (username, password) and no bearer header is sent. The token is not stored.
func (g *Gateway) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var out models.AuthResponse
	err := g.doAnonymous(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Body:        strings.NewReader(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, ErrNoAccessToken
	}
	return &out, nil
}

// Signup registers a new account.
func (g *Gateway) Signup(ctx context.Context, email, password, fullName string) (*models.User, error) {
	var out models.User
	err := g.doAnonymous(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		JSON: map[string]string{
			"email":     email,
			"password":  password,
			"full_name": fullName,
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh trades a refresh token for a new token pair.
func (g *Gateway) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := g.doAnonymous(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		JSON:   map[string]string{"refresh_token": refreshToken},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, ErrNoAccessToken
	}
	return &out, nil
}
