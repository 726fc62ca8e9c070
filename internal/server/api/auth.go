package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/dmitrijs2005/prepadmin/internal/server/users"
)

func tokenResponse(p *users.TokenPair) models.AuthResponse {
	return models.AuthResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, TokenType: "bearer"}
}

// Login is the OAuth2 password form: username and password, form-encoded.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeValidation(w, []fieldError{{Loc: []string{"body"}, Msg: "invalid form body", Type: "value_error"}})
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	var errs []fieldError
	if username == "" {
		errs = append(errs, missing("username"))
	}
	if password == "" {
		errs = append(errs, missing("password"))
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	pair, err := a.users.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			a.log.Info(r.Context(), "login rejected", "email", username)
			writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		a.log.Error(r.Context(), "login failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(pair))
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Signup registers a regular, non-admin account.
func (a *API) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var errs []fieldError
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, missing("email"))
	}
	if req.Password == "" {
		errs = append(errs, missing("password"))
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	u, err := a.users.Register(r.Context(), req.Email, req.Password, req.FullName, false)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeDetail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		a.log.Error(r.Context(), "signup failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	a.log.Info(r.Context(), "registered", "email", u.Email)
	writeJSON(w, http.StatusCreated, u.Public())
}

func (a *API) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeValidation(w, []fieldError{missing("refresh_token")})
		return
	}
	pair, err := a.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(pair))
}
