package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/dmitrijs2005/prepadmin/internal/server/users"
)

type ctxKey string

const userKey ctxKey = "user"

const (
	detailNotAuthenticated = "Not authenticated"
	detailBadCredentials   = "Could not validate credentials"
	detailAdminRequired    = "Admin privileges required"
)

// AuthMiddleware resolves the bearer token to a user and stores it in the
// request context. Requests without a valid token get 401.
func (a *API) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get(common.AuthorizationHeaderName)
		if !strings.HasPrefix(h, common.BearerPrefix) {
			writeDetail(w, http.StatusUnauthorized, detailNotAuthenticated)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(h, common.BearerPrefix))

		user, err := a.users.Authenticate(r.Context(), token)
		if err != nil {
			a.log.Debug(r.Context(), "token rejected", "error", err)
			writeDetail(w, http.StatusUnauthorized, detailBadCredentials)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware must run after AuthMiddleware.
func (a *API) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := currentUser(r); u == nil || !u.IsAdmin {
			writeDetail(w, http.StatusForbidden, detailAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) *users.User {
	u, _ := r.Context().Value(userKey).(*users.User)
	return u
}
