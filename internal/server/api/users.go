package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/go-chi/chi/v5"
)

const defaultLimit = 100

// pageParams reads skip and limit, answering 422 itself on bad values.
func pageParams(w http.ResponseWriter, r *http.Request) (skip, limit int, ok bool) {
	limit = defaultLimit
	q := r.URL.Query()
	for name, dst := range map[string]*int{"skip": &skip, "limit": &limit} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeValidation(w, []fieldError{{Loc: []string{"query", name}, Msg: "value is not a valid non-negative integer", Type: "type_error.integer"}})
			return 0, 0, false
		}
		*dst = n
	}
	return skip, limit, true
}

func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r).Public())
}

func (a *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	list, err := a.users.List(r.Context(), skip, limit)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	out := make([]models.User, 0, len(list))
	for _, u := range list {
		out = append(out, u.Public())
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var upd models.UserUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	u, err := a.users.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, u.Public())
}
