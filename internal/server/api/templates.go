package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const detailTemplateNotFound = "Template not found"

func templateErrors(t models.Template) []fieldError {
	var errs []fieldError
	for _, f := range []struct{ name, value string }{
		{"case_type", t.CaseType},
		{"lead_type", t.LeadType},
		{"difficulty", t.Difficulty},
		{"prompt", t.Prompt},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, missing(f.name))
		}
	}
	for _, k := range t.SlotKeys() {
		q := t.Structure[k]
		if q.Prompt == "" {
			errs = append(errs, fieldError{Loc: []string{"body", "structure", k, "prompt"}, Msg: "field required", Type: "value_error.missing"})
		}
	}
	return errs
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (a *API) ListTemplates(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	match := func(t models.Template) bool {
		if v := q.Get("case_type"); v != "" && !strings.EqualFold(t.CaseType, v) {
			return false
		}
		if v := q.Get("lead_type"); v != "" && !strings.EqualFold(t.LeadType, v) {
			return false
		}
		if v := q.Get("difficulty"); v != "" && !strings.EqualFold(t.Difficulty, v) {
			return false
		}
		if v := q.Get("company"); v != "" && !containsFold(t.Company, v) {
			return false
		}
		if v := q.Get("industry"); v != "" && !containsFold(t.Industry, v) {
			return false
		}
		return true
	}
	writeJSON(w, http.StatusOK, a.store.Templates.List(match, skip, limit))
}

func (a *API) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := a.store.Templates.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailTemplateNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (a *API) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var t models.Template
	if !decodeJSON(w, r, &t) {
		return
	}
	if errs := templateErrors(t); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	t.ID = uuid.NewString()
	t.CreatedAt = a.timestamp()
	t.UpdatedAt = t.CreatedAt
	if err := a.store.Templates.Create(t); err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	a.log.Info(r.Context(), "template created", "id", t.ID, "by", currentUser(r).Email)
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTemplate replaces the whole record; id and created_at are kept.
func (a *API) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cur, err := a.store.Templates.Get(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailTemplateNotFound)
		return
	}
	var t models.Template
	if !decodeJSON(w, r, &t) {
		return
	}
	if errs := templateErrors(t); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	t.ID = id
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = a.timestamp()
	if err := a.store.Templates.Put(id, t); err != nil {
		writeDetail(w, http.StatusNotFound, detailTemplateNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (a *API) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Templates.Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusNotFound, detailTemplateNotFound)
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
