package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/go-chi/chi/v5"
)

const detailLessonNotFound = "Lesson not found"

func lessonErrors(l models.Lesson, requireID bool) []fieldError {
	var errs []fieldError
	if requireID && strings.TrimSpace(l.ID) == "" {
		errs = append(errs, missing("id"))
	}
	if strings.TrimSpace(l.Title) == "" {
		errs = append(errs, missing("title"))
	}
	if len(l.Body) == 0 || string(l.Body) == "null" {
		errs = append(errs, missing("body"))
	} else if !json.Valid(l.Body) {
		errs = append(errs, fieldError{Loc: []string{"body", "body"}, Msg: "invalid JSON", Type: "value_error.json"})
	}
	return errs
}

func (a *API) ListLessons(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a.store.Lessons.List(nil, skip, limit))
}

func (a *API) GetLesson(w http.ResponseWriter, r *http.Request) {
	l, err := a.store.Lessons.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailLessonNotFound)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// CreateLesson stores a lesson under the client-chosen id.
func (a *API) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var l models.Lesson
	if !decodeJSON(w, r, &l) {
		return
	}
	if errs := lessonErrors(l, true); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	l.CreatedAt = a.timestamp()
	if err := a.store.Lessons.Create(l); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeDetail(w, http.StatusBadRequest, "Lesson with this ID already exists")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	a.log.Info(r.Context(), "lesson created", "id", l.ID, "by", currentUser(r).Email)
	writeJSON(w, http.StatusCreated, l)
}

// UpdateLesson takes the whole lesson; the id in the path wins.
func (a *API) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cur, err := a.store.Lessons.Get(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailLessonNotFound)
		return
	}
	var l models.Lesson
	if !decodeJSON(w, r, &l) {
		return
	}
	if errs := lessonErrors(l, false); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	l.ID = id
	l.CreatedAt = cur.CreatedAt
	if err := a.store.Lessons.Put(id, l); err != nil {
		writeDetail(w, http.StatusNotFound, detailLessonNotFound)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (a *API) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Lessons.Delete(chi.URLParam(r, "id")); err != nil {
		writeDetail(w, http.StatusNotFound, detailLessonNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
