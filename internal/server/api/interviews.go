package api

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	detailInterviewNotFound = "Interview not found"
	embeddingDims           = 16
)

// visible reports whether the caller may see it: admins see every
// interview, others only their own.
func visible(r *http.Request, it models.Interview) bool {
	u := currentUser(r)
	return u.IsAdmin || it.UserID == u.ID
}

func (a *API) ListInterviews(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	match := func(it models.Interview) bool {
		if !visible(r, it) {
			return false
		}
		if v := q.Get("user_id"); v != "" && it.UserID != v {
			return false
		}
		if v := q.Get("lesson_id"); v != "" && it.LessonID != v {
			return false
		}
		if v := q.Get("status"); v != "" && it.Status != v {
			return false
		}
		return true
	}
	writeJSON(w, http.StatusOK, a.store.Interviews.List(match, skip, limit))
}

func (a *API) GetInterview(w http.ResponseWriter, r *http.Request) {
	it, err := a.store.Interviews.Get(chi.URLParam(r, "id"))
	if err != nil || !visible(r, it) {
		writeDetail(w, http.StatusNotFound, detailInterviewNotFound)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// CreateInterview starts an interview on a lesson for the caller.
func (a *API) CreateInterview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LessonID string `json:"lesson_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LessonID == "" {
		writeValidation(w, []fieldError{missing("lesson_id")})
		return
	}
	if _, err := a.store.Lessons.Get(req.LessonID); err != nil {
		writeDetail(w, http.StatusNotFound, detailLessonNotFound)
		return
	}
	it := models.Interview{
		ID:        uuid.NewString(),
		UserID:    currentUser(r).ID,
		LessonID:  req.LessonID,
		Status:    "in_progress",
		StartedAt: a.timestamp(),
	}
	if err := a.store.Interviews.Create(it); err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (a *API) UpdateInterview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	it, err := a.store.Interviews.Get(id)
	if err != nil || !visible(r, it) {
		writeDetail(w, http.StatusNotFound, detailInterviewNotFound)
		return
	}
	var upd models.InterviewUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	if upd.Status != nil {
		it.Status = *upd.Status
	}
	if upd.EndedAt != nil {
		it.EndedAt = *upd.EndedAt
	}
	if len(upd.OverallScore) > 0 {
		it.OverallScore = upd.OverallScore
	}
	if err := a.store.Interviews.Put(id, it); err != nil {
		writeDetail(w, http.StatusNotFound, detailInterviewNotFound)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (a *API) DeleteInterview(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Interviews.Delete(chi.URLParam(r, "id")); err != nil {
		writeDetail(w, http.StatusNotFound, detailInterviewNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// embed derives a deterministic unit vector from text. It stands in for a
// real embedding model.
func embed(text string) []float64 {
	v := make([]float64, embeddingDims)
	var norm float64
	for i := range v {
		sum := sha256.Sum256([]byte{byte(i)})
		h := sha256.Sum256(append(sum[:], strings.ToLower(text)...))
		x := float64(int32(binary.BigEndian.Uint32(h[:4]))) / math.MaxInt32
		v[i] = x
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range v {
			v[i] /= norm
		}
	}
	return v
}

func (a *API) Embedding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeValidation(w, []fieldError{missing("text")})
		return
	}
	writeJSON(w, http.StatusOK, models.Embedding{Embedding: embed(req.Text)})
}

func (a *API) Embeddings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts []string `json:"texts"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Texts) == 0 {
		writeValidation(w, []fieldError{missing("texts")})
		return
	}
	out := models.Embeddings{Embeddings: make([][]float64, 0, len(req.Texts))}
	for _, t := range req.Texts {
		out.Embeddings = append(out.Embeddings, embed(t))
	}
	writeJSON(w, http.StatusOK, out)
}
