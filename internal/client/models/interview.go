package models

import (
	"encoding/json"
	"net/url"
)

// Interview is one practice session of a user. Score and turns are opaque.
type Interview struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	LessonID     string            `json:"lesson_id"`
	Status       string            `json:"status"`
	StartedAt    string            `json:"started_at"`
	EndedAt      string            `json:"ended_at,omitempty"`
	DurationSec  *int              `json:"duration_sec,omitempty"`
	OverallScore json.RawMessage   `json:"overall_score,omitempty"`
	Turns        []json.RawMessage `json:"turns,omitempty"`
}

// InterviewFilters narrows GET /interviews.
type InterviewFilters struct {
	UserID   string
	LessonID string
	Status   string
	Page
}

func (f InterviewFilters) Values() url.Values {
	v := url.Values{}
	setIfNotEmpty(v, "user_id", f.UserID)
	setIfNotEmpty(v, "lesson_id", f.LessonID)
	setIfNotEmpty(v, "status", f.Status)
	f.Page.encode(v)
	return v
}

// ParseInterviewFilters reads key=value pairs such as "status=completed".
func ParseInterviewFilters(args []string) (InterviewFilters, error) {
	var f InterviewFilters
	err := parsePairs(args, func(k, v string) (bool, error) {
		switch k {
		case "user_id":
			f.UserID = v
		case "lesson_id":
			f.LessonID = v
		case "status":
			f.Status = v
		default:
			return f.Page.set(k, v)
		}
		return true, nil
	})
	return f, err
}

// InterviewUpdate is a partial update sent with PATCH.
type InterviewUpdate struct {
	Status       *string         `json:"status,omitempty"`
	EndedAt      *string         `json:"ended_at,omitempty"`
	OverallScore json.RawMessage `json:"overall_score,omitempty"`
}

// Embedding is the vector produced for one text.
type Embedding struct {
	Embedding []float64 `json:"embedding"`
}

// Embeddings is the batch form of Embedding.
type Embeddings struct {
	Embeddings [][]float64 `json:"embeddings"`
}
