package models

import (
	"encoding/json"
)

// DefaultVoiceID is the narration voice of a new lesson.
const DefaultVoiceID = "en-US-Neural2-F"

// LessonDifficulties are the values offered by the lesson form.
var LessonDifficulties = []string{"easy", "medium", "hard"}

// Lesson is a guided practice lesson. Body is kept as raw JSON: the backend
// owns its schema.
type Lesson struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Difficulty       string          `json:"difficulty"`
	Company          string          `json:"company"`
	Body             json.RawMessage `json:"body"`
	ImageURL         string          `json:"image_url"`
	ShortDescription string          `json:"short_description"`
	LongDescription  string          `json:"long_description"`
	CreatedAt        string          `json:"created_at,omitempty"`
}

// LessonBody is a typed view of Lesson.Body.
type LessonBody struct {
	Phases  []Phase `json:"phases"`
	VoiceID string  `json:"voice_id"`
}

type Phase struct {
	Type      string     `json:"type"`
	Content   string     `json:"content,omitempty"`
	Questions []Question `json:"questions,omitempty"`
}

type Question struct {
	Text               string              `json:"text"`
	ExpectedComponents []ExpectedComponent `json:"expected_components"`
}

type ExpectedComponent struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// DefaultLessonBody is an introduction phase followed by one questioning
// phase with a single expected component.
func DefaultLessonBody() LessonBody {
	return LessonBody{
		Phases: []Phase{
			{Type: "introduction"},
			{
				Type: "questioning",
				Questions: []Question{{
					ExpectedComponents: []ExpectedComponent{{ID: "component1"}},
				}},
			},
		},
		VoiceID: DefaultVoiceID,
	}
}

// NewLesson returns an empty medium-difficulty lesson with the default body.
func NewLesson() Lesson {
	body, _ := json.MarshalIndent(DefaultLessonBody(), "", "  ")
	return Lesson{Difficulty: "medium", Body: body}
}

// Validate checks required fields and that Body is well-formed JSON. The
// body's shape is not checked.
func (l Lesson) Validate() error {
	if l.ID == "" || l.Title == "" || l.Difficulty == "" {
		return invalid(MsgRequiredFields)
	}
	if len(l.Body) == 0 || !json.Valid(l.Body) {
		return invalid(MsgInvalidBodyJSON)
	}
	return nil
}

// ParseLessonBody decodes raw into a LessonBody. Unknown fields are ignored
// and a body that is not an object yields an error.
func ParseLessonBody(raw json.RawMessage) (LessonBody, error) {
	var b LessonBody
	if err := json.Unmarshal(raw, &b); err != nil {
		return LessonBody{}, err
	}
	return b, nil
}

// QuestionCount is the number of questions across all phases.
func (b LessonBody) QuestionCount() int {
	n := 0
	for _, p := range b.Phases {
		n += len(p.Questions)
	}
	return n
}
