package models

import (
	"fmt"
	"net/url"
	"sort"
)

// QuestionStructure is one question slot of a template.
type QuestionStructure struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

// Template is a case-interview template. Structure maps an opaque slot key
// (question1, question2, ...) to its prompt and context.
type Template struct {
	ID               string                       `json:"id,omitempty"`
	CaseType         string                       `json:"case_type"`
	LeadType         string                       `json:"lead_type"`
	Difficulty       string                       `json:"difficulty"`
	Company          string                       `json:"company"`
	Industry         string                       `json:"industry"`
	Prompt           string                       `json:"prompt"`
	Structure        map[string]QuestionStructure `json:"structure"`
	ImageURL         string                       `json:"image_url"`
	Version          string                       `json:"version"`
	Title            string                       `json:"title"`
	DescriptionShort string                       `json:"description_short"`
	DescriptionLong  string                       `json:"description_long"`
	Duration         int                          `json:"duration"`
	CreatedAt        string                       `json:"created_at,omitempty"`
	UpdatedAt        string                       `json:"updated_at,omitempty"`
}

// DefaultQuestionSlots is the slot set of a new template.
var DefaultQuestionSlots = []string{"question1", "question2", "question3", "question4"}

// Values offered by the template form.
var (
	LeadTypes    = []string{"Interviewer-led", "Candidate-led"}
	Difficulties = []string{"Easy", "Medium", "Hard"}
)

// NewTemplate returns an empty template with the default slots, version 1.0
// and a 30 minute duration.
func NewTemplate() Template {
	s := make(map[string]QuestionStructure, len(DefaultQuestionSlots))
	for _, k := range DefaultQuestionSlots {
		s[k] = QuestionStructure{}
	}
	return Template{Structure: s, Version: "1.0", Duration: 30}
}

// SlotKeys returns the structure keys in a stable order.
func (t Template) SlotKeys() []string {
	keys := make([]string, 0, len(t.Structure))
	for k := range t.Structure {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks required fields, then every structure slot.
func (t Template) Validate() error {
	if t.CaseType == "" || t.LeadType == "" || t.Difficulty == "" || t.Prompt == "" {
		return invalid(MsgRequiredFields)
	}
	for _, k := range t.SlotKeys() {
		q := t.Structure[k]
		if q.Prompt == "" || q.Context == "" {
			return invalid(fmt.Sprintf("Please fill in all fields for %s", k))
		}
	}
	return nil
}

// TemplateFilters narrows GET /templates.
type TemplateFilters struct {
	CaseType   string
	LeadType   string
	Difficulty string
	Company    string
	Industry   string
	Page
}

func (f TemplateFilters) Values() url.Values {
	v := url.Values{}
	setIfNotEmpty(v, "case_type", f.CaseType)
	setIfNotEmpty(v, "lead_type", f.LeadType)
	setIfNotEmpty(v, "difficulty", f.Difficulty)
	setIfNotEmpty(v, "company", f.Company)
	setIfNotEmpty(v, "industry", f.Industry)
	f.Page.encode(v)
	return v
}

// ParseTemplateFilters reads key=value pairs such as "difficulty=Hard".
func ParseTemplateFilters(args []string) (TemplateFilters, error) {
	var f TemplateFilters
	err := parsePairs(args, func(k, v string) (bool, error) {
		switch k {
		case "case_type":
			f.CaseType = v
		case "lead_type":
			f.LeadType = v
		case "difficulty":
			f.Difficulty = v
		case "company":
			f.Company = v
		case "industry":
			f.Industry = v
		default:
			return f.Page.set(k, v)
		}
		return true, nil
	})
	return f, err
}
