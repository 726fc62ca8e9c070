package content

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
)

// Store groups the content collections served by the API.
type Store struct {
	Templates  *Collection[models.Template]
	Lessons    *Collection[models.Lesson]
	Interviews *Collection[models.Interview]
}

func NewStore() *Store {
	return &Store{
		Templates:  NewCollection(func(t models.Template) string { return t.ID }),
		Lessons:    NewCollection(func(l models.Lesson) string { return l.ID }),
		Interviews: NewCollection(func(i models.Interview) string { return i.ID }),
	}
}

// Seed adds one sample template and one sample lesson so a fresh server has
// something to show.
func (s *Store) Seed(now time.Time) error {
	ts := now.UTC().Format(time.RFC3339)

	t := models.NewTemplate()
	t.ID = "tmpl-coffee-market"
	t.Title = "Coffee chain market entry"
	t.CaseType = "Market entry"
	t.LeadType = models.LeadTypes[0]
	t.Difficulty = "Medium"
	t.Company = "Bean & Co"
	t.Industry = "Retail"
	t.Prompt = "Our client, a regional coffee chain, is considering entering a neighbouring country."
	t.DescriptionShort = "Should a coffee chain expand abroad?"
	t.Structure = map[string]models.QuestionStructure{
		"question1": {Prompt: "How would you structure this problem?", Context: "Framework"},
		"question2": {Prompt: "Estimate the size of the coffee market.", Context: "Market sizing"},
		"question3": {Prompt: "Which entry mode would you recommend?", Context: "Options"},
		"question4": {Prompt: "Summarise your recommendation.", Context: "Synthesis"},
	}
	t.CreatedAt, t.UpdatedAt = ts, ts
	if err := s.Templates.Create(t); err != nil {
		return err
	}

	l := models.NewLesson()
	l.ID = "lesson-frameworks-101"
	l.Title = "Frameworks 101"
	l.Company = "Bean & Co"
	l.ShortDescription = "Build your first issue tree."
	body := models.DefaultLessonBody()
	body.Phases[0].Content = "Welcome. Today we practise structuring a case."
	body.Phases[1].Questions[0].Text = "What drives a coffee shop's profit?"
	body.Phases[1].Questions[0].ExpectedComponents[0].Description = "Revenue and costs"
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	l.Body = raw
	l.CreatedAt = ts
	return s.Lessons.Create(l)
}
