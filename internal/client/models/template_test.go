package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledTemplate() Template {
	t := NewTemplate()
	t.CaseType = "Profitability"
	t.LeadType = "Interviewer-led"
	t.Difficulty = "Medium"
	t.Prompt = "A retailer sees falling margins."
	for _, k := range DefaultQuestionSlots {
		t.Structure[k] = QuestionStructure{Prompt: "p " + k, Context: "c " + k}
	}
	return t
}

func TestNewTemplate_Defaults(t *testing.T) {
	tpl := NewTemplate()
	assert.Equal(t, "1.0", tpl.Version)
	assert.Equal(t, 30, tpl.Duration)
	assert.Equal(t, DefaultQuestionSlots, tpl.SlotKeys())
}

func TestTemplate_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Template)
		want   string
	}{
		{"ok", func(*Template) {}, ""},
		{"missing case type", func(t *Template) { t.CaseType = "" }, MsgRequiredFields},
		{"missing lead type", func(t *Template) { t.LeadType = "" }, MsgRequiredFields},
		{"missing difficulty", func(t *Template) { t.Difficulty = "" }, MsgRequiredFields},
		{"missing prompt", func(t *Template) { t.Prompt = "" }, MsgRequiredFields},
		{"slot without context", func(t *Template) {
			t.Structure["question3"] = QuestionStructure{Prompt: "p"}
		}, "Please fill in all fields for question3"},
		{"first bad slot reported", func(t *Template) {
			t.Structure["question4"] = QuestionStructure{}
			t.Structure["question2"] = QuestionStructure{Context: "c"}
		}, "Please fill in all fields for question2"},
		{"custom slot", func(t *Template) {
			t.Structure["bonus"] = QuestionStructure{}
		}, "Please fill in all fields for bonus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := filledTemplate()
			tt.mutate(&tpl)
			err := tpl.Validate()
			if tt.want == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestTemplateFilters_Values(t *testing.T) {
	f := TemplateFilters{Difficulty: "Hard", Company: "Acme", Page: Page{Limit: 20}}
	assert.Equal(t, "company=Acme&difficulty=Hard&limit=20", f.Values().Encode())
	assert.Empty(t, TemplateFilters{}.Values())
}

func TestParseTemplateFilters(t *testing.T) {
	got, err := ParseTemplateFilters([]string{"case_type=Market sizing", "industry=Retail", "skip=10", "limit=5"})
	require.NoError(t, err)
	want := TemplateFilters{CaseType: "Market sizing", Industry: "Retail", Page: Page{Skip: 10, Limit: 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filters mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseTemplateFilters([]string{"difficulty"})
	require.ErrorContains(t, err, "must be key=value")
	_, err = ParseTemplateFilters([]string{"color=red"})
	require.ErrorContains(t, err, "unknown filter")
	_, err = ParseTemplateFilters([]string{"limit=many"})
	require.ErrorContains(t, err, "limit")
}
