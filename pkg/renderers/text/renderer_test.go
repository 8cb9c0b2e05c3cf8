package text_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/render"
	"github.com/goliatone/go-questionnaire/pkg/renderers/text"
)

func TestRenderSectionPreview(t *testing.T) {
	doc := render.Document{
		Respondent: questionnaire.Respondent{
			Name:          "Test",
			RegisteredAt:  time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
			ApplicationID: "12345678",
		},
		Set: questionnaire.QuestionSet{Sections: []questionnaire.Section{
			{Key: "legislative", Questions: []string{"Q1", "Q2"}},
		}},
		Mode:    questionnaire.ModeSection,
		Section: "legislative",
	}
	out, err := text.New().Render(context.Background(), doc, render.RenderOptions{
		Values: map[string]string{"answer_0": "First answer"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		"Centre-State Relations Questionnaire",
		"Legislative",
		"Name: Test | Profession:  | Specialization:  | State:  | Date: 01-05-2024",
		"Application ID: 12345678",
		"1. Q1",
		"[answer_0] Answer for question 1",
		"    First answer",
		"2. Q2",
		"[answer_1] Answer for question 2",
		"",
	}, "\n")
	if string(out) != want {
		t.Fatalf("preview mismatch\nwant:\n%s\ngot:\n%s", want, out)
	}
}

func TestRenderFullPreviewMarksPages(t *testing.T) {
	doc := render.Document{
		Respondent: questionnaire.Respondent{Name: "Test", ApplicationID: "12345678"},
		Set:        questionnaire.CentreState(),
		Mode:       questionnaire.ModeFull,
	}
	out, err := text.New(text.WithFieldMarker(func(name, _ string) string { return "<" + name + ">" })).Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	preview := string(out)
	if !strings.Contains(preview, "--- page 2 ---") {
		t.Fatalf("expected page separators")
	}
	if strings.Count(preview, "<answer_") != 24 {
		t.Fatalf("expected 24 field markers")
	}
}
