package questionnaire_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	questionnaire "github.com/goliatone/go-questionnaire"
	pkgquestionnaire "github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

func TestGeneratePDF(t *testing.T) {
	t.Parallel()

	respondent := questionnaire.Respondent{
		Name:           "Test",
		Profession:     "Scholars",
		Specialization: "Economics",
		State:          "Assam",
		RegisteredAt:   time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		ApplicationID:  "00000042",
	}

	result, err := questionnaire.GeneratePDF(context.Background(), respondent, "financial")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Filename != "CSR_financial_00000042.pdf" {
		t.Fatalf("filename = %q", result.Filename)
	}
	if !bytes.HasPrefix(result.Content, []byte("%PDF-")) {
		t.Fatalf("content is not a PDF")
	}

	if _, err := questionnaire.GeneratePDF(context.Background(), respondent, "unknown"); err == nil {
		t.Fatalf("expected unknown section error")
	}
}

func TestLoaderParser(t *testing.T) {
	t.Parallel()

	set, err := questionnaire.NewParser().Parse(context.Background(), pkgquestionnaire.Document{
		Raw: []byte("legislative:\n  - Which list covers policing?\n"),
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set.QuestionCount() != 1 {
		t.Fatalf("question count = %d", set.QuestionCount())
	}
	if questionnaire.NewLoader() == nil {
		t.Fatalf("expected loader")
	}
}
