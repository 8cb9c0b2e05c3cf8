package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

// RegisteredAt is the registration timestamp used by Respondent.
var RegisteredAt = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

// Respondent returns a valid respondent with application id 12345678.
func Respondent() questionnaire.Respondent {
	return questionnaire.Respondent{
		Name:           "Test",
		Profession:     "Researchers",
		Specialization: "Political Science",
		State:          "Punjab",
		RegisteredAt:   RegisteredAt,
		ApplicationID:  "12345678",
	}
}

// QuestionSet builds a question set whose sections hold the given number of
// generated questions, keyed "s1", "s2", ...
func QuestionSet(counts ...int) questionnaire.QuestionSet {
	set := questionnaire.QuestionSet{Title: "Test Questionnaire"}
	for i, count := range counts {
		section := questionnaire.Section{Key: fmt.Sprintf("s%d", i+1)}
		for q := 0; q < count; q++ {
			section.Questions = append(section.Questions, fmt.Sprintf("Question %d.%d", i+1, q+1))
		}
		set.Sections = append(set.Sections, section)
	}
	return set
}

// LoadRespondent reads a YAML respondent fixture, failing the test on error.
func LoadRespondent(t *testing.T, path string) questionnaire.Respondent {
	t.Helper()

	respondent, err := LoadRespondentFromPath(path)
	if err != nil {
		t.Fatalf("load respondent: %v", err)
	}
	return respondent
}

// LoadRespondentFromPath returns a Respondent without requiring testing.T.
func LoadRespondentFromPath(path string) (questionnaire.Respondent, error) {
	if path == "" {
		return questionnaire.Respondent{}, errors.New("testsupport: respondent path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return questionnaire.Respondent{}, fmt.Errorf("testsupport: read respondent: %w", err)
	}
	var out questionnaire.Respondent
	if err := yaml.Unmarshal(data, &out); err != nil {
		return questionnaire.Respondent{}, fmt.Errorf("testsupport: unmarshal respondent: %w", err)
	}
	return out, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
