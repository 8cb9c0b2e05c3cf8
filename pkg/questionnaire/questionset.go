package questionnaire

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownSection reports a section key missing from a question set.
var ErrUnknownSection = errors.New("questionnaire: unknown section")

// Mode selects between the full document and a single section.
type Mode string

const (
	ModeFull    Mode = "full"
	ModeSection Mode = "section"
)

// ParseMode accepts the textual mode names used by the CLI and HTTP layer.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeFull, "":
		return ModeFull, nil
	case ModeSection:
		return ModeSection, nil
	default:
		return "", fmt.Errorf("questionnaire: unknown mode %q", raw)
	}
}

// Section is one thematic group of questions.
type Section struct {
	Key       string   `json:"key" yaml:"key"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Questions []string `json:"questions" yaml:"questions"`
}

// DisplayName returns the configured name or a title-cased form of the key
// ("financial_articles" becomes "Financial Articles").
func (s Section) DisplayName() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return TitleFromKey(s.Key)
}

// TitleFromKey title-cases a section key after replacing underscores.
func TitleFromKey(key string) string {
	words := strings.ReplaceAll(key, "_", " ")
	return cases.Title(language.English).String(words)
}

// QuestionSet is an ordered mapping from section key to questions.
type QuestionSet struct {
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Validate checks that keys are present and unique.
func (q QuestionSet) Validate() error {
	seen := make(map[string]struct{}, len(q.Sections))
	for idx, section := range q.Sections {
		key := strings.TrimSpace(section.Key)
		if key == "" {
			return fmt.Errorf("questionnaire: section %d has an empty key", idx)
		}
		if key != section.Key {
			return fmt.Errorf("questionnaire: section key %q has surrounding whitespace", section.Key)
		}
		if _, exists := seen[key]; exists {
			return fmt.Errorf("questionnaire: duplicate section key %q", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Keys lists section keys in canonical order.
func (q QuestionSet) Keys() []string {
	keys := make([]string, 0, len(q.Sections))
	for _, section := range q.Sections {
		keys = append(keys, section.Key)
	}
	return keys
}

// Lookup returns the section stored under key.
func (q QuestionSet) Lookup(key string) (Section, bool) {
	for _, section := range q.Sections {
		if section.Key == key {
			return section, true
		}
	}
	return Section{}, false
}

// Has reports whether key names a section.
func (q QuestionSet) Has(key string) bool {
	_, ok := q.Lookup(key)
	return ok
}

// Only narrows the set to a single section, keeping the title.
func (q QuestionSet) Only(key string) (QuestionSet, error) {
	section, ok := q.Lookup(key)
	if !ok {
		return QuestionSet{}, fmt.Errorf("%w: %q", ErrUnknownSection, key)
	}
	return QuestionSet{Title: q.Title, Sections: []Section{section.Clone()}}, nil
}

// QuestionCount totals the questions across every section.
func (q QuestionSet) QuestionCount() int {
	total := 0
	for _, section := range q.Sections {
		total += len(section.Questions)
	}
	return total
}

// Clone returns a deep copy so callers can hand the set to concurrent
// renders without sharing slices.
func (q QuestionSet) Clone() QuestionSet {
	out := QuestionSet{Title: q.Title}
	if q.Sections != nil {
		out.Sections = make([]Section, len(q.Sections))
		for i, section := range q.Sections {
			out.Sections[i] = section.Clone()
		}
	}
	return out
}

// Clone copies the section and its questions.
func (s Section) Clone() Section {
	out := s
	if s.Questions != nil {
		out.Questions = append([]string(nil), s.Questions...)
	}
	return out
}
