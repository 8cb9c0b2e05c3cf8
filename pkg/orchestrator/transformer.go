package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

// Transformer mutates a resolved QuestionSet before it is validated and
// rendered. Implementations can rename sections, drop them or rewrite
// questions.
type Transformer interface {
	Transform(ctx context.Context, set *questionnaire.QuestionSet) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, set *questionnaire.QuestionSet) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, set *questionnaire.QuestionSet) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, set)
}

// PresetTransformer applies declarative overrides loaded from a YAML or JSON
// document:
//
//	title: Federal Relations Survey
//	sections:
//	  legislative:
//	    name: Law-Making Powers
//	    append: ["Should the Concurrent List be expanded?"]
//	  administrative:
//	    drop: true
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title    string                  `yaml:"title"`
	Sections map[string]sectionPatch `yaml:"sections"`
}

type sectionPatch struct {
	Name      string   `yaml:"name"`
	Questions []string `yaml:"questions"`
	Append    []string `yaml:"append"`
	Drop      bool     `yaml:"drop"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied question set.
// Patching a key the set does not contain is an error.
func (t *PresetTransformer) Transform(ctx context.Context, set *questionnaire.QuestionSet) error {
	if set == nil {
		return errors.New("preset transformer: question set is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if title := strings.TrimSpace(t.document.Title); title != "" {
		set.Title = title
	}

	for key := range t.document.Sections {
		if !set.Has(key) {
			return fmt.Errorf("preset transformer: %w: %q", questionnaire.ErrUnknownSection, key)
		}
	}

	kept := set.Sections[:0]
	for _, section := range set.Sections {
		patch, ok := t.document.Sections[section.Key]
		if !ok {
			kept = append(kept, section)
			continue
		}
		if patch.Drop {
			continue
		}
		kept = append(kept, applySectionPatch(section, patch))
	}
	set.Sections = kept
	return nil
}

func applySectionPatch(section questionnaire.Section, patch sectionPatch) questionnaire.Section {
	if name := strings.TrimSpace(patch.Name); name != "" {
		section.Name = name
	}
	if len(patch.Questions) > 0 {
		section.Questions = append([]string(nil), patch.Questions...)
	}
	if len(patch.Append) > 0 {
		section.Questions = append(append([]string(nil), section.Questions...), patch.Append...)
	}
	return section
}
