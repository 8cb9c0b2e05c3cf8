package render

import (
	"fmt"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

// Document is the per-call input shared by every renderer. It is built fresh
// for each request and never mutated by renderers.
type Document struct {
	Respondent questionnaire.Respondent
	Set        questionnaire.QuestionSet
	Mode       questionnaire.Mode
	// Section names the rendered section key in section mode.
	Section string
}

// Validate checks the respondent and that section mode names a known key.
func (d Document) Validate() error {
	if err := d.Respondent.Validate(); err != nil {
		return err
	}
	switch d.Mode {
	case questionnaire.ModeFull:
		return nil
	case questionnaire.ModeSection:
		if !d.Set.Has(d.Section) {
			return fmt.Errorf("render: %w: %q", questionnaire.ErrUnknownSection, d.Section)
		}
		return nil
	default:
		return fmt.Errorf("render: unsupported mode %q", d.Mode)
	}
}
