// Package questionnaire is the top-level entry point for rendering
// Centre-State Relations questionnaires as fillable PDFs.
package questionnaire

import (
	"context"

	"github.com/goliatone/go-questionnaire/pkg/orchestrator"
	pkgquestionnaire "github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/render"
)

// Respondent aliases the header data printed on every document.
type Respondent = pkgquestionnaire.Respondent

// QuestionSet aliases the ordered section/question catalogue.
type QuestionSet = pkgquestionnaire.QuestionSet

// Mode selects full-questionnaire or single-section output.
type Mode = pkgquestionnaire.Mode

const (
	ModeFull    = pkgquestionnaire.ModeFull
	ModeSection = pkgquestionnaire.ModeSection
)

// RenderOptions describes per-request overrides such as prefilled answers.
type RenderOptions = render.RenderOptions

// Result is a rendered document together with its download filename.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GeneratePDF renders the full questionnaire for respondent, or a single
// section when section is non-empty, using the compiled-in question set.
func GeneratePDF(ctx context.Context, respondent Respondent, section string, options ...orchestrator.Option) (Result, error) {
	req := orchestrator.Request{
		Respondent: respondent,
		Mode:       ModeFull,
	}
	if section != "" {
		req.Mode = ModeSection
		req.Section = section
	}
	return orchestrator.New(options...).Generate(ctx, req)
}
