package questionnaire

import (
	"github.com/goliatone/go-questionnaire/internal/questionset"
	pkgquestionnaire "github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

// NewLoader constructs a question-set loader using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgquestionnaire.LoaderOption) pkgquestionnaire.Loader {
	cfg := pkgquestionnaire.NewLoaderOptions(options...)
	return questionset.NewLoader(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser() pkgquestionnaire.Parser {
	return questionset.NewParser()
}
