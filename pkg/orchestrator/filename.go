package orchestrator

import (
	"strings"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/render"
)

// Filename returns the download name for a PDF document:
// CSR_Full_Questionnaire_<id>.pdf in full mode, CSR_<key>_<id>.pdf for a
// section.
func Filename(mode questionnaire.Mode, key, applicationID string) string {
	if mode == questionnaire.ModeSection {
		return "CSR_" + key + "_" + applicationID + ".pdf"
	}
	return "CSR_Full_Questionnaire_" + applicationID + ".pdf"
}

func filenameFor(renderer render.Renderer, mode questionnaire.Mode, key, applicationID string) string {
	name := Filename(mode, key, applicationID)
	contentType := renderer.ContentType()
	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		return name
	case strings.HasPrefix(contentType, "text/plain"):
		return strings.TrimSuffix(name, ".pdf") + ".txt"
	default:
		return strings.TrimSuffix(name, ".pdf") + "." + renderer.Name()
	}
}
