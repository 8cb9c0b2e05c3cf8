// Package pdf renders questionnaire documents as PDF files with one fillable
// multi-line text field per question.
package pdf

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-questionnaire/internal/acroform"
	"github.com/goliatone/go-questionnaire/internal/layout"
	"github.com/goliatone/go-questionnaire/pkg/render"
)

// Name is the registry key of the PDF renderer.
const Name = "pdf"

// Renderer implements render.Renderer. It holds only immutable configuration
// and builds a fresh surface for every call, so one instance can serve
// concurrent requests.
type Renderer struct {
	regularPath string
	boldPath    string
	regularData []byte
	boldData    []byte
	compress    bool
	producer    string

	fonts fontSet
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the PDF renderer. Optional font assets are resolved once;
// unusable assets fall back to Helvetica without reporting an error.
func New(options ...Option) *Renderer {
	r := &Renderer{compress: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.fonts = resolveFonts(r.regularPath, r.boldPath, r.regularData, r.boldData)
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the MIME type of rendered documents.
func (r *Renderer) ContentType() string {
	return "application/pdf"
}

// CustomFonts reports whether the configured TrueType assets are in use.
func (r *Renderer) CustomFonts() bool {
	return r.fonts.custom()
}

// Render lays out doc, draws it and registers the answer fields.
func (r *Renderer) Render(ctx context.Context, doc render.Document, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("pdf renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	surf, err := newSurface(r.fonts, r.compress)
	if err != nil {
		return nil, err
	}
	plan, err := layout.Layout(surf, layout.Input{
		Respondent: doc.Respondent,
		Set:        doc.Set,
		Mode:       doc.Mode,
		Section:    doc.Section,
	})
	if err != nil {
		return nil, fmt.Errorf("pdf renderer: %w", err)
	}
	if err := surf.draw(plan); err != nil {
		return nil, err
	}
	base, err := surf.finish(plan, r.producer)
	if err != nil {
		return nil, err
	}

	out, err := acroform.AddTextFields(base, textFields(plan, opts.Values))
	if err != nil {
		return nil, fmt.Errorf("pdf renderer: form fields: %w", err)
	}
	return out, nil
}

func textFields(plan layout.Plan, values map[string]string) []acroform.TextField {
	var out []acroform.TextField
	for idx, page := range plan.Pages {
		for _, field := range page.Fields {
			out = append(out, acroform.TextField{
				Page:     idx,
				Name:     field.Name,
				Tooltip:  field.Tooltip,
				X:        field.Rect.X,
				Y:        field.Rect.Y,
				Width:    field.Rect.Width,
				Height:   field.Rect.Height,
				FontSize: field.FontSize,
				Flags:    field.Flags,
				Value:    values[field.Name],
			})
		}
	}
	return out
}
