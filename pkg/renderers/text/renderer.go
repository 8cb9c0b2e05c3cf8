// Package text renders questionnaire documents as plain text using the same
// page plan as the PDF renderer. It is meant for terminal previews.
package text

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-questionnaire/internal/layout"
	"github.com/goliatone/go-questionnaire/pkg/render"
)

// Name is the registry key of the text renderer.
const Name = "text"

// Option configures the text renderer.
type Option func(*Renderer)

// WithGlyphWidth sets the advance of every glyph as a fraction of the font
// size. The default approximates Helvetica.
func WithGlyphWidth(em float64) Option {
	return func(r *Renderer) {
		if em > 0 {
			r.em = em
		}
	}
}

// WithFieldMarker overrides how answer fields are printed.
func WithFieldMarker(fn func(name, tooltip string) string) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.marker = fn
		}
	}
}

func defaultMarker(name, tooltip string) string {
	return "[" + name + "] " + tooltip
}

// Renderer implements render.Renderer with fixed-advance metrics.
type Renderer struct {
	em     float64
	marker func(name, tooltip string) string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{em: 0.5, marker: defaultMarker}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render prints each page of the plan with its lines and answer fields.
// Prefilled values are printed under their field.
func (r *Renderer) Render(ctx context.Context, doc render.Document, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("text renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	measure := layout.MeasureFunc(func(s string, _ layout.Font, size float64) (float64, error) {
		return float64(utf8.RuneCountInString(s)) * size * r.em, nil
	})
	plan, err := layout.Layout(measure, layout.Input{
		Respondent: doc.Respondent,
		Set:        doc.Set,
		Mode:       doc.Mode,
		Section:    doc.Section,
	})
	if err != nil {
		return nil, fmt.Errorf("text renderer: %w", err)
	}

	var b strings.Builder
	for idx, page := range plan.Pages {
		if idx > 0 {
			fmt.Fprintf(&b, "\n--- page %d ---\n", idx+1)
		}
		fields := page.Fields
		for _, line := range page.Texts {
			// Fields sit below their question, so flush those above this line.
			for len(fields) > 0 && fields[0].Rect.Top() > line.Y {
				r.writeField(&b, fields[0], opts.Values)
				fields = fields[1:]
			}
			b.WriteString(line.Value)
			b.WriteByte('\n')
		}
		for _, field := range fields {
			r.writeField(&b, field, opts.Values)
		}
	}
	return []byte(b.String()), nil
}

func (r *Renderer) writeField(b *strings.Builder, field layout.Field, values map[string]string) {
	b.WriteString(r.marker(field.Name, field.Tooltip))
	b.WriteByte('\n')
	if value := values[field.Name]; value != "" {
		for _, line := range strings.Split(value, "\n") {
			b.WriteString("    ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
}
