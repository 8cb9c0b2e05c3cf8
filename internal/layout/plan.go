package layout

import (
	"time"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

// Font names a logical font role. Backends map roles onto concrete faces.
type Font string

const (
	FontRegular Font = "regular"
	FontBold    Font = "bold"
)

// Measurer reports the advance width of text for an explicit font and size.
type Measurer interface {
	StringWidth(text string, font Font, size float64) (float64, error)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, font Font, size float64) (float64, error)

// StringWidth implements Measurer.
func (fn MeasureFunc) StringWidth(text string, font Font, size float64) (float64, error) {
	return fn(text, font, size)
}

// Text is a single line drawn with its baseline at (X, Y).
type Text struct {
	X     float64
	Y     float64
	Font  Font
	Size  float64
	Value string
}

// Field is a fillable text field.
type Field struct {
	Name     string
	Tooltip  string
	Rect     Rect
	FontSize float64
	Flags    int
}

// Page holds the drawing operations for one page in emission order.
type Page struct {
	Texts  []Text
	Fields []Field
}

// Plan is the complete, backend-neutral description of a document.
type Plan struct {
	Mode         questionnaire.Mode
	Title        string
	Subject      string
	RegisteredAt time.Time
	Pages        []Page
}

// Fields lists every field across all pages in document order.
func (p Plan) Fields() []Field {
	var out []Field
	for _, page := range p.Pages {
		out = append(out, page.Fields...)
	}
	return out
}

// FieldNames lists field names in document order.
func (p Plan) FieldNames() []string {
	fields := p.Fields()
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	return names
}

// Lines lists every drawn string in document order.
func (p Plan) Lines() []string {
	var out []string
	for _, page := range p.Pages {
		for _, text := range page.Texts {
			out = append(out, text.Value)
		}
	}
	return out
}
