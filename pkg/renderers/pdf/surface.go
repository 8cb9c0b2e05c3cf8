package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-questionnaire/internal/layout"
)

// surface is a Letter page drawing target backed by fpdf. Every measure and
// draw call names its font and size explicitly.
type surface struct {
	doc       *fpdf.Fpdf
	fonts     fontSet
	translate func(string) string
}

var _ layout.Measurer = (*surface)(nil)

func newSurface(fonts fontSet, compress bool) (*surface, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetCompression(compress)
	doc.SetCatalogSort(true)
	fonts.register(doc)

	translate := func(s string) string { return s }
	if !fonts.custom() {
		translate = doc.UnicodeTranslatorFromDescriptor("")
	}
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("pdf renderer: initialise surface: %w", err)
	}
	return &surface{doc: doc, fonts: fonts, translate: translate}, nil
}

func (s *surface) use(font layout.Font, size float64) error {
	family, style := s.fonts.face(font)
	s.doc.SetFont(family, style, size)
	if err := s.doc.Error(); err != nil {
		return fmt.Errorf("pdf renderer: select font %s: %w", font, err)
	}
	return nil
}

// StringWidth implements layout.Measurer.
func (s *surface) StringWidth(text string, font layout.Font, size float64) (float64, error) {
	if err := s.use(font, size); err != nil {
		return 0, err
	}
	w := s.doc.GetStringWidth(s.translate(text))
	if err := s.doc.Error(); err != nil {
		return 0, fmt.Errorf("pdf renderer: measure: %w", err)
	}
	return w, nil
}

func (s *surface) drawText(t layout.Text) error {
	if err := s.use(t.Font, t.Size); err != nil {
		return err
	}
	s.doc.Text(t.X, layout.PageHeight-t.Y, s.translate(t.Value))
	return s.doc.Error()
}

// draw replays the text operations of plan, one fpdf page per plan page.
func (s *surface) draw(plan layout.Plan) error {
	for idx, page := range plan.Pages {
		s.doc.AddPage()
		for _, text := range page.Texts {
			if err := s.drawText(text); err != nil {
				return fmt.Errorf("pdf renderer: page %d: %w", idx+1, err)
			}
		}
	}
	return nil
}

// finish stamps metadata and serialises the document. Dates come from the
// plan so identical input yields identical bytes.
func (s *surface) finish(plan layout.Plan, producer string) ([]byte, error) {
	stamp := plan.RegisteredAt
	if stamp.IsZero() {
		stamp = time.Unix(0, 0).UTC()
	}
	s.doc.SetCreationDate(stamp)
	s.doc.SetModificationDate(stamp)
	s.doc.SetTitle(plan.Title, true)
	s.doc.SetSubject(plan.Subject, false)
	if producer != "" {
		s.doc.SetProducer(producer, false)
	}

	var buf bytes.Buffer
	if err := s.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf renderer: output: %w", err)
	}
	return buf.Bytes(), nil
}
