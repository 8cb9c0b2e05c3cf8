package pdf_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/render"
	"github.com/goliatone/go-questionnaire/pkg/renderers/pdf"
)

func respondent() questionnaire.Respondent {
	return questionnaire.Respondent{
		Name:           "Test",
		Profession:     "Researchers",
		Specialization: "Political Science",
		State:          "Punjab",
		RegisteredAt:   time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC),
		ApplicationID:  "12345678",
	}
}

func exampleDocument() render.Document {
	return render.Document{
		Respondent: respondent(),
		Set: questionnaire.QuestionSet{Sections: []questionnaire.Section{
			{Key: "legislative", Questions: []string{"Q1", "Q2"}},
		}},
		Mode:    questionnaire.ModeSection,
		Section: "legislative",
	}
}

func TestRenderSectionExample(t *testing.T) {
	r := pdf.New(pdf.WithCompression(false))
	out, err := r.Render(context.Background(), exampleDocument(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)

	if !strings.HasPrefix(text, "%PDF-") {
		t.Fatalf("output is not a PDF")
	}
	for _, want := range []string{
		"/T (answer_0)",
		"/T (answer_1)",
		"(Application ID: 12345678) Tj",
		"/Subject (Application ID: 12345678)",
		"/Count 1",
		"/AcroForm ",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
	if strings.Contains(text, "answer_2") {
		t.Fatalf("unexpected third field")
	}
	if got := strings.Count(text, "/Subtype /Widget"); got != 2 {
		t.Fatalf("expected 2 widgets, got %d", got)
	}
}

func TestRenderFullCoverage(t *testing.T) {
	r := pdf.New(pdf.WithCompression(false))
	out, err := r.Render(context.Background(), render.Document{
		Respondent: respondent(),
		Set:        questionnaire.CentreState(),
		Mode:       questionnaire.ModeFull,
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)
	if got := strings.Count(text, "/Subtype /Widget"); got != 24 {
		t.Fatalf("expected 24 widgets, got %d", got)
	}
	for _, name := range []string{"answer_legislative_0", "answer_commissions_2", "answer_financial_articles_3"} {
		if !strings.Contains(text, "/T ("+name+")") {
			t.Fatalf("missing field %s", name)
		}
	}
	if !strings.Contains(text, "Centre-State Relations Questionnaire - Full \\(Continued\\)") {
		t.Fatalf("expected a continuation header")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := pdf.New()
	doc := render.Document{Respondent: respondent(), Set: questionnaire.CentreState(), Mode: questionnaire.ModeFull}
	first, err := r.Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := r.Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected byte-identical output")
	}
}

func TestRenderFallsBackWhenFontsMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.ttf")
	r := pdf.New(pdf.WithFontFiles(missing, missing), pdf.WithCompression(false))
	if r.CustomFonts() {
		t.Fatalf("expected missing fonts to fall back")
	}
	out, err := r.Render(context.Background(), exampleDocument(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render with fallback fonts: %v", err)
	}
	if !strings.Contains(string(out), "/BaseFont /Helvetica-Bold") {
		t.Fatalf("expected core bold font in output")
	}

	garbage := pdf.New(pdf.WithFontBytes([]byte("definitely not a font file"), nil))
	if garbage.CustomFonts() {
		t.Fatalf("expected unparsable font data to fall back")
	}
	if _, err := garbage.Render(context.Background(), exampleDocument(), render.RenderOptions{}); err != nil {
		t.Fatalf("render with garbage fonts: %v", err)
	}
}

func TestRenderWithCustomFonts(t *testing.T) {
	r := pdf.New(pdf.WithFontBytes(goregular.TTF, gobold.TTF), pdf.WithCompression(false))
	if !r.CustomFonts() {
		t.Fatalf("expected Go fonts to be usable")
	}

	doc := render.Document{Respondent: respondent(), Set: questionnaire.CentreState(), Mode: questionnaire.ModeFull}
	first, err := r.Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := r.Render(context.Background(), doc, render.RenderOptions{})
		if err != nil {
			t.Fatalf("render %d: %v", i+2, err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("render %d differs from the first", i+2)
		}
	}

	text := string(first)
	if !strings.Contains(text, "/FontFile2") {
		t.Fatalf("expected an embedded TrueType font")
	}
	if strings.Contains(text, "/BaseFont /Helvetica-Bold") {
		t.Fatalf("core bold font used despite custom fonts")
	}
	if got := strings.Count(text, "/Subtype /Widget"); got != 24 {
		t.Fatalf("expected 24 widgets, got %d", got)
	}
	for _, section := range questionnaire.CentreState().Sections {
		for i := range section.Questions {
			name := fmt.Sprintf("answer_%s_%d", section.Key, i)
			if !strings.Contains(text, "/T ("+name+")") {
				t.Fatalf("missing field %s", name)
			}
		}
	}

	boldOnlyRegular := pdf.New(pdf.WithFontBytes(goregular.TTF, nil))
	if !boldOnlyRegular.CustomFonts() {
		t.Fatalf("expected bold to fall back to the regular font file")
	}
}

func TestRenderPrefillsValues(t *testing.T) {
	r := pdf.New(pdf.WithCompression(false))
	out, err := r.Render(context.Background(), exampleDocument(), render.RenderOptions{
		Values: map[string]string{"answer_1": "Concurrent list"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "/V (Concurrent list)") {
		t.Fatalf("expected prefilled value")
	}
}

func TestRenderTranslatesNonASCII(t *testing.T) {
	doc := exampleDocument()
	doc.Respondent.Name = "José Müller"
	r := pdf.New(pdf.WithCompression(false))
	out, err := r.Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Contains(out, []byte("Name: Jos\xe9 M\xfcller")) {
		t.Fatalf("expected cp1252 encoded name in content stream")
	}
}

func TestRenderErrors(t *testing.T) {
	r := pdf.New()

	doc := exampleDocument()
	doc.Section = "financial"
	if _, err := r.Render(context.Background(), doc, render.RenderOptions{}); !errors.Is(err, questionnaire.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}

	doc = exampleDocument()
	doc.Respondent.ApplicationID = "1234"
	if _, err := r.Render(context.Background(), doc, render.RenderOptions{}); !errors.Is(err, questionnaire.ErrInvalidApplicationID) {
		t.Fatalf("expected ErrInvalidApplicationID, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, exampleDocument(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRendererMetadata(t *testing.T) {
	r := pdf.New()
	if r.Name() != "pdf" || r.ContentType() != "application/pdf" {
		t.Fatalf("unexpected metadata %s %s", r.Name(), r.ContentType())
	}
}
