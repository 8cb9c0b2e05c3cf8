package acroform

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
)

func basePDF(t *testing.T, pages int) []byte {
	t.Helper()
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetCompression(false)
	stamp := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	doc.SetCreationDate(stamp)
	doc.SetModificationDate(stamp)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 12)
		doc.Text(50, 50, "page "+strconv.Itoa(i+1))
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("fpdf output: %v", err)
	}
	return buf.Bytes()
}

func sampleFields() []TextField {
	return []TextField{
		{Page: 0, Name: "answer_0", Tooltip: "Answer for question 1", X: 50, Y: 537, Width: 512, Height: 80, FontSize: 10, Flags: FlagMultiline},
		{Page: 0, Name: "answer_1", Tooltip: "Answer for question 2", X: 50, Y: 402, Width: 512, Height: 80, FontSize: 10, Flags: FlagMultiline},
		{Page: 1, Name: "answer_2", Tooltip: "Answer (with parens)", X: 50, Y: 500.5, Width: 512, Height: 80, Flags: FlagMultiline},
	}
}

func TestAddTextFieldsAppendsIncrementalUpdate(t *testing.T) {
	base := basePDF(t, 2)
	out, err := AddTextFields(base, sampleFields())
	if err != nil {
		t.Fatalf("add fields: %v", err)
	}
	if !bytes.HasPrefix(out, base) {
		t.Fatalf("expected the base bytes to be preserved")
	}

	oldStart, err := lastStartXref(base)
	if err != nil {
		t.Fatalf("base startxref: %v", err)
	}
	tail := string(out[len(base):])
	if !strings.Contains(tail, "/Prev "+strconv.Itoa(oldStart)+"\n") {
		t.Fatalf("expected /Prev to chain to %d:\n%s", oldStart, tail)
	}
	if !strings.HasSuffix(tail, "%%EOF\n") {
		t.Fatalf("expected update to end with EOF marker")
	}

	newStart, err := lastStartXref(out)
	if err != nil {
		t.Fatalf("update startxref: %v", err)
	}
	if !bytes.HasPrefix(out[newStart:], []byte("xref\n")) {
		t.Fatalf("startxref %d does not point at an xref table", newStart)
	}

	for _, want := range []string{
		"/T (answer_0)",
		"/TU (Answer for question 1)",
		"/TU (Answer \\(with parens\\))",
		"/Ff 4096",
		"/Rect [50 537 562 617]",
		"/Rect [50 500.5 562 580.5]",
		"/DA (/Helv 10 Tf 0 g)",
		"/NeedAppearances true",
		"/BaseFont /Helvetica",
	} {
		if !strings.Contains(tail, want) {
			t.Fatalf("expected update to contain %q", want)
		}
	}
}

func TestAddTextFieldsProducesReadableXref(t *testing.T) {
	out, err := AddTextFields(basePDF(t, 2), sampleFields())
	if err != nil {
		t.Fatalf("add fields: %v", err)
	}
	doc, err := parseDocument(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	catalog, err := doc.object(doc.root.Num)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if !bytes.Contains(catalog, []byte("/AcroForm ")) {
		t.Fatalf("catalog was not rewritten: %s", catalog)
	}

	pages, err := doc.pages()
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	first, err := doc.object(pages[0].Num)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	match := kidsLike(first)
	if len(match) != 2 {
		t.Fatalf("expected 2 annotations on page 1, got %d in %s", len(match), first)
	}
	for _, ref := range match {
		widget, err := doc.object(ref.Num)
		if err != nil {
			t.Fatalf("widget %d: %v", ref.Num, err)
		}
		if !bytes.Contains(widget, []byte("/Subtype /Widget")) {
			t.Fatalf("annotation %d is not a widget: %s", ref.Num, widget)
		}
		if !bytes.Contains(widget, []byte("/P "+pages[0].String())) {
			t.Fatalf("widget %d does not point back at its page", ref.Num)
		}
	}
	if doc.size <= 0 || doc.info == nil {
		t.Fatalf("expected size and info to survive the update")
	}
}

func kidsLike(page []byte) []Ref {
	idx := bytes.Index(page, []byte("/Annots ["))
	if idx < 0 {
		return nil
	}
	rest := page[idx+len("/Annots ["):]
	end := bytes.IndexByte(rest, ']')
	var refs []Ref
	for _, m := range refRe.FindAllSubmatch(rest[:end], -1) {
		refs = append(refs, parseRef(m[1], m[2]))
	}
	return refs
}

func TestAddTextFieldsIsDeterministic(t *testing.T) {
	base := basePDF(t, 2)
	first, err := AddTextFields(base, sampleFields())
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := AddTextFields(base, sampleFields())
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestAddTextFieldsErrors(t *testing.T) {
	base := basePDF(t, 1)

	out, err := AddTextFields(base, nil)
	if err != nil || !bytes.Equal(out, base) {
		t.Fatalf("expected no-op for empty field list, err=%v", err)
	}

	cases := map[string][]TextField{
		"duplicate": {
			{Name: "a", Width: 1, Height: 1},
			{Name: "a", Width: 1, Height: 1},
		},
		"page out of range": {{Page: 3, Name: "a", Width: 1, Height: 1}},
		"empty name":        {{Width: 1, Height: 1}},
		"dotted name":       {{Name: "a.b", Width: 1, Height: 1}},
		"empty rect":        {{Name: "a"}},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := AddTextFields(base, fields); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := AddTextFields([]byte("not a pdf"), sampleFields()); err == nil {
		t.Fatalf("expected garbage input to fail")
	}

	once, err := AddTextFields(base, []TextField{{Name: "a", Width: 1, Height: 1}})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if _, err := AddTextFields(once, []TextField{{Name: "b", Width: 1, Height: 1}}); err == nil {
		t.Fatalf("expected second form update to be rejected")
	}
}

func TestNum(t *testing.T) {
	cases := map[float64]string{0: "0", 50: "50", 500.5: "500.5", 1.255: "1.25", -0.001: "0", 612: "612"}
	for in, want := range cases {
		if got := num(in); got != want {
			t.Fatalf("num(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestLiteral(t *testing.T) {
	cases := map[string]string{
		"answer_0":   "(answer_0)",
		`a\b (c)`:    `(a\\b \(c\))`,
		"line\nnext": `(line\nnext)`,
		"é":          "<FEFF00E9>",
	}
	for in, want := range cases {
		if got := literal(in); got != want {
			t.Fatalf("literal(%q) = %q, want %q", in, got, want)
		}
	}
}
