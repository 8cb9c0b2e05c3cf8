// Package acroform adds fillable text fields to an existing PDF by appending
// an incremental update: new widget, appearance and font objects, rewritten
// page and catalog objects, and a new xref section chained through /Prev.
package acroform

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FlagMultiline is the /Ff bit that makes a text field multi-line.
const FlagMultiline = 1 << 12

// TextField describes one fillable text field placed on a page.
type TextField struct {
	// Page is the zero-based page index.
	Page    int
	Name    string
	Tooltip string
	// X and Y locate the lower-left corner in page space.
	X, Y          float64
	Width, Height float64
	FontSize      float64
	Flags         int
	// Value pre-fills the field. Viewers regenerate its appearance.
	Value string
}

func (f TextField) validate(pages int) error {
	switch {
	case f.Name == "":
		return errors.New("acroform: field name is required")
	case strings.ContainsAny(f.Name, "."):
		return fmt.Errorf("acroform: field name %q must not contain '.'", f.Name)
	case f.Page < 0 || f.Page >= pages:
		return fmt.Errorf("acroform: field %q targets page %d of %d", f.Name, f.Page+1, pages)
	case f.Width <= 0 || f.Height <= 0:
		return fmt.Errorf("acroform: field %q has an empty rectangle", f.Name)
	}
	return nil
}

// AddTextFields appends an incremental update that registers fields as an
// interactive form. The base bytes are preserved unchanged at the start
// of the result. Field names must be unique.
func AddTextFields(pdf []byte, fields []TextField) ([]byte, error) {
	if len(fields) == 0 {
		return pdf, nil
	}
	doc, err := parseDocument(pdf)
	if err != nil {
		return nil, err
	}
	pages, err := doc.pages()
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if err := field.validate(len(pages)); err != nil {
			return nil, err
		}
		if _, dup := names[field.Name]; dup {
			return nil, fmt.Errorf("acroform: duplicate field name %q", field.Name)
		}
		names[field.Name] = struct{}{}
	}

	catalog, err := doc.object(doc.root.Num)
	if err != nil {
		return nil, err
	}
	if bytes.Contains(catalog, []byte("/AcroForm")) {
		return nil, errors.New("acroform: document already has an interactive form")
	}

	u := newUpdate(doc)
	font := u.add(helveticaFont())

	annots := make(map[int][]Ref, len(pages))
	fieldRefs := make([]Ref, 0, len(fields))
	for _, field := range fields {
		appearance := u.add(appearanceStream(field, font))
		widget := u.add(widgetDict(field, pages[field.Page], appearance))
		annots[field.Page] = append(annots[field.Page], widget)
		fieldRefs = append(fieldRefs, widget)
	}
	form := u.add(acroFormDict(fieldRefs, font))

	pageIndexes := make([]int, 0, len(annots))
	for idx := range annots {
		pageIndexes = append(pageIndexes, idx)
	}
	sort.Ints(pageIndexes)
	for _, idx := range pageIndexes {
		ref := pages[idx]
		body, err := doc.object(ref.Num)
		if err != nil {
			return nil, err
		}
		if bytes.Contains(body, []byte("/Annots")) {
			return nil, fmt.Errorf("acroform: page %d already has annotations", idx+1)
		}
		rewritten, err := appendToDict(body, "/Annots "+refArray(annots[idx]))
		if err != nil {
			return nil, fmt.Errorf("acroform: page %d: %w", idx+1, err)
		}
		u.replace(ref, rewritten)
	}

	rewritten, err := appendToDict(catalog, "/AcroForm "+form.String())
	if err != nil {
		return nil, fmt.Errorf("acroform: catalog: %w", err)
	}
	u.replace(doc.root, rewritten)

	return u.bytes(), nil
}

// appendToDict inserts entry before the closing delimiter of a dictionary
// object body.
func appendToDict(body []byte, entry string) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if !bytes.HasPrefix(trimmed, []byte("<<")) || !bytes.HasSuffix(trimmed, []byte(">>")) {
		return nil, errors.New("object is not a dictionary")
	}
	out := make([]byte, 0, len(trimmed)+len(entry)+2)
	out = append(out, trimmed[:len(trimmed)-2]...)
	out = append(out, '\n')
	out = append(out, entry...)
	out = append(out, ">>"...)
	return out, nil
}

func refArray(refs []Ref) string {
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = ref.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
