package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/render"
	"github.com/goliatone/go-questionnaire/pkg/testsupport"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "application/octet-stream" }
func (s stubRenderer) Render(context.Context, render.Document, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "text"})
	registry.MustRegister(stubRenderer{name: "pdf"})

	if err := registry.Register(stubRenderer{name: "pdf"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	if diff := cmp.Diff([]string{"pdf", "text"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("text") || registry.Has("html") {
		t.Fatalf("unexpected Has results")
	}

	renderer, err := registry.Resolve("", "pdf")
	if err != nil {
		t.Fatalf("resolve fallback: %v", err)
	}
	if renderer.Name() != "pdf" {
		t.Fatalf("resolved %q", renderer.Name())
	}
	if _, err := registry.Resolve("", ""); err == nil {
		t.Fatalf("expected error when nothing is requested")
	}
	if _, err := registry.Get("html"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}

func TestDocumentValidate(t *testing.T) {
	t.Parallel()

	set := questionnaire.CentreState()
	doc := render.Document{Respondent: testsupport.Respondent(), Set: set, Mode: questionnaire.ModeFull}
	if err := doc.Validate(); err != nil {
		t.Fatalf("full mode: %v", err)
	}

	doc.Mode = questionnaire.ModeSection
	doc.Section = "commissions"
	if err := doc.Validate(); err != nil {
		t.Fatalf("section mode: %v", err)
	}

	doc.Section = "missing"
	if err := doc.Validate(); !errors.Is(err, questionnaire.ErrUnknownSection) {
		t.Fatalf("error = %v, want ErrUnknownSection", err)
	}

	doc.Mode = "summary"
	if err := doc.Validate(); err == nil {
		t.Fatalf("expected unsupported mode error")
	}

	doc.Mode = questionnaire.ModeFull
	doc.Respondent.ApplicationID = "abc"
	if err := doc.Validate(); !errors.Is(err, questionnaire.ErrInvalidApplicationID) {
		t.Fatalf("error = %v, want ErrInvalidApplicationID", err)
	}
}
