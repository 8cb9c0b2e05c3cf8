package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-questionnaire/internal/questionset"
	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/render"
	"github.com/goliatone/go-questionnaire/pkg/renderers/pdf"
	"github.com/goliatone/go-questionnaire/pkg/renderers/text"
)

const defaultRendererName = pdf.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom question-set loader.
func WithLoader(loader questionnaire.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom question-set parser.
func WithParser(parser questionnaire.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithPDFOptions configures the built-in PDF renderer. Ignored when a custom
// registry is supplied.
func WithPDFOptions(options ...pdf.Option) Option {
	return func(o *Orchestrator) {
		o.pdfOptions = append(o.pdfOptions, options...)
	}
}

// WithQuestionSet replaces the compiled-in Centre-State question set used
// when a request carries neither a set nor a source.
func WithQuestionSet(set questionnaire.QuestionSet) Option {
	return func(o *Orchestrator) {
		clone := set.Clone()
		o.defaultSet = &clone
	}
}

// WithQuestionSource makes the orchestrator load its default question set
// from src on first use. The parsed set is cached.
func WithQuestionSource(src questionnaire.Source) Option {
	return func(o *Orchestrator) {
		o.defaultSource = src
	}
}

// WithTransformer registers a Transformer that runs against every resolved
// question set before rendering.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t == nil {
			return
		}
		o.transformers = append(o.transformers, t)
	}
}

// Orchestrator coordinates the pipeline from question set and respondent to
// rendered output. It falls back to the PDF renderer and the compiled-in
// question set so callers can start with a single constructor call.
type Orchestrator struct {
	loader          questionnaire.Loader
	parser          questionnaire.Parser
	registry        *render.Registry
	defaultRenderer string
	pdfOptions      []pdf.Option
	defaultSet      *questionnaire.QuestionSet
	defaultSource   questionnaire.Source
	transformers    []Transformer
	initialiseErr   error
	defaultsApplied bool

	mu        sync.Mutex
	sourceSet *questionnaire.QuestionSet
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one document to generate.
type Request struct {
	// Respondent is sanitised before it reaches a renderer.
	Respondent questionnaire.Respondent

	// Mode selects the full questionnaire or a single section. Empty means
	// full.
	Mode questionnaire.Mode

	// Section names the section key in section mode.
	Section string

	// Set bypasses the loader when callers already hold a question set.
	Set *questionnaire.QuestionSet

	// Source loads the question set for this request only.
	Source questionnaire.Source

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request values such as prefilled answers.
	RenderOptions render.RenderOptions
}

// Result is a rendered document ready to be served or written to disk.
type Result struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Generate resolves the question set, validates the request and renders it
// with the selected renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	mode := req.Mode
	if mode == "" {
		mode = questionnaire.ModeFull
	}

	respondent := req.Respondent.Sanitized()
	if err := questionnaire.ValidateApplicationID(respondent.ApplicationID); err != nil {
		return Result{}, fmt.Errorf("orchestrator: %w", err)
	}

	set, err := o.resolveSet(ctx, req)
	if err != nil {
		return Result{}, err
	}

	doc := render.Document{
		Respondent: respondent,
		Set:        set,
		Mode:       mode,
		Section:    req.Section,
	}
	if err := doc.Validate(); err != nil {
		return Result{}, fmt.Errorf("orchestrator: %w", err)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	output, err := renderer.Render(ctx, doc, req.RenderOptions)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return Result{
		Content:     output,
		ContentType: renderer.ContentType(),
		Filename:    filenameFor(renderer, mode, req.Section, respondent.ApplicationID),
	}, nil
}

// QuestionSet returns the question set a request without Set or Source
// would render, after transformers ran.
func (o *Orchestrator) QuestionSet(ctx context.Context) (questionnaire.QuestionSet, error) {
	if ctx == nil {
		return questionnaire.QuestionSet{}, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return questionnaire.QuestionSet{}, err
	}
	return o.resolveSet(ctx, Request{})
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveSet(ctx context.Context, req Request) (questionnaire.QuestionSet, error) {
	var (
		set questionnaire.QuestionSet
		err error
	)
	switch {
	case req.Set != nil:
		set = req.Set.Clone()
	case req.Source != nil:
		set, err = o.load(ctx, req.Source)
	default:
		set, err = o.defaultQuestionSet(ctx)
	}
	if err != nil {
		return questionnaire.QuestionSet{}, err
	}

	for _, t := range o.transformers {
		if err := t.Transform(ctx, &set); err != nil {
			return questionnaire.QuestionSet{}, fmt.Errorf("orchestrator: transform question set: %w", err)
		}
	}
	if err := set.Validate(); err != nil {
		return questionnaire.QuestionSet{}, fmt.Errorf("orchestrator: %w", err)
	}
	return set, nil
}

func (o *Orchestrator) defaultQuestionSet(ctx context.Context) (questionnaire.QuestionSet, error) {
	if o.defaultSource == nil {
		if o.defaultSet != nil {
			return o.defaultSet.Clone(), nil
		}
		return questionnaire.CentreState(), nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sourceSet == nil {
		set, err := o.load(ctx, o.defaultSource)
		if err != nil {
			return questionnaire.QuestionSet{}, err
		}
		o.sourceSet = &set
	}
	return o.sourceSet.Clone(), nil
}

func (o *Orchestrator) load(ctx context.Context, src questionnaire.Source) (questionnaire.QuestionSet, error) {
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return questionnaire.QuestionSet{}, fmt.Errorf("orchestrator: load question set: %w", err)
	}
	set, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return questionnaire.QuestionSet{}, fmt.Errorf("orchestrator: parse question set: %w", err)
	}
	return set, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = questionset.NewLoader(questionnaire.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = questionset.NewParser()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := o.registry.Register(pdf.New(o.pdfOptions...)); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		}
		if err := o.registry.Register(text.New()); err != nil && o.initialiseErr == nil {
			o.initialiseErr = fmt.Errorf("orchestrator: text renderer: %w", err)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.defaultSet != nil {
		if err := o.defaultSet.Validate(); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default question set: %w", err)
		}
	}

	o.defaultsApplied = true
}
