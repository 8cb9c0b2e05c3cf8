package downloads

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-questionnaire/pkg/orchestrator"
	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/response"
	"github.com/goliatone/go-questionnaire/pkg/store"
)

const (
	defaultRoutePath     = "/questionnaire"
	defaultMaxUploadSize = response.DefaultMaxSize
)

// GuardFunc authorises the download and listing routes. r.PathValue("id")
// holds the application id. Returning a StatusError picks the status code;
// other errors answer 403.
type GuardFunc func(r *http.Request) error

// MobileVerifiedFunc runs after a mobile number lookup succeeds, before the
// JSON reply is written, so callers can record the verification in a session.
type MobileVerifiedFunc func(w http.ResponseWriter, r *http.Request, reg store.Registration)

// Generator renders questionnaires. *orchestrator.Orchestrator implements it.
type Generator interface {
	Generate(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error)
	QuestionSet(ctx context.Context) (questionnaire.QuestionSet, error)
}

// Responses accepts uploads. *response.Service implements it.
type Responses interface {
	Submit(ctx context.Context, up response.Upload) (store.Response, error)
	Verify(ctx context.Context, code string) error
}

type Options struct {
	RoutePath      string
	Renderer       string
	MaxUploadSize  int64
	Guard          GuardFunc
	MobileVerified MobileVerifiedFunc
	Logger         *zap.Logger

	Store     store.Store
	Generator Generator
	Responses Responses
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     defaultRoutePath,
		MaxUploadSize: defaultMaxUploadSize,
	}
}

// NewOptions applies fns over the defaults and fills in the logger,
// generator and response service when they were not supplied.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = defaultMaxUploadSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Generator == nil {
		opts.Generator = orchestrator.New()
	}
	if opts.Responses == nil && opts.Store != nil {
		opts.Responses = response.NewService(opts.Store,
			response.WithLogger(opts.Logger),
			response.WithMaxSize(opts.MaxUploadSize),
		)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithRenderer selects the renderer used for downloads. Empty uses the
// generator's default.
func WithRenderer(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = name
	}
}

func WithMaxUploadSize(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxUploadSize = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithMobileVerified(fn MobileVerifiedFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MobileVerified = fn
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithStore(st store.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = st
	}
}

func WithGenerator(gen Generator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Generator = gen
	}
}

func WithResponses(responses Responses) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Responses = responses
	}
}
