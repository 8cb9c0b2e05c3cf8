package questionnaire

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Document is a raw question-set document as fetched by a Loader.
type Document struct {
	Source Source
	Raw    []byte
}

// Loader fetches question-set documents. Implementations live under
// internal/questionset.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Parser turns a raw document into an ordered QuestionSet.
type Parser interface {
	Parse(ctx context.Context, doc Document) (QuestionSet, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem resolves SourceKindFS entries. Nil disables them.
	FileSystem fs.FS

	// HTTPClient serves SourceKindURL entries. Nil disables remote sources
	// unless AllowHTTPFallback is set.
	HTTPClient *http.Client

	// AllowHTTPFallback uses http.DefaultClient when no client is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetches made through the fallback client.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS for SourceKindFS entries.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables remote loading with http.DefaultClient.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies options and returns the resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
