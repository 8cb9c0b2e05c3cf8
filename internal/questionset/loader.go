package questionset

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

// Loader implements questionnaire.Loader by delegating to file, fs.FS or
// HTTP strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ questionnaire.Loader = (*Loader)(nil)

// NewLoader constructs a Loader from pre-resolved options.
func NewLoader(options questionnaire.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches the raw document behind src.
func (l *Loader) Load(ctx context.Context, src questionnaire.Source) (questionnaire.Document, error) {
	if src == nil {
		return questionnaire.Document{}, errors.New("questionset loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case questionnaire.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case questionnaire.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case questionnaire.SourceKindURL:
		if !l.allowHTTP {
			return questionnaire.Document{}, errors.New("questionset loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("questionset loader: unsupported source kind")
	}
	if err != nil {
		return questionnaire.Document{}, err
	}
	if len(data) == 0 {
		return questionnaire.Document{}, errors.New("questionset loader: document is empty")
	}

	return questionnaire.Document{Source: src, Raw: data}, nil
}
