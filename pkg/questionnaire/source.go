package questionnaire

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where a question-set document lives so loaders can read
// files, fs.FS entries or URLs through the same contract.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct{ path string }

func (s fileSource) Kind() SourceKind { return SourceKindFile }
func (s fileSource) Location() string { return s.path }

// SourceFromFile returns a Source pointing at a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct{ name string }

func (s fsSource) Kind() SourceKind { return SourceKindFS }
func (s fsSource) Location() string { return s.name }

// SourceFromFS returns a Source naming an entry inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct{ raw string }

func (s urlSource) Kind() SourceKind { return SourceKindURL }
func (s urlSource) Location() string { return s.raw }

// ParseSourceURL validates raw and returns a URL Source.
func ParseSourceURL(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("questionnaire: empty URL source")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("questionnaire: invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("questionnaire: unsupported URL scheme %q", u.Scheme)
	}
	return urlSource{raw: raw}, nil
}

// SourceFromURL is ParseSourceURL for configuration that is known to be
// valid. It panics on malformed input to surface mistakes early.
func SourceFromURL(raw string) Source {
	src, err := ParseSourceURL(raw)
	if err != nil {
		panic(err)
	}
	return src
}

// SourceFromLocation picks a URL source for http(s) locations and a file
// source otherwise.
func SourceFromLocation(location string) Source {
	if src, err := ParseSourceURL(location); err == nil {
		return src
	}
	return SourceFromFile(location)
}
