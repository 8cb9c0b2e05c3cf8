package downloads

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register net/http handlers.
// It is satisfied by *http.ServeMux; patterns use Go 1.22 method and
// wildcard syntax.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

type route struct {
	pattern string
	handler http.Handler
}

func routesFor(mount string, opts Options) []route {
	h := handler{opts: opts}
	mount = strings.TrimRight(mount, "/")
	return []route{
		{http.MethodGet + " " + mount + "/{id}/sections", http.HandlerFunc(h.sections)},
		{http.MethodGet + " " + mount + "/{id}/full", http.HandlerFunc(h.full)},
		{http.MethodGet + " " + mount + "/{id}/sections/{key}", http.HandlerFunc(h.section)},
		{http.MethodPost + " " + mount + "/{id}/responses", http.HandlerFunc(h.upload)},
		{http.MethodPost + " " + mount + "/responses/verify/{code}", http.HandlerFunc(h.verify)},
		{http.MethodPost + " " + mount + "/verify-mobile", http.HandlerFunc(h.verifyMobile)},
	}
}

// MountPath returns the full mount path for the component routes under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers every download route under basePath on mux and
// returns the mount path.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the routes using a pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("downloads: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.Store == nil {
		return "", fmt.Errorf("downloads: missing store")
	}
	mount := mountPath(basePath, opts.RoutePath)
	for _, rt := range routesFor(mount, opts) {
		mux.Handle(rt.pattern, rt.handler)
	}
	return mount, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
