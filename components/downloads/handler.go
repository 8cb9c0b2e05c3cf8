package downloads

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/response"
	"github.com/goliatone/go-questionnaire/pkg/store"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler builds a net/http handler serving every route under the configured
// route path.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	mux := http.NewServeMux()
	for _, rt := range routesFor(mountPath("", opts.RoutePath), opts) {
		mux.Handle(rt.pattern, rt.handler)
	}
	return mux
}

type handler struct {
	opts Options
}

// applicationID validates the {id} path value and runs the guard.
func (h handler) applicationID(w http.ResponseWriter, r *http.Request) (string, bool) {
	return h.pathID(w, r, true)
}

// uploadID skips the guard: an uploaded document carries its own
// application id and is checked against the registered name.
func (h handler) uploadID(w http.ResponseWriter, r *http.Request) (string, bool) {
	return h.pathID(w, r, false)
}

func (h handler) pathID(w http.ResponseWriter, r *http.Request, guarded bool) (string, bool) {
	id := r.PathValue("id")
	if err := questionnaire.ValidateApplicationID(id); err != nil {
		h.writeError(w, r, err)
		return "", false
	}
	if guarded && h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return "", false
		}
	}
	if h.opts.Store == nil {
		h.writeError(w, r, errors.New("downloads: store is not configured"))
		return "", false
	}
	return id, true
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr) && httpErr != nil:
		return httpErr.StatusCode()
	case errors.Is(err, questionnaire.ErrInvalidApplicationID),
		errors.Is(err, questionnaire.ErrUnknownSection),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, response.ErrInvalidVerificationCode):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyDownloaded),
		errors.Is(err, response.ErrNameMismatch):
		return http.StatusForbidden
	case errors.Is(err, response.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, response.ErrNotPDF):
		return http.StatusBadRequest
	case errors.Is(err, response.ErrApplicationMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

var errorMessages = []struct {
	target  error
	message string
}{
	{store.ErrAlreadyDownloaded, "This document has already been downloaded."},
	{response.ErrNameMismatch, "The name does not match the registration."},
	{response.ErrApplicationMismatch, "The uploaded document belongs to a different application."},
	{response.ErrNotPDF, "Only PDF files are accepted."},
	{response.ErrTooLarge, "The uploaded file is too large."},
	{response.ErrInvalidVerificationCode, "Invalid verification link."},
}

func (h handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	message := http.StatusText(code)
	for _, m := range errorMessages {
		if errors.Is(err, m.target) {
			message = m.message
			break
		}
	}
	if code >= http.StatusInternalServerError {
		h.opts.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	} else {
		h.opts.Logger.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.Int("status", code),
			zap.Error(err),
		)
	}
	http.Error(w, message, code)
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
