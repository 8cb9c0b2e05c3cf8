package downloads

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-questionnaire/pkg/response"
	"github.com/goliatone/go-questionnaire/pkg/store"
)

const (
	formName   = "name"
	formFile   = "pdf_file"
	formMobile = "mobile_number"
)

type uploadResponse struct {
	ApplicationID string    `json:"applicationId"`
	Filename      string    `json:"filename"`
	Answers       int       `json:"answers"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

func (h handler) upload(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uploadID(w, r)
	if !ok {
		return
	}
	if h.opts.Responses == nil {
		h.writeError(w, r, errors.New("downloads: response service is not configured"))
		return
	}

	// Multipart framing adds a little on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.opts.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, r, fmt.Errorf("downloads: %w", response.ErrTooLarge))
			return
		}
		h.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}
	file, header, err := r.FormFile(formFile)
	if err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}
	defer file.Close()

	saved, err := h.opts.Responses.Submit(r.Context(), response.Upload{
		ApplicationID: id,
		Name:          r.FormValue(formName),
		Filename:      header.Filename,
		Body:          file,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, uploadResponse{
		ApplicationID: saved.ApplicationID,
		Filename:      saved.Filename,
		Answers:       len(saved.Answers),
		UploadedAt:    saved.UploadedAt,
	})
}

type verifyResponse struct {
	Verified bool `json:"verified"`
}

func (h handler) verify(w http.ResponseWriter, r *http.Request) {
	if h.opts.Responses == nil {
		h.writeError(w, r, errors.New("downloads: response service is not configured"))
		return
	}
	if err := h.opts.Responses.Verify(r.Context(), r.PathValue("code")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, verifyResponse{Verified: true})
}

type mobileResponse struct {
	ApplicationID string `json:"applicationId"`
}

func (h handler) verifyMobile(w http.ResponseWriter, r *http.Request) {
	if h.opts.Store == nil {
		h.writeError(w, r, errors.New("downloads: store is not configured"))
		return
	}
	mobile := strings.TrimSpace(r.PostFormValue(formMobile))
	if err := store.ValidateMobile(mobile); err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}
	reg, err := h.opts.Store.RespondentByMobile(r.Context(), mobile)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if h.opts.MobileVerified != nil {
		h.opts.MobileVerified(w, r, reg)
	}
	writeJSON(w, r, http.StatusOK, mobileResponse{ApplicationID: reg.ApplicationID})
}
