package downloads

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/goliatone/go-questionnaire/pkg/orchestrator"
	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/store"
)

type sectionEntry struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Questions  int    `json:"questions"`
	Downloaded bool   `json:"downloaded"`
}

type sectionsResponse struct {
	ApplicationID  string               `json:"applicationId"`
	Name           string               `json:"name"`
	DownloadOption store.DownloadOption `json:"downloadOption,omitempty"`
	FullDownloaded bool                 `json:"fullDownloaded"`
	Sections       []sectionEntry       `json:"sections"`
}

func (h handler) sections(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	reg, err := h.opts.Store.Respondent(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	set, err := h.opts.Generator.QuestionSet(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := sectionsResponse{
		ApplicationID:  reg.ApplicationID,
		Name:           reg.Name,
		DownloadOption: reg.DownloadOption,
		FullDownloaded: reg.FullDownloaded,
		Sections:       make([]sectionEntry, 0, len(set.Sections)),
	}
	for _, section := range set.Sections {
		out.Sections = append(out.Sections, sectionEntry{
			Key:        section.Key,
			Name:       section.DisplayName(),
			Questions:  len(section.Questions),
			Downloaded: reg.HasDownloaded(section.Key),
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h handler) full(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}
	h.serve(w, r, id, questionnaire.ModeFull, "", download{
		claim:   func(ctx context.Context) error { return h.opts.Store.ClaimFullDownload(ctx, id) },
		release: func(ctx context.Context) error { return h.opts.Store.ReleaseFullDownload(ctx, id) },
	})
}

func (h handler) section(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}
	key := r.PathValue("key")

	set, err := h.opts.Generator.QuestionSet(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !set.Has(key) {
		h.writeError(w, r, fmt.Errorf("downloads: %w: %q", questionnaire.ErrUnknownSection, key))
		return
	}

	h.serve(w, r, id, questionnaire.ModeSection, key, download{
		claim:   func(ctx context.Context) error { return h.opts.Store.ClaimSectionDownload(ctx, id, key) },
		release: func(ctx context.Context) error { return h.opts.Store.ReleaseSectionDownload(ctx, id, key) },
	})
}

type download struct {
	claim   func(context.Context) error
	release func(context.Context) error
}

// serve claims the download, renders it and streams it as an attachment.
// A failed render gives the claim back.
func (h handler) serve(w http.ResponseWriter, r *http.Request, id string, mode questionnaire.Mode, key string, dl download) {
	ctx := r.Context()
	logger := h.opts.Logger.With(
		zap.String("application_id", id),
		zap.String("mode", string(mode)),
		zap.String("section", key),
	)

	reg, err := h.opts.Store.Respondent(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := dl.claim(ctx); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.opts.Generator.Generate(ctx, orchestrator.Request{
		Respondent: reg.Respondent(),
		Mode:       mode,
		Section:    key,
		Renderer:   h.opts.Renderer,
	})
	if err != nil {
		if releaseErr := dl.release(context.WithoutCancel(ctx)); releaseErr != nil {
			logger.Error("release download claim", zap.Error(releaseErr))
		}
		h.writeError(w, r, err)
		return
	}
	logger.Info("questionnaire downloaded", zap.String("filename", result.Filename))

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(result.Content)
}
