package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/site-report/pkg/models/api"
	"github.com/de-tools/site-report/pkg/services/export"
	"github.com/de-tools/site-report/pkg/services/export/preview"
)

// Handler serves report exports and preview handles.
type Handler struct {
	registry *export.Registry
	previews *preview.Store
}

func NewHandler(registry *export.Registry, previews *preview.Store) *Handler {
	return &Handler{registry: registry, previews: previews}
}

// Export renders the posted report into the requested format and streams
// the artifact as an attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	format := export.Format(chi.URLParam(r, "format"))
	renderer, err := h.registry.Renderer(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	report, ok := decodeReport(w, r)
	if !ok {
		return
	}

	doc, err := renderer.Render(ctx, report.ToDomain())
	if err != nil {
		logger.Error().Err(err).Str("format", string(format)).Msg("export failed")
		var renderErr *export.RenderError
		if errors.As(err, &renderErr) {
			http.Error(w, renderErr.Error(), http.StatusInternalServerError)
			return
		}
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", doc.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	if _, err := w.Write(doc.Content); err != nil {
		logger.Error().Err(err).Str("file", doc.FileName).Msg("failed to stream artifact")
	}
}

// CreatePreview renders the paginated document and parks it behind a
// handle. The client owns the handle and must release it explicitly.
func (h *Handler) CreatePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	renderer, err := h.registry.Renderer(export.FormatPDF)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	report, ok := decodeReport(w, r)
	if !ok {
		return
	}

	doc, err := renderer.Render(ctx, report.ToDomain())
	if err != nil {
		logger.Error().Err(err).Msg("preview render failed")
		http.Error(w, "preview render failed", http.StatusInternalServerError)
		return
	}

	id := h.previews.Put(doc)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(api.Preview{ID: id, FileName: doc.FileName}); err != nil {
		logger.Error().Err(err).Msg("failed to encode preview handle")
	}
}

// GetPreview streams a previously rendered preview inline.
func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, ok := h.previews.Get(id)
	if !ok {
		http.Error(w, "unknown preview handle", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", doc.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.FileName))
	_, _ = w.Write(doc.Content)
}

// ReleasePreview frees the handle once the preview is no longer displayed.
func (h *Handler) ReleasePreview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.previews.Release(id) {
		http.Error(w, "unknown preview handle", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeReport(w http.ResponseWriter, r *http.Request) (api.Report, bool) {
	var report api.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		http.Error(w, "invalid report payload", http.StatusBadRequest)
		return api.Report{}, false
	}
	return report, true
}
