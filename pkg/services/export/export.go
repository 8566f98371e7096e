package export

import (
	"context"
	"fmt"

	"github.com/de-tools/site-report/pkg/models/domain"
)

// Format identifies one export artifact kind.
type Format string

const (
	FormatPDF    Format = "pdf"
	FormatXLSX   Format = "xlsx"
	FormatDOCX   Format = "docx"
	FormatBundle Format = "zip"
)

// Ext returns the file extension without a leading dot.
func (f Format) Ext() string { return string(f) }

// MIME returns the content type served for the format.
func (f Format) MIME() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatBundle:
		return "application/zip"
	}
	return "application/octet-stream"
}

// Renderer converts one report record into one self-contained artifact.
// Implementations are stateless values; every Render call builds fresh
// document state, so concurrent exports need no locking.
type Renderer interface {
	Format() Format
	Render(ctx context.Context, report domain.ReportData) (domain.RenderedDocument, error)
}

// Registry resolves renderers by format.
type Registry struct {
	renderers map[Format]Renderer
}

func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{renderers: make(map[Format]Renderer, len(renderers))}
	for _, renderer := range renderers {
		r.renderers[renderer.Format()] = renderer
	}
	return r
}

func (r *Registry) Renderer(f Format) (Renderer, error) {
	renderer, ok := r.renderers[f]
	if !ok {
		return nil, fmt.Errorf("no renderer registered for format %q", f)
	}
	return renderer, nil
}

func (r *Registry) Formats() []Format {
	formats := make([]Format, 0, len(r.renderers))
	for f := range r.renderers {
		formats = append(formats, f)
	}
	return formats
}
