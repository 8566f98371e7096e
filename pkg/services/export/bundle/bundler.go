// Package bundle packages the paginated document and the spreadsheet into
// one archive. Generation is sequential and all-or-nothing: a failing
// renderer aborts the bundle so no partial archive is ever offered.
package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/de-tools/site-report/pkg/models/domain"
	"github.com/de-tools/site-report/pkg/services/export"
)

// Bundler composes the pdf and xlsx renderers into a zip artifact.
type Bundler struct {
	pdf  export.Renderer
	xlsx export.Renderer
}

func NewBundler(pdf, xlsx export.Renderer) *Bundler {
	return &Bundler{pdf: pdf, xlsx: xlsx}
}

func (b *Bundler) Format() export.Format { return export.FormatBundle }

func (b *Bundler) Render(ctx context.Context, report domain.ReportData) (domain.RenderedDocument, error) {
	pdfDoc, err := b.pdf.Render(ctx, report)
	if err != nil {
		return domain.RenderedDocument{}, err
	}
	xlsxDoc, err := b.xlsx.Render(ctx, report)
	if err != nil {
		return domain.RenderedDocument{}, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, doc := range []domain.RenderedDocument{pdfDoc, xlsxDoc} {
		entry, err := zw.Create(doc.FileName)
		if err != nil {
			return domain.RenderedDocument{}, export.Failed(export.FormatBundle,
				fmt.Errorf("create archive entry %s: %w", doc.FileName, err))
		}
		if _, err := entry.Write(doc.Content); err != nil {
			return domain.RenderedDocument{}, export.Failed(export.FormatBundle,
				fmt.Errorf("write archive entry %s: %w", doc.FileName, err))
		}
	}
	if err := zw.Close(); err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatBundle,
			fmt.Errorf("finalize archive: %w", err))
	}

	return domain.RenderedDocument{
		FileName: export.FileName(report.ProjectName, report.ReportDate, export.FormatBundle),
		MIMEType: export.FormatBundle.MIME(),
		Content:  buf.Bytes(),
	}, nil
}
