// Package docx renders the daily report as a structured word-processing
// document. The same logical blocks as the paginated format are built from
// grid and paragraph primitives with explicit column spans and shading; the
// host format owns pagination.
package docx

import (
	"bytes"
	"context"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/de-tools/site-report/pkg/models/domain"
	"github.com/de-tools/site-report/pkg/services/export"
	"github.com/de-tools/site-report/pkg/services/export/layout"
)

var (
	shadeHeader     = color.FromHex("1F4E79")
	shadeColumnHead = color.FromHex("D9E2F3")
	shadeAltRow     = color.FromHex("F1F5F9")
	shadeTotalRow   = color.FromHex("D9E2F3")
)

// Renderer builds the docx artifact.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) Format() export.Format { return export.FormatDOCX }

func (r *Renderer) Render(ctx context.Context, report domain.ReportData) (domain.RenderedDocument, error) {
	ld := layout.Build(report)

	doc := document.New()
	writeTitle(doc, ld)
	writeInfo(doc, ld)
	writePanels(doc, ld)
	for _, pair := range ld.Pairs {
		doc.AddParagraph()
		writeTablePair(doc, pair)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatDOCX, err)
	}

	return domain.RenderedDocument{
		FileName: export.FileName(report.ProjectName, report.ReportDate, export.FormatDOCX),
		MIMEType: export.FormatDOCX.MIME(),
		Content:  buf.Bytes(),
	}, nil
}

func writeTitle(doc *document.Document, ld layout.Document) {
	para := doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)
	run := para.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(16 * measurement.Point)
	run.AddText(ld.Title)
}

// writeInfo emits the three label/value paragraphs with mixed bold and
// plain runs, matching the paginated format's text exactly.
func writeInfo(doc *document.Document, ld layout.Document) {
	infoParagraph(doc, "Project", ld.Project)
	infoParagraph(doc, "Weather AM | PM", ld.Weather)
	para := infoParagraph(doc, "Temperature AM | PM", ld.Temperature)
	if date := ld.FormatDate(); date != "" {
		run := para.AddRun()
		run.AddTab()
		run.AddText(date)
	}
}

func infoParagraph(doc *document.Document, label, value string) document.Paragraph {
	para := doc.AddParagraph()
	bold := para.AddRun()
	bold.Properties().SetBold(true)
	bold.AddText(label + ": ")
	para.AddRun().AddText(value)
	return para
}

// writePanels builds the two-column, ten-row activity grid from the shared
// reflow output.
func writePanels(doc *document.Document, ld layout.Document) {
	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)
	table.Properties().Borders().SetAll(wml.ST_BorderSingle, color.Gray, measurement.Zero)

	head := table.AddRow()
	for _, panel := range ld.Panels {
		cell := head.AddCell()
		cell.Properties().SetWidthPercent(50)
		cell.Properties().SetShading(wml.ST_ShdSolid, shadeHeader, color.Auto)
		para := cell.AddParagraph()
		para.Properties().SetAlignment(wml.ST_JcCenter)
		run := para.AddRun()
		run.Properties().SetBold(true)
		run.Properties().SetColor(color.White)
		run.AddText(panel.Heading)
	}

	for i := 0; i < layout.PanelLines; i++ {
		row := table.AddRow()
		for _, panel := range ld.Panels {
			cell := row.AddCell()
			cell.Properties().SetWidthPercent(50)
			cell.AddParagraph().AddRun().AddText(panel.Lines[i])
		}
	}
}

// writeTablePair mirrors the paginated format's table pair cell-for-cell:
// full-span group title, column-spanning sub-header labels, duplicated
// column headers, alternating-shaded body rows and a bold TOTAL row.
func writeTablePair(doc *document.Document, pair layout.TablePair) {
	sideCols := 4
	if pair.Left.HasUnit {
		sideCols = 5
	}
	totalCols := 2 * sideCols

	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)
	table.Properties().Borders().SetAll(wml.ST_BorderSingle, color.Gray, measurement.Zero)

	if pair.Title != "" {
		row := table.AddRow()
		cell := row.AddCell()
		cell.Properties().SetColumnSpan(totalCols)
		para := cell.AddParagraph()
		run := para.AddRun()
		run.Properties().SetBold(true)
		run.AddText(pair.Title)
	}

	// sub-header: one spanning label per side
	subHead := table.AddRow()
	for _, t := range []layout.Table{pair.Left, pair.Right} {
		cell := subHead.AddCell()
		cell.Properties().SetColumnSpan(sideCols)
		cell.Properties().SetShading(wml.ST_ShdSolid, shadeHeader, color.Auto)
		para := cell.AddParagraph()
		para.Properties().SetAlignment(wml.ST_JcCenter)
		run := para.AddRun()
		run.Properties().SetBold(true)
		run.Properties().SetColor(color.White)
		run.AddText(t.Label)
	}

	// column headers, duplicated per side
	head := table.AddRow()
	for range []layout.Table{pair.Left, pair.Right} {
		labels := []string{"Description", "Prev", "Today", "Accum"}
		if pair.Left.HasUnit {
			labels = []string{"Description", "Unit", "Prev", "Today", "Accum"}
		}
		for _, label := range labels {
			cell := head.AddCell()
			cell.Properties().SetShading(wml.ST_ShdSolid, shadeColumnHead, color.Auto)
			para := cell.AddParagraph()
			para.Properties().SetAlignment(wml.ST_JcCenter)
			run := para.AddRun()
			run.Properties().SetBold(true)
			run.AddText(label)
		}
	}

	for i := 0; i < pair.Rows; i++ {
		row := table.AddRow()
		for _, t := range []layout.Table{pair.Left, pair.Right} {
			writeBodyCells(row, t, i)
		}
	}

	total := table.AddRow()
	writeTotalCells(total, pair.Left)
	writeTotalCells(total, pair.Right)
}

func writeBodyCells(row document.Row, t layout.Table, i int) {
	item, ok := t.Row(i)
	values := []string{"", "", "", ""}
	if t.HasUnit {
		values = append(values, "")
	}
	if ok {
		values = []string{item.Description, layout.FormatQuantity(item.Prev),
			layout.FormatQuantity(item.Today), layout.FormatQuantity(item.Accumulated)}
		if t.HasUnit {
			values = []string{item.Description, item.Unit, layout.FormatQuantity(item.Prev),
				layout.FormatQuantity(item.Today), layout.FormatQuantity(item.Accumulated)}
		}
	}
	for _, v := range values {
		cell := row.AddCell()
		if i%2 == 1 {
			cell.Properties().SetShading(wml.ST_ShdSolid, shadeAltRow, color.Auto)
		}
		cell.AddParagraph().AddRun().AddText(v)
	}
}

func writeTotalCells(row document.Row, t layout.Table) {
	values := []string{"TOTAL", layout.FormatQuantity(t.Totals.Prev),
		layout.FormatQuantity(t.Totals.Today), layout.FormatQuantity(t.Totals.Accumulated)}
	if t.HasUnit {
		values = []string{"TOTAL", "", layout.FormatQuantity(t.Totals.Prev),
			layout.FormatQuantity(t.Totals.Today), layout.FormatQuantity(t.Totals.Accumulated)}
	}
	for _, v := range values {
		cell := row.AddCell()
		cell.Properties().SetShading(wml.ST_ShdSolid, shadeTotalRow, color.Auto)
		run := cell.AddParagraph().AddRun()
		run.Properties().SetBold(true)
		run.AddText(v)
	}
}
