// Package pdf renders the daily report as a paginated A4 document drawn at
// absolute coordinates. The vertical cursor advances block by block; a block
// that would cross the printable height starts a new page first, so no table
// row is ever split across a page boundary.
package pdf

import (
	"bytes"
	"context"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/de-tools/site-report/pkg/models/domain"
	"github.com/de-tools/site-report/pkg/services/assets"
	"github.com/de-tools/site-report/pkg/services/export"
	"github.com/de-tools/site-report/pkg/services/export/layout"
)

const (
	pageWidth  = 210.0 // A4 portrait, mm
	pageHeight = 297.0

	marginLeft   = 12.0
	marginTop    = 12.0
	marginRight  = 12.0
	marginBottom = 15.0

	contentWidth = pageWidth - marginLeft - marginRight

	infoLineHeight  = 6.0
	panelLineHeight = 5.0
	panelHeadHeight = 7.0
	tableRowHeight  = 6.0
	pairGap         = 4.0
	blockGap        = 6.0

	logoWidth  = 28.0
	logoHeight = 14.0

	numColWidth  = 15.0
	unitColWidth = 12.0
)

var (
	colorHeader     = [3]int{31, 78, 121}   // navy sub-headers
	colorHeaderText = [3]int{255, 255, 255}
	colorColumnHead = [3]int{217, 226, 243} // light blue column headers
	colorAltRow     = [3]int{241, 245, 249}
	colorTotalRow   = [3]int{217, 226, 243}
	colorText       = [3]int{44, 62, 80}
	colorBorder     = [3]int{120, 120, 120}
)

// Renderer draws the freeform paginated artifact.
type Renderer struct {
	assets assets.Store
}

func NewRenderer(store assets.Store) *Renderer {
	return &Renderer{assets: store}
}

func (r *Renderer) Format() export.Format { return export.FormatPDF }

func (r *Renderer) Render(ctx context.Context, report domain.ReportData) (domain.RenderedDocument, error) {
	doc := layout.Build(report)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.drawHeader(ctx, pdf, tr, doc)
	drawProjectInfo(pdf, tr, doc)
	drawPanels(pdf, tr, doc)
	for _, pair := range doc.Pairs {
		drawTablePair(pdf, tr, pair)
	}

	if pdf.Err() {
		return domain.RenderedDocument{}, export.Failed(export.FormatPDF, pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatPDF, err)
	}

	return domain.RenderedDocument{
		FileName: export.FileName(report.ProjectName, report.ReportDate, export.FormatPDF),
		MIMEType: export.FormatPDF.MIME(),
		Content:  buf.Bytes(),
	}, nil
}

// ensureSpace starts a new page when the next block of the given height
// would cross the printable area.
func ensureSpace(pdf *fpdf.Fpdf, height float64) {
	if pdf.GetY()+height > pageHeight-marginBottom {
		pdf.AddPage()
		pdf.SetY(marginTop)
	}
}

// drawHeader places the two corner logos and the centered title. A logo
// that cannot be fetched or decoded is skipped; the report renders without it.
func (r *Renderer) drawHeader(ctx context.Context, pdf *fpdf.Fpdf, tr func(string) string, doc layout.Document) {
	r.placeLogo(ctx, pdf, assets.LogoCompany, marginLeft)
	r.placeLogo(ctx, pdf, assets.LogoClient, pageWidth-marginRight-logoWidth)

	pdf.SetY(marginTop + 3)
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(colorText[0], colorText[1], colorText[2])
	pdf.CellFormat(0, 8, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetY(marginTop + logoHeight + 4)
}

func (r *Renderer) placeLogo(ctx context.Context, pdf *fpdf.Fpdf, name string, x float64) {
	logger := zerolog.Ctx(ctx)

	data, err := r.assets.Logo(ctx, name)
	if err != nil {
		logger.Warn().Err(err).Str("logo", name).Msg("rendering without logo")
		return
	}
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		logger.Warn().Err(pdf.Error()).Str("logo", name).Msg("logo decode failed, skipping")
		pdf.ClearError()
		return
	}
	pdf.ImageOptions(name, x, marginTop, logoWidth, logoHeight, false, opts, 0, "")
}

func drawProjectInfo(pdf *fpdf.Fpdf, tr func(string) string, doc layout.Document) {
	ensureSpace(pdf, 3*infoLineHeight)
	pdf.SetTextColor(colorText[0], colorText[1], colorText[2])

	infoLine(pdf, tr, "Project", doc.Project, "")
	infoLine(pdf, tr, "Weather AM | PM", doc.Weather, "")
	infoLine(pdf, tr, "Temperature AM | PM", doc.Temperature, doc.FormatDate())
	pdf.SetY(pdf.GetY() + 2)
}

// infoLine draws one bold label, its value, and an optional right-aligned
// trailer on the same baseline.
func infoLine(pdf *fpdf.Fpdf, tr func(string) string, label, value, trailer string) {
	pdf.SetX(marginLeft)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(45, infoLineHeight, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	valueWidth := contentWidth - 45
	if trailer != "" {
		valueWidth -= 35
	}
	pdf.CellFormat(valueWidth, infoLineHeight, tr(value), "", 0, "L", false, 0, "")
	if trailer != "" {
		pdf.CellFormat(35, infoLineHeight, tr(trailer), "", 0, "R", false, 0, "")
	}
	pdf.Ln(infoLineHeight)
}

// drawPanels draws the two ten-line activity columns side by side, each in
// one bordered box under a colored heading.
func drawPanels(pdf *fpdf.Fpdf, tr func(string) string, doc layout.Document) {
	boxHeight := panelHeadHeight + layout.PanelLines*panelLineHeight
	ensureSpace(pdf, boxHeight+blockGap)

	top := pdf.GetY()
	halfWidth := (contentWidth - pairGap) / 2

	for i, panel := range doc.Panels {
		x := marginLeft + float64(i)*(halfWidth+pairGap)

		pdf.SetFillColor(colorHeader[0], colorHeader[1], colorHeader[2])
		pdf.SetTextColor(colorHeaderText[0], colorHeaderText[1], colorHeaderText[2])
		pdf.SetFont("Arial", "B", 10)
		pdf.SetXY(x, top)
		pdf.CellFormat(halfWidth, panelHeadHeight, tr(panel.Heading), "", 0, "C", true, 0, "")

		pdf.SetDrawColor(colorBorder[0], colorBorder[1], colorBorder[2])
		pdf.Rect(x, top, halfWidth, boxHeight, "D")

		pdf.SetTextColor(colorText[0], colorText[1], colorText[2])
		pdf.SetFont("Arial", "", 9)
		for j, line := range panel.Lines {
			pdf.SetXY(x+2, top+panelHeadHeight+float64(j)*panelLineHeight)
			pdf.CellFormat(halfWidth-4, panelLineHeight, tr(line), "", 0, "L", false, 0, "")
		}
	}

	pdf.SetY(top + boxHeight + blockGap)
}

// drawTablePair draws two resource tables side by side under one full-width
// group title. A pair that fits on the remaining page is placed as one
// block; an oversized pair falls back to row-granularity breaks, so a
// single row is never split either way.
func drawTablePair(pdf *fpdf.Fpdf, tr func(string) string, pair layout.TablePair) {
	// title + sub-header + column header + body + total
	blockHeight := tableRowHeight * float64(pair.Rows+3)
	if pair.Title != "" {
		blockHeight += tableRowHeight
	}
	if blockHeight <= pageHeight-marginTop-marginBottom {
		ensureSpace(pdf, blockHeight+blockGap)
	}

	halfWidth := (contentWidth - pairGap) / 2
	leftX := marginLeft
	rightX := marginLeft + halfWidth + pairGap
	y := pdf.GetY()

	if pair.Title != "" {
		pdf.SetXY(marginLeft, y)
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(colorText[0], colorText[1], colorText[2])
		pdf.CellFormat(contentWidth, tableRowHeight, tr(pair.Title), "", 1, "L", false, 0, "")
		y += tableRowHeight
	}

	drawTableHeaders(pdf, tr, pair.Left, leftX, y, halfWidth)
	drawTableHeaders(pdf, tr, pair.Right, rightX, y, halfWidth)
	y += 2 * tableRowHeight

	for i := 0; i < pair.Rows; i++ {
		y = nextRowY(pdf, y)
		drawBodyRow(pdf, tr, pair.Left, i, leftX, y, halfWidth)
		drawBodyRow(pdf, tr, pair.Right, i, rightX, y, halfWidth)
		y += tableRowHeight
	}

	y = nextRowY(pdf, y)
	drawTotalRow(pdf, tr, pair.Left, leftX, y, halfWidth)
	drawTotalRow(pdf, tr, pair.Right, rightX, y, halfWidth)

	pdf.SetY(y + tableRowHeight + blockGap)
}

// nextRowY returns where the next table row starts, moving to a fresh page
// when another row would cross the printable height.
func nextRowY(pdf *fpdf.Fpdf, y float64) float64 {
	if y+tableRowHeight > pageHeight-marginBottom {
		pdf.AddPage()
		return marginTop
	}
	return y
}

func columnWidths(table layout.Table, width float64) (desc, unit float64) {
	desc = width - 3*numColWidth
	if table.HasUnit {
		desc -= unitColWidth
		unit = unitColWidth
	}
	return desc, unit
}

func drawTableHeaders(pdf *fpdf.Fpdf, tr func(string) string, table layout.Table, x, y, width float64) {
	descWidth, unitWidth := columnWidths(table, width)

	pdf.SetDrawColor(colorBorder[0], colorBorder[1], colorBorder[2])

	// colored sub-header
	pdf.SetXY(x, y)
	pdf.SetFillColor(colorHeader[0], colorHeader[1], colorHeader[2])
	pdf.SetTextColor(colorHeaderText[0], colorHeaderText[1], colorHeaderText[2])
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(width, tableRowHeight, tr(table.Label), "1", 0, "C", true, 0, "")

	// column header
	pdf.SetXY(x, y+tableRowHeight)
	pdf.SetFillColor(colorColumnHead[0], colorColumnHead[1], colorColumnHead[2])
	pdf.SetTextColor(colorText[0], colorText[1], colorText[2])
	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(descWidth, tableRowHeight, "Description", "1", 0, "C", true, 0, "")
	if table.HasUnit {
		pdf.CellFormat(unitWidth, tableRowHeight, "Unit", "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(numColWidth, tableRowHeight, "Prev", "1", 0, "C", true, 0, "")
	pdf.CellFormat(numColWidth, tableRowHeight, "Today", "1", 0, "C", true, 0, "")
	pdf.CellFormat(numColWidth, tableRowHeight, "Accum", "1", 0, "C", true, 0, "")
}

// drawBodyRow draws row i with alternating shading; indexes beyond the
// table's data render blank padding cells.
func drawBodyRow(pdf *fpdf.Fpdf, tr func(string) string, table layout.Table, i int, x, y, width float64) {
	descWidth, unitWidth := columnWidths(table, width)
	shaded := i%2 == 1

	pdf.SetXY(x, y)
	pdf.SetFillColor(colorAltRow[0], colorAltRow[1], colorAltRow[2])
	pdf.SetTextColor(colorText[0], colorText[1], colorText[2])
	pdf.SetFont("Arial", "", 8)

	row, ok := table.Row(i)
	desc, unit, prev, today, accum := "", "", "", "", ""
	if ok {
		desc = row.Description
		unit = row.Unit
		prev = layout.FormatQuantity(row.Prev)
		today = layout.FormatQuantity(row.Today)
		accum = layout.FormatQuantity(row.Accumulated)
	}
	pdf.CellFormat(descWidth, tableRowHeight, tr(desc), "1", 0, "L", shaded, 0, "")
	if table.HasUnit {
		pdf.CellFormat(unitWidth, tableRowHeight, tr(unit), "1", 0, "C", shaded, 0, "")
	}
	pdf.CellFormat(numColWidth, tableRowHeight, prev, "1", 0, "R", shaded, 0, "")
	pdf.CellFormat(numColWidth, tableRowHeight, today, "1", 0, "R", shaded, 0, "")
	pdf.CellFormat(numColWidth, tableRowHeight, accum, "1", 0, "R", shaded, 0, "")
}

func drawTotalRow(pdf *fpdf.Fpdf, tr func(string) string, table layout.Table, x, y, width float64) {
	descWidth, unitWidth := columnWidths(table, width)

	pdf.SetXY(x, y)
	pdf.SetFillColor(colorTotalRow[0], colorTotalRow[1], colorTotalRow[2])
	pdf.SetTextColor(colorText[0], colorText[1], colorText[2])
	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(descWidth, tableRowHeight, "TOTAL", "1", 0, "L", true, 0, "")
	if table.HasUnit {
		pdf.CellFormat(unitWidth, tableRowHeight, "", "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(numColWidth, tableRowHeight, layout.FormatQuantity(table.Totals.Prev), "1", 0, "R", true, 0, "")
	pdf.CellFormat(numColWidth, tableRowHeight, layout.FormatQuantity(table.Totals.Today), "1", 0, "R", true, 0, "")
	pdf.CellFormat(numColWidth, tableRowHeight, layout.FormatQuantity(table.Totals.Accumulated), "1", 0, "R", true, 0, "")
}
