// Package xlsx renders the daily report by overlaying dynamic data onto the
// fixed spreadsheet template. Layout and styling live in the template; the
// renderer writes values into anchored cells, cloning template styles onto
// every cell it touches and inserting rows when data outgrows a pre-sized
// block.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/site-report/pkg/models/domain"
	"github.com/de-tools/site-report/pkg/services/assets"
	"github.com/de-tools/site-report/pkg/services/export"
	"github.com/de-tools/site-report/pkg/services/export/layout"
)

// numFmtDate is the builtin short date format assigned to the date anchor
// when the template cell carries no display format of its own.
const numFmtDate = 14

// Renderer overlays one report onto the fixed template workbook.
type Renderer struct {
	assets   assets.Store
	manifest Manifest
}

func NewRenderer(store assets.Store) *Renderer {
	return &Renderer{assets: store, manifest: DefaultManifest()}
}

// NewRendererWithManifest supports templates whose physical layout differs
// from the shipped one.
func NewRendererWithManifest(store assets.Store, m Manifest) *Renderer {
	return &Renderer{assets: store, manifest: m}
}

func (r *Renderer) Format() export.Format { return export.FormatXLSX }

func (r *Renderer) Render(ctx context.Context, report domain.ReportData) (domain.RenderedDocument, error) {
	doc := layout.Build(report)

	// A fresh workbook per call; template bytes are fetched each time.
	data, err := r.assets.Template(ctx)
	if err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatXLSX, fmt.Errorf("load template: %w", err))
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatXLSX, fmt.Errorf("open template: %w", err))
	}
	defer func() { _ = f.Close() }()

	m := r.manifest
	if err := m.Validate(f); err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatXLSX, err)
	}

	if err := r.writeScalars(f, doc); err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatXLSX, err)
	}
	if err := r.writePanels(f, doc); err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatXLSX, err)
	}

	// Blocks are written top-down; rows inserted into an upper block shift
	// every anchor below it by the same offset.
	offset, err := writeBlock(f, m.Sheet, m.Teams, doc.Pairs[0], 0)
	if err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatXLSX, err)
	}
	if _, err := writeBlock(f, m.Sheet, m.Materials, doc.Pairs[1], offset); err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatXLSX, err)
	}

	r.placeLogo(ctx, f)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return domain.RenderedDocument{}, export.Failed(export.FormatXLSX, fmt.Errorf("serialize workbook: %w", err))
	}

	return domain.RenderedDocument{
		FileName: export.FileName(report.ProjectName, report.ReportDate, export.FormatXLSX),
		MIMEType: export.FormatXLSX.MIME(),
		Content:  buf.Bytes(),
	}, nil
}

func (r *Renderer) writeScalars(f *excelize.File, doc layout.Document) error {
	m := r.manifest
	for cell, value := range map[string]string{
		m.ProjectCell:     doc.Project,
		m.WeatherCell:     doc.Weather,
		m.TemperatureCell: doc.Temperature,
	} {
		if err := f.SetCellStr(m.Sheet, cell, value); err != nil {
			return fmt.Errorf("write scalar %s: %w", cell, err)
		}
	}

	if doc.Date.IsZero() {
		return f.SetCellStr(m.Sheet, m.DateCell, "")
	}
	if err := ensureDateFormat(f, m.Sheet, m.DateCell); err != nil {
		return err
	}
	if err := f.SetCellValue(m.Sheet, m.DateCell, doc.Date); err != nil {
		return fmt.Errorf("write date %s: %w", m.DateCell, err)
	}
	return nil
}

// ensureDateFormat assigns a date number format to the anchor cell when the
// template left it without one.
func ensureDateFormat(f *excelize.File, sheet, cell string) error {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return fmt.Errorf("read date cell style: %w", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return fmt.Errorf("resolve date cell style: %w", err)
	}
	if style.NumFmt != 0 || (style.CustomNumFmt != nil && *style.CustomNumFmt != "") {
		return nil
	}
	style.NumFmt = numFmtDate
	newID, err := f.NewStyle(style)
	if err != nil {
		return fmt.Errorf("create date style: %w", err)
	}
	return f.SetCellStyle(sheet, cell, cell, newID)
}

// writePanels reflows both free-text fields into the ten fixed panel rows,
// cloning the style of the template's first panel row onto every written
// cell. Losing the clone is a correctness bug: the template carries all
// borders and wrapping behavior.
func (r *Renderer) writePanels(f *excelize.File, doc layout.Document) error {
	m := r.manifest
	cols := [2]string{m.PanelLeftCol, m.PanelRightCol}
	for side, panel := range doc.Panels {
		col := cols[side]
		donor, err := f.GetCellStyle(m.Sheet, cellAt(col, m.PanelDataRow))
		if err != nil {
			return fmt.Errorf("read panel donor style: %w", err)
		}
		for i, line := range panel.Lines {
			cell := cellAt(col, m.PanelDataRow+i)
			if err := f.SetCellStyle(m.Sheet, cell, cell, donor); err != nil {
				return fmt.Errorf("clone panel style to %s: %w", cell, err)
			}
			if err := f.SetCellStr(m.Sheet, cell, line); err != nil {
				return fmt.Errorf("write panel line %s: %w", cell, err)
			}
		}
	}
	return nil
}

// writeBlock fills one side-by-side table pair. When the pair needs more
// body rows than the template pre-sizes, the extra rows are inserted
// immediately below the template block, shifting the total row and every
// block beneath it. Returns the cumulative row offset for blocks below.
func writeBlock(f *excelize.File, sheet string, block TableBlock, pair layout.TablePair, offset int) (int, error) {
	dataRow := block.DataRow + offset
	totalRow := block.TotalRow + offset

	extra := pair.Rows - block.Rows
	if extra > 0 {
		if err := f.InsertRows(sheet, dataRow+block.Rows, extra); err != nil {
			return offset, fmt.Errorf("insert %d rows at %d: %w", extra, dataRow+block.Rows, err)
		}
		totalRow += extra
	} else {
		extra = 0
	}

	sides := [2]struct {
		cols  ColumnSet
		table layout.Table
	}{
		{block.Left, pair.Left},
		{block.Right, pair.Right},
	}
	for _, side := range sides {
		if err := writeSide(f, sheet, side.cols, side.table, dataRow, pair.Rows, totalRow); err != nil {
			return offset, err
		}
	}
	return offset + extra, nil
}

func writeSide(f *excelize.File, sheet string, cols ColumnSet, table layout.Table, dataRow, rows, totalRow int) error {
	donors, err := donorStyles(f, sheet, cols, dataRow)
	if err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		rowNum := dataRow + i

		// Every body row, inserted or not, gets the template row's styles
		// and the description-column merge re-established.
		for col, styleID := range donors {
			cell := cellAt(col, rowNum)
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return fmt.Errorf("clone style to %s: %w", cell, err)
			}
		}
		if err := f.MergeCell(sheet, cellAt(cols.Desc, rowNum), cellAt(cols.DescEnd, rowNum)); err != nil {
			return fmt.Errorf("merge description on row %d: %w", rowNum, err)
		}

		row, ok := table.Row(i)
		if !ok {
			continue // padding row of the shorter table
		}
		if err := f.SetCellStr(sheet, cellAt(cols.Desc, rowNum), row.Description); err != nil {
			return fmt.Errorf("write description row %d: %w", rowNum, err)
		}
		if cols.Unit != "" {
			if err := f.SetCellStr(sheet, cellAt(cols.Unit, rowNum), row.Unit); err != nil {
				return fmt.Errorf("write unit row %d: %w", rowNum, err)
			}
		}
		if err := f.SetCellValue(sheet, cellAt(cols.Prev, rowNum), row.Prev); err != nil {
			return fmt.Errorf("write prev row %d: %w", rowNum, err)
		}
		if err := f.SetCellValue(sheet, cellAt(cols.Today, rowNum), row.Today); err != nil {
			return fmt.Errorf("write today row %d: %w", rowNum, err)
		}
		// A formula, not a literal: the sheet stays self-consistent when a
		// user edits prev/today after export.
		accum := fmt.Sprintf("SUM(%s%d:%s%d)", cols.Prev, rowNum, cols.Today, rowNum)
		if err := f.SetCellFormula(sheet, cellAt(cols.Accum, rowNum), accum); err != nil {
			return fmt.Errorf("write accumulated formula row %d: %w", rowNum, err)
		}
	}

	// Re-point the total formulas at the full, possibly shifted, data range.
	for _, col := range []string{cols.Prev, cols.Today, cols.Accum} {
		formula := fmt.Sprintf("SUM(%s%d:%s%d)", col, dataRow, col, totalRow-1)
		if err := f.SetCellFormula(sheet, cellAt(col, totalRow), formula); err != nil {
			return fmt.Errorf("write total formula %s%d: %w", col, totalRow, err)
		}
	}
	return nil
}

// donorStyles reads the style of each column's cell on the template's first
// data row; those styles are cloned onto every body row.
func donorStyles(f *excelize.File, sheet string, cols ColumnSet, dataRow int) (map[string]int, error) {
	columns := []string{cols.Desc, cols.DescEnd, cols.Prev, cols.Today, cols.Accum}
	if cols.Unit != "" {
		columns = append(columns, cols.Unit)
	}
	donors := make(map[string]int, len(columns))
	for _, col := range columns {
		styleID, err := f.GetCellStyle(sheet, cellAt(col, dataRow))
		if err != nil {
			return nil, fmt.Errorf("read donor style %s%d: %w", col, dataRow, err)
		}
		donors[col] = styleID
	}
	return donors, nil
}

// placeLogo drops the company logo into its anchor cell. Missing or broken
// logos are tolerated; the workbook renders without them.
func (r *Renderer) placeLogo(ctx context.Context, f *excelize.File) {
	logger := zerolog.Ctx(ctx)

	data, err := r.assets.Logo(ctx, assets.LogoCompany)
	if err != nil {
		logger.Warn().Err(err).Msg("rendering workbook without logo")
		return
	}
	err = f.AddPictureFromBytes(r.manifest.Sheet, r.manifest.LogoCell, &excelize.Picture{
		Extension: ".png",
		File:      data,
		Format:    &excelize.GraphicOptions{ScaleX: 0.6, ScaleY: 0.6},
	})
	if err != nil {
		logger.Warn().Err(err).Msg("logo could not be placed, skipping")
	}
}
