package xlsx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/site-report/pkg/models/domain"
	"github.com/de-tools/site-report/pkg/services/assets"
	"github.com/de-tools/site-report/pkg/services/export"
	"github.com/de-tools/site-report/pkg/services/export/layout"
)

type stubStore struct {
	template []byte
	err      error
}

func (s stubStore) Template(context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.template, nil
}

func (s stubStore) Logo(context.Context, string) ([]byte, error) {
	return nil, assets.ErrNotFound
}

// buildTemplate produces a minimal workbook matching the default manifest:
// styled panel and table donor rows, description merges, pre-sized blocks.
func buildTemplate(t *testing.T) []byte {
	t.Helper()
	m := DefaultManifest()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", m.Sheet))

	styleOf := func(fill string) int {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		})
		require.NoError(t, err)
		return id
	}
	panelStyle := styleOf("FFF2CC")
	teamStyle := styleOf("DDEBF7")
	materialStyle := styleOf("E2EFDA")

	for _, col := range []string{m.PanelLeftCol, m.PanelRightCol} {
		for i := 0; i < layout.PanelLines; i++ {
			cell := cellAt(col, m.PanelDataRow+i)
			require.NoError(t, f.SetCellStyle(m.Sheet, cell, cell, panelStyle))
		}
	}

	seedBlock := func(block TableBlock, style int) {
		for _, cols := range []ColumnSet{block.Left, block.Right} {
			columns := []string{cols.Desc, cols.DescEnd, cols.Prev, cols.Today, cols.Accum}
			if cols.Unit != "" {
				columns = append(columns, cols.Unit)
			}
			for r := block.DataRow; r < block.DataRow+block.Rows; r++ {
				for _, col := range columns {
					cell := cellAt(col, r)
					require.NoError(t, f.SetCellStyle(m.Sheet, cell, cell, style))
				}
				require.NoError(t, f.MergeCell(m.Sheet, cellAt(cols.Desc, r), cellAt(cols.DescEnd, r)))
			}
		}
	}
	seedBlock(m.Teams, teamStyle)
	seedBlock(m.Materials, materialStyle)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func testReport() domain.ReportData {
	return domain.ReportData{
		ProjectName:   "Harbor Bridge",
		ReportDate:    time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		WeatherAM:     "Cloudy",
		WeatherPM:     "Rain",
		TemperatureAM: "12C",
		TemperaturePM: "15C",
		ActivityToday: "Pile driving on pier 4",
		PlanNextDay:   "Continue pile driving",
		WorkingTeam: []domain.ResourceRow{
			{Description: "Steel fixer", Prev: 4, Today: 2, Accumulated: 6},
		},
		Materials: []domain.ResourceRow{
			{Description: "Cement", Unit: "bag", Prev: 100, Today: 20, Accumulated: 120},
		},
	}
}

func render(t *testing.T, report domain.ReportData) *excelize.File {
	t.Helper()
	r := NewRenderer(stubStore{template: buildTemplate(t)})
	doc, err := r.Render(context.Background(), report)
	require.NoError(t, err)

	out, err := excelize.OpenReader(bytes.NewReader(doc.Content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = out.Close() })
	return out
}

func TestRenderer_Scalars(t *testing.T) {
	m := DefaultManifest()
	out := render(t, testReport())

	project, err := out.GetCellValue(m.Sheet, m.ProjectCell)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Bridge", project)

	weather, err := out.GetCellValue(m.Sheet, m.WeatherCell)
	require.NoError(t, err)
	assert.Equal(t, "Cloudy | Rain", weather)

	temperature, err := out.GetCellValue(m.Sheet, m.TemperatureCell)
	require.NoError(t, err)
	assert.Equal(t, "12C | 15C", temperature)
}

func TestRenderer_PanelsCloneTemplateStyle(t *testing.T) {
	m := DefaultManifest()
	out := render(t, testReport())

	first, err := out.GetCellValue(m.Sheet, cellAt(m.PanelLeftCol, m.PanelDataRow))
	require.NoError(t, err)
	assert.Equal(t, "Pile driving on pier 4", first)

	donor, err := out.GetCellStyle(m.Sheet, cellAt(m.PanelLeftCol, m.PanelDataRow))
	require.NoError(t, err)
	last, err := out.GetCellStyle(m.Sheet, cellAt(m.PanelLeftCol, m.PanelDataRow+layout.PanelLines-1))
	require.NoError(t, err)
	assert.Equal(t, donor, last, "every panel cell carries the template row's style")
}

// Empty resource collections render the pre-sized blocks: minimum rows,
// zero totals, no error.
func TestRenderer_EmptyReport(t *testing.T) {
	m := DefaultManifest()
	out := render(t, domain.ReportData{ProjectName: "Empty"})

	formula, err := out.GetCellFormula(m.Sheet, cellAt(m.Teams.Left.Prev, m.Teams.TotalRow))
	require.NoError(t, err)
	expected := fmt.Sprintf("SUM(%s%d:%s%d)",
		m.Teams.Left.Prev, m.Teams.DataRow, m.Teams.Left.Prev, m.Teams.TotalRow-1)
	assert.Equal(t, expected, formula)

	value, err := out.CalcCellValue(m.Sheet, cellAt(m.Teams.Left.Prev, m.Teams.TotalRow))
	require.NoError(t, err)
	assert.Equal(t, "0", value)
}

// Twelve material rows against a template sized for one: eleven rows are
// inserted, description merges cover all twelve, styles match the template
// row, and the TOTAL formula spans the full shifted range.
func TestRenderer_InsertsRowsBeyondTemplate(t *testing.T) {
	m := DefaultManifest()
	report := testReport()
	report.Materials = nil
	for i := 0; i < 12; i++ {
		report.Materials = append(report.Materials, domain.ResourceRow{
			Description: fmt.Sprintf("Material %d", i+1),
			Unit:        "pcs",
			Prev:        float64(i),
			Today:       1,
			Accumulated: float64(i) + 1,
		})
	}
	out := render(t, report)

	dataRow := m.Materials.DataRow
	totalRow := m.Materials.TotalRow + 11

	formula, err := out.GetCellFormula(m.Sheet, cellAt(m.Materials.Left.Prev, totalRow))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("SUM(%s%d:%s%d)",
		m.Materials.Left.Prev, dataRow, m.Materials.Left.Prev, totalRow-1), formula)

	merges, err := out.GetMergeCells(m.Sheet)
	require.NoError(t, err)
	merged := make(map[string]bool, len(merges))
	for _, mc := range merges {
		merged[mc.GetStartAxis()+":"+mc.GetEndAxis()] = true
	}
	for r := dataRow; r < dataRow+12; r++ {
		rangeRef := cellAt(m.Materials.Left.Desc, r) + ":" + cellAt(m.Materials.Left.DescEnd, r)
		assert.True(t, merged[rangeRef], "missing description merge %s", rangeRef)
	}

	donor, err := out.GetCellStyle(m.Sheet, cellAt(m.Materials.Left.Desc, dataRow))
	require.NoError(t, err)
	inserted, err := out.GetCellStyle(m.Sheet, cellAt(m.Materials.Left.Desc, dataRow+11))
	require.NoError(t, err)
	assert.Equal(t, donor, inserted, "inserted rows must clone the template row style")

	last, err := out.GetCellValue(m.Sheet, cellAt(m.Materials.Left.Desc, dataRow+11))
	require.NoError(t, err)
	assert.Equal(t, "Material 12", last)
}

// The accumulated cell holds a formula over prev/today, and evaluating it
// agrees with the totals calculator's per-row identity.
func TestRenderer_AccumulatedFormulaRoundTrip(t *testing.T) {
	m := DefaultManifest()
	out := render(t, testReport())

	row := m.Materials.DataRow
	formula, err := out.GetCellFormula(m.Sheet, cellAt(m.Materials.Left.Accum, row))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("SUM(%s%d:%s%d)",
		m.Materials.Left.Prev, row, m.Materials.Left.Today, row), formula)

	value, err := out.CalcCellValue(m.Sheet, cellAt(m.Materials.Left.Accum, row))
	require.NoError(t, err)
	assert.Equal(t, "120", value)
}

func TestRenderer_TemplateFetchFailureIsFatal(t *testing.T) {
	r := NewRenderer(stubStore{err: errors.New("template host unreachable")})

	_, err := r.Render(context.Background(), testReport())
	require.Error(t, err)

	var renderErr *export.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, export.FormatXLSX, renderErr.Format)
}

func TestRenderer_RejectsForeignTemplate(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	r := NewRenderer(stubStore{template: buf.Bytes()})
	_, err = r.Render(context.Background(), testReport())
	require.Error(t, err, "a template without the expected sheet must be rejected")
}

func TestRenderer_FileName(t *testing.T) {
	r := NewRenderer(stubStore{template: buildTemplate(t)})
	doc, err := r.Render(context.Background(), testReport())
	require.NoError(t, err)
	assert.Equal(t, "Daily_Report_Harbor_Bridge_2024-03-14.xlsx", doc.FileName)
}
