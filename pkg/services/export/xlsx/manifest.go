package xlsx

import (
	"fmt"

	"github.com/de-tools/site-report/pkg/services/export/layout"
	"github.com/xuri/excelize/v2"
)

// ColumnSet names the columns one table of a side-by-side pair occupies.
// Desc..DescEnd is the merged description range re-established on every
// body row.
type ColumnSet struct {
	Desc    string
	DescEnd string
	Unit    string // empty for team tables
	Prev    string
	Today   string
	Accum   string
}

// TableBlock binds one side-by-side table pair to its physical rows in the
// template. Rows is the pre-sized body row allotment; data beyond it gets
// inserted rows, shifting everything below.
type TableBlock struct {
	HeaderRow int
	DataRow   int
	Rows      int
	TotalRow  int
	HasUnit   bool
	Left      ColumnSet
	Right     ColumnSet
}

// Manifest maps every semantic field of the report onto a fixed template
// address. The binding is declared here once and validated at load time
// instead of being scattered through rendering code.
type Manifest struct {
	Sheet string

	LogoCell string

	ProjectCell     string
	WeatherCell     string
	TemperatureCell string
	DateCell        string

	PanelDataRow  int // first of the ten panel rows; style donor for clones
	PanelLeftCol  string
	PanelRightCol string

	Teams     TableBlock
	Materials TableBlock
}

// DefaultManifest matches the spreadsheet template shipped with the service.
func DefaultManifest() Manifest {
	return Manifest{
		Sheet: "Daily Report",

		LogoCell: "B2",

		ProjectCell:     "C5",
		WeatherCell:     "C6",
		TemperatureCell: "C7",
		DateCell:        "K7",

		PanelDataRow:  10,
		PanelLeftCol:  "B",
		PanelRightCol: "H",

		Teams: TableBlock{
			HeaderRow: 22,
			DataRow:   23,
			Rows:      layout.MinTeamRows,
			TotalRow:  29,
			Left:      ColumnSet{Desc: "B", DescEnd: "C", Prev: "D", Today: "E", Accum: "F"},
			Right:     ColumnSet{Desc: "H", DescEnd: "I", Prev: "J", Today: "K", Accum: "L"},
		},
		Materials: TableBlock{
			HeaderRow: 32,
			DataRow:   33,
			Rows:      layout.MinMaterialRows,
			TotalRow:  34,
			HasUnit:   true,
			Left:      ColumnSet{Desc: "B", DescEnd: "C", Unit: "D", Prev: "E", Today: "F", Accum: "G"},
			Right:     ColumnSet{Desc: "H", DescEnd: "I", Unit: "J", Prev: "K", Today: "L", Accum: "M"},
		},
	}
}

// Validate checks the loaded workbook against the manifest. Anchors are
// positional, so a template whose physical layout drifted from the manifest
// must be rejected up front instead of silently corrupting output.
func (m Manifest) Validate(f *excelize.File) error {
	if idx, err := f.GetSheetIndex(m.Sheet); err != nil || idx < 0 {
		return fmt.Errorf("template has no sheet %q", m.Sheet)
	}
	for _, b := range []TableBlock{m.Teams, m.Materials} {
		if b.DataRow <= b.HeaderRow {
			return fmt.Errorf("table data row %d not below header row %d", b.DataRow, b.HeaderRow)
		}
		if b.TotalRow != b.DataRow+b.Rows {
			return fmt.Errorf("total row %d does not follow the %d-row data block at %d",
				b.TotalRow, b.Rows, b.DataRow)
		}
	}
	if m.Teams.TotalRow >= m.Materials.HeaderRow {
		return fmt.Errorf("team block overlaps materials block")
	}
	return nil
}

func cellAt(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
