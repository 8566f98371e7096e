package layout

import (
	"fmt"
	"time"

	"github.com/de-tools/site-report/pkg/models/domain"
)

// PanelLines is the fixed height, in wrapped lines, of each activity panel.
const PanelLines = 10

// DateLayout is the display form of the report date in every output format.
const DateLayout = "2006-01-02"

// Document is the logical daily report: the ordered blocks every renderer
// draws, independent of any output format's layout primitives. Each
// renderer lowers this one structure into coordinates, cells or blocks,
// which keeps the business rules (reflow, totals, row minimums) in exactly
// one place.
type Document struct {
	Title       string
	Project     string
	Weather     string
	Temperature string
	Date        time.Time

	Panels [2]Panel
	Pairs  []TablePair
}

// Panel is one ten-line free-text column.
type Panel struct {
	Heading string
	Lines   []string
}

// TablePair is two resource tables rendered side by side under an optional
// group title. Rows is the shared body row count of both sides.
type TablePair struct {
	Title string
	Rows  int
	Left  Table
	Right Table
}

// Table is one resource table with its precomputed totals.
type Table struct {
	Label   string
	HasUnit bool
	Rows    []domain.ResourceRow
	Totals  Totals
}

// Row returns the body row at index i, or a zero row when the table is
// shorter than its pair partner and pads with blanks.
func (t Table) Row(i int) (domain.ResourceRow, bool) {
	if i < 0 || i >= len(t.Rows) {
		return domain.ResourceRow{}, false
	}
	return t.Rows[i], true
}

// FormatDate renders the report date for display; the zero time renders as
// an empty string rather than a bogus epoch.
func (d Document) FormatDate() string {
	if d.Date.IsZero() {
		return ""
	}
	return d.Date.Format(DateLayout)
}

// Build lowers a report record into the logical document shared by all
// renderers.
func Build(report domain.ReportData) Document {
	return Document{
		Title:       "DAILY REPORT",
		Project:     report.ProjectName,
		Weather:     joinAMPM(report.WeatherAM, report.WeatherPM),
		Temperature: joinAMPM(report.TemperatureAM, report.TemperaturePM),
		Date:        report.ReportDate,
		Panels: [2]Panel{
			{Heading: "Activity Today", Lines: Reflow(report.ActivityToday, PanelLines)},
			{Heading: "Plan for Next Day", Lines: Reflow(report.PlanNextDay, PanelLines)},
		},
		Pairs: []TablePair{
			buildPair("Site Team", report.ManagementTeam, "Management Team",
				report.WorkingTeam, "Working Team", MinTeamRows, false),
			buildPair("Materials & Machinery", report.Materials, "Materials",
				report.Machinery, "Machinery", MinMaterialRows, true),
		},
	}
}

func buildPair(title string, left []domain.ResourceRow, leftLabel string,
	right []domain.ResourceRow, rightLabel string, min int, hasUnit bool) TablePair {
	return TablePair{
		Title: title,
		Rows:  EffectiveRows(len(left), len(right), min),
		Left:  Table{Label: leftLabel, HasUnit: hasUnit, Rows: left, Totals: Summarize(left)},
		Right: Table{Label: rightLabel, HasUnit: hasUnit, Rows: right, Totals: Summarize(right)},
	}
}

func joinAMPM(am, pm string) string {
	return fmt.Sprintf("%s | %s", am, pm)
}
