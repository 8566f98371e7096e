package pdf

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/site-report/pkg/models/domain"
	"github.com/de-tools/site-report/pkg/services/assets"
	"github.com/de-tools/site-report/pkg/services/export"
)

// stubStore has no template and no logos; the paginated renderer must not
// depend on either being available.
type stubStore struct{}

func (stubStore) Template(context.Context) ([]byte, error) {
	return nil, assets.ErrNotFound
}

func (stubStore) Logo(context.Context, string) ([]byte, error) {
	return nil, assets.ErrNotFound
}

func testReport() domain.ReportData {
	return domain.ReportData{
		ProjectName:   "Harbor Bridge",
		ReportDate:    time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		WeatherAM:     "Cloudy",
		WeatherPM:     "Rain",
		TemperatureAM: "12C",
		TemperaturePM: "15C",
		ActivityToday: "Pile driving on pier 4 continued through the morning shift",
		PlanNextDay:   "Continue pile driving, start formwork on pier 5",
		WorkingTeam: []domain.ResourceRow{
			{Description: "Steel fixer", Prev: 4, Today: 2, Accumulated: 6},
			{Description: "Carpenter", Prev: 3, Today: 1, Accumulated: 4},
		},
		Materials: []domain.ResourceRow{
			{Description: "Cement", Unit: "bag", Prev: 100, Today: 20, Accumulated: 120},
		},
	}
}

func TestRenderer_ProducesPDF(t *testing.T) {
	r := NewRenderer(stubStore{})

	doc, err := r.Render(context.Background(), testReport())
	require.NoError(t, err)

	assert.Equal(t, "Daily_Report_Harbor_Bridge_2024-03-14.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.MIMEType)
	assert.True(t, strings.HasPrefix(string(doc.Content), "%PDF-"), "payload must be a PDF")
}

// Missing logos degrade the header; they never fail the export. The same
// stub also proves the paginated format is independent of the spreadsheet
// template.
func TestRenderer_SucceedsWithoutAssets(t *testing.T) {
	r := NewRenderer(stubStore{})

	doc, err := r.Render(context.Background(), testReport())
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Content)
}

func TestRenderer_EmptyReport(t *testing.T) {
	r := NewRenderer(stubStore{})

	doc, err := r.Render(context.Background(), domain.ReportData{})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Content)
}

// A large materials collection forces the second table pair past the first
// page; pagination happens at block granularity, never mid-row.
func TestRenderer_ManyRowsPaginate(t *testing.T) {
	report := testReport()
	for i := 0; i < 60; i++ {
		report.Materials = append(report.Materials,
			domain.ResourceRow{Description: "Aggregate", Unit: "t", Prev: 1, Today: 1, Accumulated: 2})
	}

	r := NewRenderer(stubStore{})
	doc, err := r.Render(context.Background(), report)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Content)
}

func TestRenderer_Format(t *testing.T) {
	assert.Equal(t, export.FormatPDF, NewRenderer(stubStore{}).Format())
}
