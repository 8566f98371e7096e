package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/site-report/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// Report is the wire form of a daily report as submitted by the web client.
type Report struct {
	ProjectName   string `json:"projectName"`
	ReportDate    string `json:"reportDate"` // YYYY-MM-DD, may be empty
	WeatherAM     string `json:"weatherAM"`
	WeatherPM     string `json:"weatherPM"`
	TemperatureAM string `json:"temperatureAM"`
	TemperaturePM string `json:"temperaturePM"`

	ActivityToday string `json:"activityToday"`
	PlanNextDay   string `json:"planNextDay"`

	ManagementTeam []ResourceRow `json:"managementTeam"`
	WorkingTeam    []ResourceRow `json:"workingTeam"`
	Materials      []ResourceRow `json:"materials"`
	Machinery      []ResourceRow `json:"machinery"`
}

type ResourceRow struct {
	Description string     `json:"description"`
	Unit        string     `json:"unit,omitempty"`
	Prev        FlexNumber `json:"prev"`
	Today       FlexNumber `json:"today"`
	Accumulated FlexNumber `json:"accumulated"`
}

// FlexNumber decodes JSON numbers, numeric strings, null and garbage alike.
// Anything that is not a finite number becomes zero, so form input like ""
// or "abc" never poisons a table total with NaN.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*n = 0
			return nil
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = FlexNumber(v)
	return nil
}

// ToDomain maps the wire report onto the domain model. An unparseable or
// missing date maps to the zero time and renders as an empty string.
func (r Report) ToDomain() domain.ReportData {
	date, _ := time.Parse(dateLayout, r.ReportDate)
	return domain.ReportData{
		ProjectName:    r.ProjectName,
		ReportDate:     date,
		WeatherAM:      r.WeatherAM,
		WeatherPM:      r.WeatherPM,
		TemperatureAM:  r.TemperatureAM,
		TemperaturePM:  r.TemperaturePM,
		ActivityToday:  r.ActivityToday,
		PlanNextDay:    r.PlanNextDay,
		ManagementTeam: mapRows(r.ManagementTeam),
		WorkingTeam:    mapRows(r.WorkingTeam),
		Materials:      mapRows(r.Materials),
		Machinery:      mapRows(r.Machinery),
	}
}

func mapRows(rows []ResourceRow) []domain.ResourceRow {
	if len(rows) == 0 {
		return nil
	}
	out := make([]domain.ResourceRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ResourceRow{
			Description: row.Description,
			Unit:        row.Unit,
			Prev:        float64(row.Prev),
			Today:       float64(row.Today),
			Accumulated: float64(row.Accumulated),
		})
	}
	return out
}
