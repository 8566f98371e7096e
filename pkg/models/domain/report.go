package domain

import "time"

// ReportData is one fully populated daily site report. It is treated as
// immutable for the duration of an export call; renderers only read it.
type ReportData struct {
	ProjectName   string
	ReportDate    time.Time
	WeatherAM     string
	WeatherPM     string
	TemperatureAM string
	TemperaturePM string

	ActivityToday string
	PlanNextDay   string

	ManagementTeam []ResourceRow
	WorkingTeam    []ResourceRow
	Materials      []ResourceRow
	Machinery      []ResourceRow
}

// ResourceRow is one line item of a resource table. Accumulated is trusted
// as supplied; the engine recomputes table totals, never per-row values.
type ResourceRow struct {
	Description string
	Unit        string // materials and machinery only
	Prev        float64
	Today       float64
	Accumulated float64
}

// RenderedDocument is a finished export artifact.
type RenderedDocument struct {
	FileName string
	MIMEType string
	Content  []byte
}
