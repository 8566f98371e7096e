package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// FileName derives the deterministic artifact name for a project and date:
// Daily_Report_<Project>_<Date>.<ext>, with every run of non-alphanumeric
// characters in the project name collapsed to a single underscore.
func FileName(project string, date time.Time, f Format) string {
	name := strings.Trim(nonAlnum.ReplaceAllString(project, "_"), "_")
	if name == "" {
		name = "Untitled"
	}
	return fmt.Sprintf("Daily_Report_%s_%s.%s", name, date.Format("2006-01-02"), f.Ext())
}
