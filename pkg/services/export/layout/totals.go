package layout

import "github.com/de-tools/site-report/pkg/models/domain"

// Per-table body row minimums, mirroring the pre-sized areas of the
// spreadsheet template. Kept as named configuration rather than literals
// inside the renderers.
const (
	MinTeamRows     = 6
	MinMaterialRows = 1
)

// Totals holds the column sums of one resource table.
type Totals struct {
	Prev        float64
	Today       float64
	Accumulated float64
}

// Summarize computes the column sums across rows. Inputs are already
// NaN-free (the API layer coerces non-numeric quantities to zero), so a
// plain sum is order-independent and total-consistent.
func Summarize(rows []domain.ResourceRow) Totals {
	var t Totals
	for _, row := range rows {
		t.Prev += row.Prev
		t.Today += row.Today
		t.Accumulated += row.Accumulated
	}
	return t
}

// EffectiveRows is the number of body rows both tables of a side-by-side
// pair must render: the longer of the two, but never fewer than min. The
// shorter table pads with blank rows so the pair stays height-aligned.
func EffectiveRows(left, right, min int) int {
	rows := left
	if right > rows {
		rows = right
	}
	if min > rows {
		rows = min
	}
	return rows
}
