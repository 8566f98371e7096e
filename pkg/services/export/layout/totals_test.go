package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/de-tools/site-report/pkg/models/domain"
)

func TestSummarize_EmptyRowsAreAllZero(t *testing.T) {
	totals := Summarize(nil)

	assert.Zero(t, totals.Prev)
	assert.Zero(t, totals.Today)
	assert.Zero(t, totals.Accumulated)
}

func TestSummarize_TotalIdentityHolds(t *testing.T) {
	// When every row satisfies accumulated == prev + today, so do the sums.
	rows := []domain.ResourceRow{
		{Description: "Foreman", Prev: 10, Today: 2, Accumulated: 12},
		{Description: "Surveyor", Prev: 3, Today: 0, Accumulated: 3},
		{Description: "Welder", Prev: 0, Today: 5, Accumulated: 5},
	}
	totals := Summarize(rows)

	assert.Equal(t, 13.0, totals.Prev)
	assert.Equal(t, 7.0, totals.Today)
	assert.Equal(t, totals.Prev+totals.Today, totals.Accumulated)
}

func TestSummarize_OrderIndependent(t *testing.T) {
	rows := []domain.ResourceRow{
		{Prev: 1, Today: 2, Accumulated: 3},
		{Prev: 4, Today: 5, Accumulated: 9},
		{Prev: 7, Today: 8, Accumulated: 15},
	}
	shuffled := make([]domain.ResourceRow, len(rows))
	copy(shuffled, rows)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assert.Equal(t, Summarize(rows), Summarize(shuffled))
}

func TestEffectiveRows(t *testing.T) {
	tests := []struct {
		name              string
		left, right, min  int
		expected          int
	}{
		{"both empty use minimum", 0, 0, 6, 6},
		{"longer side wins", 8, 3, 6, 8},
		{"minimum wins over both", 2, 3, 6, 6},
		{"material tables allow one row", 0, 0, 1, 1},
		{"twelve materials", 12, 4, 1, 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EffectiveRows(tc.left, tc.right, tc.min))
		})
	}
}

func TestEffectiveRows_Symmetric(t *testing.T) {
	for a := 0; a < 10; a++ {
		for b := 0; b < 10; b++ {
			assert.Equal(t, EffectiveRows(a, b, MinTeamRows), EffectiveRows(b, a, MinTeamRows))
			assert.GreaterOrEqual(t, EffectiveRows(a, b, MinTeamRows), MinTeamRows)
		}
	}
}
