package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReflow_AlwaysReturnsExactRowCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		rows int
	}{
		{"empty text", "", 10},
		{"short text", "poured foundations", 10},
		{"long text", strings.Repeat("concrete pour section alpha ", 40), 10},
		{"single row", "a b c", 1},
		{"zero rows", "anything", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lines := Reflow(tc.text, tc.rows)
			assert.Len(t, lines, tc.rows)
		})
	}
}

func TestReflow_LineWidthBound(t *testing.T) {
	text := strings.Repeat("rebar delivery checked and signed off by the foreman ", 20)
	for _, line := range ReflowWidth(text, 10, 55) {
		assert.LessOrEqual(t, len(line), 55, "line %q exceeds width", line)
	}
}

func TestReflow_OverlongWordKeepsOwnLine(t *testing.T) {
	word := strings.Repeat("x", 80)
	lines := ReflowWidth("before "+word+" after", 10, 20)

	assert.Equal(t, "before", lines[0])
	assert.Equal(t, word, lines[1], "overlong word must stay unbroken")
	assert.Equal(t, "after", lines[2])
}

func TestReflow_SplitsOnExplicitNewlines(t *testing.T) {
	lines := Reflow("first\nsecond\n\nfourth", 10)

	assert.Equal(t, "first", lines[0])
	assert.Equal(t, "second", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "fourth", lines[3])
}

func TestReflow_TruncatesSilently(t *testing.T) {
	lines := Reflow("one\ntwo\nthree\nfour", 2)

	assert.Equal(t, []string{"one", "two"}, lines)
}

// Three short sentences without newlines fill the first lines and leave the
// rest empty.
func TestReflow_ShortTextPadsWithEmptyLines(t *testing.T) {
	text := "Formwork completed on level 2. Concrete pour scheduled. Inspection passed."
	lines := Reflow(text, 10)

	assert.Len(t, lines, 10)
	assert.NotEmpty(t, lines[0])
	empties := 0
	for _, line := range lines {
		if line == "" {
			empties++
		}
	}
	assert.GreaterOrEqual(t, empties, 7, "most trailing lines should be empty")
	for i := 3; i < 10; i++ {
		assert.Empty(t, lines[i])
	}
}

func TestReflow_IdenticalInputIdenticalOutput(t *testing.T) {
	text := "site cleared\nscaffolding erected on the north elevation today"
	assert.Equal(t, Reflow(text, 10), Reflow(text, 10))
}
