package layout

import "strings"

// DefaultLineWidth is the character budget of one panel line. All output
// formats reflow with the same width so the two activity panels stay
// visually aligned across pdf, xlsx and docx.
const DefaultLineWidth = 55

// Reflow wraps text into exactly rows lines of at most DefaultLineWidth
// characters each.
func Reflow(text string, rows int) []string {
	return ReflowWidth(text, rows, DefaultLineWidth)
}

// ReflowWidth splits text on explicit newlines, then greedily packs words
// into lines of at most maxLen characters. The result always has exactly
// rows entries: input beyond rows lines is dropped, missing lines are empty
// strings. A single word longer than maxLen keeps its own line unbroken.
func ReflowWidth(text string, rows, maxLen int) []string {
	out := make([]string, rows)
	if rows <= 0 {
		return out
	}

	n := 0
	emit := func(line string) bool {
		if n >= rows {
			return false
		}
		out[n] = line
		n++
		return n < rows
	}

	for _, segment := range strings.Split(text, "\n") {
		if n >= rows {
			break
		}
		words := strings.Fields(segment)
		if len(words) == 0 {
			emit("")
			continue
		}
		line := words[0]
		full := false
		for _, word := range words[1:] {
			if len(line)+1+len(word) <= maxLen {
				line += " " + word
				continue
			}
			if !emit(line) {
				full = true
				break
			}
			line = word
		}
		if !full {
			emit(line)
		}
	}
	return out
}
