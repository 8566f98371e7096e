package layout

import "strconv"

// FormatQuantity prints a resource quantity the way the forms capture them:
// whole counts without a decimal tail, fractional ones with two digits.
func FormatQuantity(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
