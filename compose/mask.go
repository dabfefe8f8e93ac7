package compose

import "strings"

// MaskTaxID hides all but the last four characters of a tax identifier
// behind a fixed "**-" prefix: "123456789" becomes "**-**6789". The run of
// stars is len-7 long and never negative.
func MaskTaxID(id string) string {
	r := []rune(id)
	n := len(r)
	keep := min(n, 4)
	stars := max(n-4-3, 0)
	return "**-" + strings.Repeat("*", stars) + string(r[n-keep:])
}
