package wage

import "strings"

// NormalizeAreaCode reduces any area identifier to a canonical 5-digit CBSA
// code: non-digits are stripped, the last five digits are kept, and the
// result is left-padded with zeros. Two identifiers refer to the same area
// iff their normalized forms are equal.
func NormalizeAreaCode(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) > 5 {
		s = s[len(s)-5:]
	}
	for len(s) < 5 {
		s = "0" + s
	}
	return s
}
