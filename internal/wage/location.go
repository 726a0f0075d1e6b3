package wage

import (
	"regexp"
	"strings"
)

var bareStRe = regexp.MustCompile(`\bSt\s`)

// Candidates expands a free-text place name into the ordered list of
// location strings to try against the upstream wage API. The upstream is
// picky about punctuation and metro naming ("Port St. Lucie" vs
// "Port Saint Lucie" vs "Lucie, FL"), so we try progressively looser
// variants and always finish with the state-wide fallback.
//
// The returned slice is deduplicated, starts with the raw string, and its
// last element is always fallback.
func Candidates(raw, fallback string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == fallback {
		return []string{fallback}
	}

	variants := []string{
		raw,
		strings.ReplaceAll(raw, ".", ""),
		strings.ReplaceAll(raw, "St.", "Saint"),
		bareStRe.ReplaceAllString(raw, "Saint "),
	}
	if short := shortForm(raw, fallback); short != "" {
		variants = append(variants, short)
	}
	if tail := tailForm(raw, fallback); tail != "" {
		variants = append(variants, tail)
	}

	seen := make(map[string]bool, len(variants)+1)
	out := make([]string, 0, len(variants)+1)
	for _, v := range variants {
		v = strings.TrimSpace(v)
		if v == "" || v == fallback || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}

	return append(out, fallback)
}

// shortForm keeps the last two words of the part before the first comma and
// re-attaches the state: "Miami-Fort Lauderdale-West Palm Beach, FL" →
// "Palm Beach, FL".
func shortForm(raw, fallback string) string {
	head, _, _ := strings.Cut(raw, ",")
	fields := strings.Fields(head)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[len(fields)-2:], " ") + ", " + fallback
}

// tailForm keeps the last two whitespace-separated tokens of the whole
// string: "Port St. Lucie, FL" → "Lucie, FL". Metro names that embed "St."
// often only match upstream under this truncated form.
func tailForm(raw, fallback string) string {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return ""
	}
	tail := strings.Join(fields[len(fields)-2:], " ")
	if !strings.HasSuffix(tail, ", "+fallback) {
		tail += ", " + fallback
	}
	return tail
}
