// Package institutions aggregates higher-education institution data for
// Florida counties and metro areas, and serves the precomputed counts the
// map front-end consumes.
package institutions

import (
	"regexp"
	"strings"
)

// fipsToCounty maps Florida county FIPS codes to names, without the
// " County" suffix.
var fipsToCounty = map[string]string{
	"12001": "Alachua",
	"12003": "Baker",
	"12005": "Bay",
	"12007": "Bradford",
	"12009": "Brevard",
	"12011": "Broward",
	"12013": "Calhoun",
	"12015": "Charlotte",
	"12017": "Citrus",
	"12019": "Clay",
	"12021": "Collier",
	"12023": "Columbia",
	"12027": "DeSoto",
	"12029": "Dixie",
	"12031": "Duval",
	"12033": "Escambia",
	"12035": "Flagler",
	"12037": "Franklin",
	"12039": "Gadsden",
	"12041": "Gilchrist",
	"12043": "Glades",
	"12045": "Gulf",
	"12047": "Hamilton",
	"12049": "Hardee",
	"12051": "Hendry",
	"12053": "Hernando",
	"12055": "Highlands",
	"12057": "Hillsborough",
	"12059": "Holmes",
	"12061": "Indian River",
	"12063": "Jackson",
	"12065": "Jefferson",
	"12067": "Lafayette",
	"12069": "Lake",
	"12071": "Lee",
	"12073": "Leon",
	"12075": "Levy",
	"12077": "Liberty",
	"12079": "Madison",
	"12081": "Manatee",
	"12083": "Marion",
	"12085": "Martin",
	"12086": "Miami-Dade",
	"12087": "Monroe",
	"12089": "Nassau",
	"12091": "Okaloosa",
	"12093": "Okeechobee",
	"12095": "Orange",
	"12097": "Osceola",
	"12099": "Palm Beach",
	"12101": "Pasco",
	"12103": "Pinellas",
	"12105": "Polk",
	"12107": "Putnam",
	"12109": "St. Johns",
	"12111": "St. Lucie",
	"12113": "Santa Rosa",
	"12115": "Sarasota",
	"12117": "Seminole",
	"12119": "Sumter",
	"12121": "Suwannee",
	"12123": "Taylor",
	"12125": "Union",
	"12127": "Volusia",
	"12129": "Wakulla",
	"12131": "Walton",
	"12133": "Washington",
}

var countyToFIPS = func() map[string]string {
	m := make(map[string]string, len(fipsToCounty))
	for fips, name := range fipsToCounty {
		m[name] = fips
	}
	return m
}()

var countySuffixRe = regexp.MustCompile(`(?i)\s+County$`)

// NormalizeCountyName reduces a raw county name to the crosswalk's canonical
// form: " County" suffix removed, "Saint " collapsed to "St. ", title case
// with hyphen and "Mc" handling ("BROWARD" → "Broward", "miami-dade" →
// "Miami-Dade").
func NormalizeCountyName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	name = countySuffixRe.ReplaceAllString(name, "")

	if strings.HasPrefix(strings.ToLower(name), "saint ") {
		name = "St. " + name[6:]
	}

	parts := strings.Fields(name)
	for i, part := range parts {
		parts[i] = titleCaseWord(part)
	}
	return strings.Join(parts, " ")
}

func titleCaseWord(word string) string {
	if strings.Contains(word, "-") {
		sub := strings.Split(word, "-")
		for i, s := range sub {
			sub[i] = capitalize(s)
		}
		return strings.Join(sub, "-")
	}
	if len(word) > 2 && strings.HasPrefix(strings.ToLower(word), "mc") {
		return "Mc" + capitalize(word[2:])
	}
	return capitalize(word)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// CountyNameToFIPS resolves a (raw) county name to its 5-digit FIPS code.
func CountyNameToFIPS(name string) (string, bool) {
	fips, ok := countyToFIPS[NormalizeCountyName(name)]
	return fips, ok
}

// CountyFIPSToName resolves a FIPS code to the canonical county name.
func CountyFIPSToName(fips string) (string, bool) {
	name, ok := fipsToCounty[fips]
	return name, ok
}
