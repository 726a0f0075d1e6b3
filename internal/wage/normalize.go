package wage

import (
	"math"
	"strconv"
	"strings"
)

const (
	// hoursPerYear converts an hourly rate to an annualized figure
	// (40 hours × 52 weeks).
	hoursPerYear = 2080

	// fallbackYear is assumed when the chosen row carries no parseable year.
	fallbackYear = 2023

	// Medians outside this band get the anomaly flag: almost always a row
	// where the upstream mixed up hourly and annual figures.
	anomalyFloor   = 20000
	anomalyCeiling = 300000

	// Source tags every record produced from the live wage API.
	Source = "CareerOneStop"
)

// Record is the canonical wage record served to clients. It is assembled
// once per resolution and never mutated afterwards.
type Record struct {
	AreaCode     string   `json:"areaCode"`
	AreaName     string   `json:"areaName"`
	SOC          string   `json:"soc"`
	SOCTitle     string   `json:"socTitle"`
	Employment   *int     `json:"employment"`
	MeanAnnual   *float64 `json:"meanAnnual"`
	MedianAnnual *float64 `json:"medianAnnual"`
	P10          *float64 `json:"p10"`
	P25          *float64 `json:"p25"`
	P75          *float64 `json:"p75"`
	P90          *float64 `json:"p90"`
	Year         int      `json:"year"`
	Source       string   `json:"source"`
	Anomalous    bool     `json:"anomalous"`
}

type scope int

const (
	scopeMetro scope = iota
	scopeState
	scopeNational
)

func (s scope) label() string {
	switch s {
	case scopeMetro:
		return "Metro"
	case scopeState:
		return "State"
	default:
		return "National"
	}
}

// Normalize selects the correct wage row from a raw upstream report and
// produces a canonical Record.
//
// Selection order: scope (strict metro match when targetArea is set, else
// state then national), rate type (Annual preferred over Hourly, hourly
// figures annualized ×2080), then the most recent year. An exact year tie
// keeps the first row in input order.
//
// With targetArea set and no matching metro row the result is a
// *MissingAreaError; state or national rows are never substituted.
func Normalize(report *Report, soc, targetArea string) (*Record, error) {
	if report == nil {
		return nil, ErrNoWageData
	}
	wages := report.OccupationDetail.Wages

	pool, sc, err := selectScope(wages, targetArea)
	if err != nil {
		return nil, err
	}

	pool, convertHourly := preferRate(pool)
	row := newestRow(pool)

	median := parseWage(row.Median)
	mean := parseWage(row.Mean)
	p10 := parseWage(row.Pct10)
	p25 := parseWage(row.Pct25)
	p75 := parseWage(row.Pct75)
	p90 := parseWage(row.Pct90)

	if convertHourly {
		for _, v := range []*float64{median, mean, p10, p25, p75, p90} {
			if v != nil {
				*v = math.Round(*v * hoursPerYear)
			}
		}
	}

	if mean == nil && median != nil {
		// The wage endpoint frequently omits the mean; fall back to the
		// median rather than dropping the field.
		m := *median
		mean = &m
	}

	rec := &Record{
		AreaCode:     areaCodeFor(row, sc, targetArea),
		AreaName:     areaNameFor(row, sc),
		SOC:          soc,
		SOCTitle:     occupationTitle(report, soc),
		Employment:   nil, // the wage endpoint does not report employment counts
		MeanAnnual:   mean,
		MedianAnnual: median,
		P10:          p10,
		P25:          p25,
		P75:          p75,
		P90:          p90,
		Year:         rowYear(row),
		Source:       Source,
	}
	if median != nil && (*median < anomalyFloor || *median > anomalyCeiling) {
		rec.Anomalous = true
	}
	return rec, nil
}

// selectScope picks the candidate rows per the strict-matching policy.
func selectScope(wages Wages, targetArea string) ([]AreaWage, scope, error) {
	if targetArea != "" {
		target := NormalizeAreaCode(targetArea)
		var matched []AreaWage
		var available []string
		seen := make(map[string]bool)
		for _, row := range wages.BLSAreaWagesList {
			code := NormalizeAreaCode(row.Identifier())
			if code == target {
				matched = append(matched, row)
			}
			if !seen[code] {
				seen[code] = true
				available = append(available, code)
			}
		}
		if len(matched) == 0 {
			return nil, scopeMetro, &MissingAreaError{AreaCode: target, Available: available}
		}
		return matched, scopeMetro, nil
	}

	if len(wages.StateWagesList) > 0 {
		return wages.StateWagesList, scopeState, nil
	}
	if len(wages.NationalWagesList) > 0 {
		return wages.NationalWagesList, scopeNational, nil
	}
	return nil, scopeNational, ErrNoWageData
}

// preferRate narrows the pool to Annual rows when present, else Hourly rows
// (reporting that conversion is needed), else leaves the pool untouched.
func preferRate(pool []AreaWage) ([]AreaWage, bool) {
	var annual, hourly []AreaWage
	for _, row := range pool {
		switch row.RateType {
		case RateAnnual:
			annual = append(annual, row)
		case RateHourly:
			hourly = append(hourly, row)
		}
	}
	if len(annual) > 0 {
		return annual, false
	}
	if len(hourly) > 0 {
		return hourly, true
	}
	return pool, false
}

// newestRow returns the row with the highest parsed year; a missing or
// unparseable year counts as 0, and exact ties keep the earlier row.
func newestRow(pool []AreaWage) AreaWage {
	best := pool[0]
	bestYear := parseYear(best.Year)
	for _, row := range pool[1:] {
		if y := parseYear(row.Year); y > bestYear {
			best = row
			bestYear = y
		}
	}
	return best
}

func parseYear(s string) int {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return y
}

func rowYear(row AreaWage) int {
	if y := parseYear(row.Year); y > 0 {
		return y
	}
	return fallbackYear
}

// parseWage parses one wage statistic, stripping thousands separators.
// Suppressed, empty, or zero values come back nil.
func parseWage(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func areaCodeFor(row AreaWage, sc scope, targetArea string) string {
	switch sc {
	case scopeMetro:
		if id := row.Identifier(); id != "" {
			return NormalizeAreaCode(id)
		}
		return NormalizeAreaCode(targetArea)
	case scopeState:
		if code := explicitCode(row); code != "" {
			return code
		}
		return "FL"
	default:
		if code := explicitCode(row); code != "" {
			return code
		}
		return "US"
	}
}

// explicitCode returns a row's code fields only; state and national rows
// often carry just a display name, which is not a usable area code.
func explicitCode(row AreaWage) string {
	if row.Area != "" {
		return row.Area
	}
	return row.AreaCode
}

func areaNameFor(row AreaWage, sc scope) string {
	if row.AreaName != "" {
		return row.AreaName
	}
	return sc.label() + " Average"
}

func occupationTitle(report *Report, soc string) string {
	if t := report.OccupationDetail.OnetTitle; t != "" {
		return t
	}
	return soc
}
