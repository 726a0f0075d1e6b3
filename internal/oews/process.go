// Package oews turns the BLS OEWS MSA workbook into the static wage file
// the map front-end reads. The workbook is the May research estimate
// release; rows are filtered to Florida metros and the occupations the
// overlay supports.
package oews

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/metrolens/metrolens/internal/wage"
)

// TargetSOCs are the occupations kept in the processed output.
var TargetSOCs = []string{
	"29-1141", // Registered Nurses
	"29-2032", // Diagnostic Medical Sonographers
	"31-9092", // Medical Assistants
	"29-2012", // Medical and Clinical Laboratory Technicians
	"29-2055", // Surgical Technologists
	"47-2111", // Electricians
	"49-9021", // HVAC Mechanics
	"51-4121", // Welders
	"31-9096", // Veterinary Assistants
}

// FloridaMSACodes are the CBSA codes of Florida metro areas.
var FloridaMSACodes = []string{
	"15980", "18880", "19660", "23540", "26140", "27260", "29460",
	"33100", "34940", "35840", "36100", "36740", "37340", "37860",
	"38940", "39460", "42680", "42700", "45220", "45300", "48680",
}

// Record is one MSA and SOC row of the processed output file.
type Record struct {
	MSACode      string   `json:"msa_code"`
	MSAName      string   `json:"msa_name"`
	SOC          string   `json:"soc"`
	Employment   *float64 `json:"employment"`
	MedianAnnual *float64 `json:"median_annual"`
	MeanAnnual   *float64 `json:"mean_annual"`
	P10Annual    *float64 `json:"p10_annual"`
	P25Annual    *float64 `json:"p25_annual"`
	P75Annual    *float64 `json:"p75_annual"`
	P90Annual    *float64 `json:"p90_annual"`
	Year         int      `json:"year"`
}

var nonSOCRe = regexp.MustCompile(`[^0-9-]`)

// NormalizeSOC reduces a raw occupation code to the XX-XXXX form, or ""
// when the code has fewer than six digits.
func NormalizeSOC(raw string) string {
	cleaned := nonSOCRe.ReplaceAllString(raw, "")
	digits := strings.ReplaceAll(cleaned, "-", "")
	if len(digits) < 6 {
		return ""
	}
	return digits[:2] + "-" + digits[2:6]
}

// suppressed markers used in OEWS workbooks for withheld estimates.
var suppressedValues = map[string]bool{
	"*": true, "**": true, "#": true, "NA": true, "N/A": true,
}

// parseNumeric reads a workbook cell as a float, treating suppression
// markers and unparseable text as absent.
func parseNumeric(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || suppressedValues[s] {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// columnIndex maps workbook columns by probing candidate header names
// case-insensitively. Column naming drifts between OEWS releases.
type columnIndex struct {
	byName map[string]int
}

func newColumnIndex(header []string) columnIndex {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return columnIndex{byName: byName}
}

func (c columnIndex) get(row []string, candidates ...string) string {
	for _, name := range candidates {
		if i, ok := c.byName[strings.ToLower(name)]; ok && i < len(row) {
			if v := strings.TrimSpace(row[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

// Process filters workbook rows (header first) to Florida MSA rows for the
// target occupations, deduplicating each MSA and SOC pair by data
// completeness.
func Process(rows [][]string, year int) ([]Record, error) {
	if len(rows) == 0 {
		return nil, eris.New("oews: workbook has no rows")
	}
	cols := newColumnIndex(rows[0])

	targetSOC := make(map[string]bool, len(TargetSOCs))
	for _, s := range TargetSOCs {
		targetSOC[s] = true
	}
	floridaMSA := make(map[string]bool, len(FloridaMSACodes))
	for _, c := range FloridaMSACodes {
		floridaMSA[c] = true
	}

	best := make(map[string]Record)
	var order []string
	suppressedCount := 0

	for _, row := range rows[1:] {
		area := cols.get(row, "area_code", "area", "AREA", "AREA_CODE")
		msaCode := wage.NormalizeAreaCode(area)
		if !floridaMSA[msaCode] {
			continue
		}

		soc := NormalizeSOC(cols.get(row, "occ_code", "OCC_CODE", "OCC", "SOC_CODE"))
		if !targetSOC[soc] {
			continue
		}

		name := cols.get(row, "area_title", "AREA_TITLE", "area_name", "AREA_NAME")
		if name == "" {
			name = "MSA " + msaCode
		}

		rec := Record{
			MSACode:      msaCode,
			MSAName:      name,
			SOC:          soc,
			Employment:   parseNumeric(cols.get(row, "tot_emp", "TOT_EMP", "employment")),
			MeanAnnual:   parseNumeric(cols.get(row, "a_mean", "A_MEAN", "mean_annual")),
			MedianAnnual: parseNumeric(cols.get(row, "a_median", "A_MEDIAN", "median_annual")),
			P10Annual:    parseNumeric(cols.get(row, "a_pct10", "A_PCT10", "p10_annual")),
			P25Annual:    parseNumeric(cols.get(row, "a_pct25", "A_PCT25", "p25_annual")),
			P75Annual:    parseNumeric(cols.get(row, "a_pct75", "A_PCT75", "p75_annual")),
			P90Annual:    parseNumeric(cols.get(row, "a_pct90", "A_PCT90", "p90_annual")),
			Year:         year,
		}

		if rec.Employment == nil && rec.MedianAnnual == nil && rec.MeanAnnual == nil {
			suppressedCount++
		}

		key := msaCode + "|" + soc
		existing, ok := best[key]
		if !ok {
			best[key] = rec
			order = append(order, key)
			continue
		}
		if better(rec, existing) {
			best[key] = rec
		}
	}

	out := make([]Record, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}

	zap.L().Info("oews: processed workbook",
		zap.Int("records", len(out)),
		zap.Int("suppressed", suppressedCount),
	)
	return out, nil
}

// better prefers a record with employment data, then the one carrying more
// wage figures.
func better(candidate, existing Record) bool {
	if (candidate.Employment != nil) != (existing.Employment != nil) {
		return candidate.Employment != nil
	}
	return wageFieldCount(candidate) > wageFieldCount(existing)
}

func wageFieldCount(r Record) int {
	n := 0
	for _, v := range []*float64{r.MeanAnnual, r.MedianAnnual, r.P10Annual, r.P25Annual, r.P75Annual, r.P90Annual} {
		if v != nil {
			n++
		}
	}
	return n
}

// MissingMSAs lists the Florida metros absent from the processed records.
func MissingMSAs(recs []Record) []string {
	found := make(map[string]bool, len(recs))
	for _, r := range recs {
		found[r.MSACode] = true
	}
	var missing []string
	for _, code := range FloridaMSACodes {
		if !found[code] {
			missing = append(missing, code)
		}
	}
	return missing
}

// Anomalies returns the records whose median annual wage falls outside the
// plausible band.
func Anomalies(recs []Record) []Record {
	var out []Record
	for _, r := range recs {
		if r.MedianAnnual == nil {
			continue
		}
		if *r.MedianAnnual < 20000 || *r.MedianAnnual > 300000 {
			out = append(out, r)
		}
	}
	return out
}
