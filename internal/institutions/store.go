package institutions

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/rotisserie/eris"
)

// Aggregation is the precomputed institution-count file
// (institutions_fl.json) produced by the build-institutions ETL.
type Aggregation struct {
	MSACounts    map[string]int `json:"msa_counts"`
	CountyCounts map[string]int `json:"county_counts"`
	Total        int            `json:"total"`
	Year         int            `json:"year"`
}

// MSACount is one row of the by-MSA view.
type MSACount struct {
	MSA   string `json:"msa"`
	Count int    `json:"count"`
}

// CountyCount is one row of the by-county view.
type CountyCount struct {
	FIPS  string `json:"fips"`
	Count int    `json:"count"`
}

// FullAggregation is the by=full view of the precomputed data.
type FullAggregation struct {
	MSACounts    []MSACount    `json:"msa_counts"`
	CountyCounts []CountyCount `json:"county_counts"`
	Total        int           `json:"total"`
	Year         int           `json:"year"`
}

// ErrDataUnavailable reports that the precomputed file has not been
// generated yet; callers translate it to 404.
var ErrDataUnavailable = eris.New("institution data not available; run the build-institutions pipeline to generate it")

// Store serves the precomputed aggregation file.
type Store struct {
	path string
}

// NewStore creates a Store over the given institutions_fl.json path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads and parses the precomputed file. A missing file is
// ErrDataUnavailable; a malformed one is a hard error.
func (s *Store) Load() (*Aggregation, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDataUnavailable
		}
		return nil, eris.Wrapf(err, "institutions: read %s", s.path)
	}

	var agg Aggregation
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, eris.Wrap(err, "institutions: parse aggregation file")
	}
	return &agg, nil
}

// ByMSA returns institution counts per MSA, sorted by MSA name for stable
// output.
func (s *Store) ByMSA() ([]MSACount, error) {
	agg, err := s.Load()
	if err != nil {
		return nil, err
	}
	return msaRows(agg.MSACounts), nil
}

// ByCounty returns institution counts per county FIPS, sorted by code.
func (s *Store) ByCounty() ([]CountyCount, error) {
	agg, err := s.Load()
	if err != nil {
		return nil, err
	}
	return countyRows(agg.CountyCounts), nil
}

// Full returns the complete aggregation with both views.
func (s *Store) Full() (*FullAggregation, error) {
	agg, err := s.Load()
	if err != nil {
		return nil, err
	}
	return &FullAggregation{
		MSACounts:    msaRows(agg.MSACounts),
		CountyCounts: countyRows(agg.CountyCounts),
		Total:        agg.Total,
		Year:         agg.Year,
	}, nil
}

func msaRows(counts map[string]int) []MSACount {
	rows := make([]MSACount, 0, len(counts))
	for msa, count := range counts {
		rows = append(rows, MSACount{MSA: msa, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].MSA < rows[j].MSA })
	return rows
}

func countyRows(counts map[string]int) []CountyCount {
	rows := make([]CountyCount, 0, len(counts))
	for fips, count := range counts {
		rows = append(rows, CountyCount{FIPS: fips, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].FIPS < rows[j].FIPS })
	return rows
}
