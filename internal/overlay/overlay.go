// Package overlay combines metro population with the educational programs
// that feed an occupation: for an MSA and SOC pair it reports the
// institutions inside the metro boundary that train for the occupation and
// a density figure per 100k residents.
package overlay

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/metrolens/metrolens/internal/cache"
	"github.com/metrolens/metrolens/internal/census"
	"github.com/metrolens/metrolens/internal/institutions"
	"github.com/metrolens/metrolens/internal/msa"
)

// Competitor is one institution in the overlay response.
type Competitor struct {
	Name string   `json:"name"`
	City string   `json:"city"`
	Lat  float64  `json:"lat"`
	Lon  float64  `json:"lon"`
	CIPs []string `json:"cips"`
	URL  string   `json:"url,omitempty"`
}

// MSARef identifies the metro the overlay was computed for.
type MSARef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Sources records the data vintages behind a result.
type Sources struct {
	Census    string `json:"census"`
	Directory string `json:"directory"`
}

// Result is the overlay payload for one MSA and SOC pair.
type Result struct {
	MSA             MSARef       `json:"msa"`
	SOC             string       `json:"soc"`
	Population      *int         `json:"population"`
	CompetitorCount int          `json:"competitor_count"`
	Competitors     []Competitor `json:"competitors"`
	DensityPer100k  *float64     `json:"density_per_100k"`
	Sources         Sources      `json:"sources"`
	Error           string       `json:"error,omitempty"`
}

// directoryVintage labels the institution directory snapshot.
const directoryVintage = "2024"

// PopulationFetcher is the slice of the census client the overlay needs.
type PopulationFetcher interface {
	FetchPopulation(ctx context.Context, cbsa string) (int, bool, error)
}

// Service computes overlays. Results are cached for a day keyed by
// "msa:soc"; the inputs (directory, boundaries, ACS vintage) all change
// slower than that.
type Service struct {
	population PopulationFetcher
	boundaries *msa.Index
	cache      *cache.Cache[*Result]
}

// NewService wires an overlay service. A nil cache gets the default TTL.
func NewService(population PopulationFetcher, boundaries *msa.Index, c *cache.Cache[*Result]) *Service {
	if c == nil {
		c = cache.New[*Result](cache.DefaultTTL)
	}
	return &Service{population: population, boundaries: boundaries, cache: c}
}

// CacheStats exposes the overlay cache counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// Compute builds the overlay for an MSA and SOC pair. A SOC without a CIP
// mapping is not an error: the result carries an explanatory Error field
// and empty metrics, mirroring how clients render unsupported occupations.
func (s *Service) Compute(ctx context.Context, msaCode, soc string) (*Result, error) {
	key := msaCode + ":" + soc
	if cached, ok := s.cache.Get(key); ok {
		zap.L().Debug("overlay: cache hit", zap.String("key", key))
		return cached, nil
	}

	mapping, ok := institutions.MappingForSOC(soc)
	if !ok {
		return &Result{
			MSA:         MSARef{Code: msaCode, Name: msa.UnknownName},
			SOC:         soc,
			Competitors: []Competitor{},
			Sources:     Sources{Census: "N/A", Directory: "N/A"},
			Error:       fmt.Sprintf("no CIP mapping available for SOC %s", soc),
		}, nil
	}

	result := &Result{
		MSA:     MSARef{Code: msaCode, Name: s.boundaries.Name(msaCode)},
		SOC:     soc,
		Sources: Sources{Census: census.Vintage, Directory: directoryVintage},
	}

	population, found, err := s.population.FetchPopulation(ctx, msaCode)
	if err != nil {
		return nil, eris.Wrap(err, "overlay: fetch population")
	}
	if found {
		result.Population = &population
	}

	matched := institutions.FindByCIP(mapping.CIPs)
	result.Competitors = make([]Competitor, 0, len(matched))
	for _, inst := range matched {
		inside, err := s.boundaries.Contains(msaCode, inst.Lon, inst.Lat)
		if err != nil {
			return nil, eris.Wrap(err, "overlay: boundary test")
		}
		if !inside {
			continue
		}
		result.Competitors = append(result.Competitors, Competitor{
			Name: inst.Name,
			City: inst.City,
			Lat:  inst.Lat,
			Lon:  inst.Lon,
			CIPs: mapping.CIPs,
			URL:  inst.Website,
		})
	}
	result.CompetitorCount = len(result.Competitors)

	if result.Population != nil && *result.Population > 0 {
		density := float64(result.CompetitorCount) / float64(*result.Population) * 100000
		result.DensityPer100k = &density
	}

	s.cache.Put(key, result)
	zap.L().Info("overlay: computed",
		zap.String("msa", msaCode),
		zap.String("soc", soc),
		zap.Int("competitors", result.CompetitorCount),
	)
	return result, nil
}
