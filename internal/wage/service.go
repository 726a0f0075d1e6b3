package wage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/metrolens/metrolens/internal/cache"
)

// Query is one inbound wage lookup.
type Query struct {
	SOC      string // required, NN-NNNN with optional two-decimal suffix
	Location string // free-text place name; empty means state-wide
	AreaCode string // optional 5-digit CBSA code for strict metro matching
}

// Service resolves wage queries: cache lookup, location candidate expansion,
// the sequential fetch loop, then normalization. All collaborators are
// injected so tests can construct an isolated instance.
type Service struct {
	fetcher  *Fetcher
	cache    *cache.Cache[*Record]
	fallback string
}

// NewService creates a wage resolution service over the given upstream API.
// fallback is the state-wide location of last resort ("FL").
func NewService(api API, c *cache.Cache[*Record], fallback string) *Service {
	if c == nil {
		c = cache.New[*Record](cache.DefaultTTL)
	}
	return &Service{
		fetcher:  NewFetcher(api),
		cache:    c,
		fallback: fallback,
	}
}

// CacheStats exposes the underlying cache counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// Resolve answers a wage query. The attempt log is returned alongside both
// success and failure so callers can surface which location variants were
// tried. Failures are the typed errors of errors.go; nothing panics across
// this boundary.
func (s *Service) Resolve(ctx context.Context, q Query) (*Record, []Attempt, error) {
	if q.SOC == "" {
		return nil, nil, &ValidationError{Field: "soc"}
	}

	location := q.Location
	if location == "" {
		location = s.fallback
	}

	key := cacheKey(q.SOC, location, q.AreaCode)
	if rec, ok := s.cache.Get(key); ok {
		zap.L().Debug("wage: cache hit", zap.String("key", key))
		return rec, nil, nil
	}

	start := time.Now()
	candidates := Candidates(location, s.fallback)

	report, attempts, err := s.fetcher.FetchFirstMatch(ctx, candidates, q.SOC, q.AreaCode)
	if err != nil {
		return nil, attempts, err
	}

	rec, err := Normalize(report, q.SOC, q.AreaCode)
	if err != nil {
		if miss, ok := err.(*MissingAreaError); ok && miss.Attempts == nil {
			miss.Attempts = attempts
		}
		return nil, attempts, err
	}

	s.cache.Put(key, rec)
	zap.L().Info("wage: resolved",
		zap.String("soc", q.SOC),
		zap.String("location", location),
		zap.String("area", rec.AreaCode),
		zap.Int("attempts", len(attempts)),
		zap.Duration("duration", time.Since(start)),
	)
	return rec, attempts, nil
}

func cacheKey(soc, location, area string) string {
	return soc + "|" + location + "|" + area
}
