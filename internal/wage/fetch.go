package wage

import (
	"context"
	"strconv"

	"go.uber.org/zap"
)

// StatusError is the attempt-log sentinel for a transport failure: the
// request never produced an HTTP status to record.
const StatusError = "ERROR"

// Attempt records the outcome of one upstream request in the candidate loop.
type Attempt struct {
	Location string `json:"location"`
	Status   string `json:"status"`
}

// API is the upstream surface the fetcher needs. *Client satisfies it; tests
// substitute a fake.
type API interface {
	FetchWage(ctx context.Context, soc, location string) (*Report, int, error)
}

// Fetcher walks location candidates in order until one produces a
// substantively matching response.
type Fetcher struct {
	api API
}

// NewFetcher creates a Fetcher over the given upstream client.
func NewFetcher(api API) *Fetcher {
	return &Fetcher{api: api}
}

// FetchFirstMatch issues one upstream request per candidate, strictly in
// order, and stops at the first response that contains metro-level wage rows
// (and, when targetArea is set, at least one row for that normalized area).
// A successful HTTP response without the needed rows is a non-match
// and the loop continues; so is any transport failure, which is logged into
// the attempt log as an ERROR entry.
//
// The attempt log is returned in all cases, including total failure. On
// exhaustion the error is a *MissingAreaError when a target was requested
// (carrying the normalized codes that were seen), ErrNoWageData otherwise.
func (f *Fetcher) FetchFirstMatch(ctx context.Context, candidates []string, soc, targetArea string) (*Report, []Attempt, error) {
	log := zap.L().With(zap.String("soc", soc))

	var target string
	if targetArea != "" {
		target = NormalizeAreaCode(targetArea)
	}

	attempts := make([]Attempt, 0, len(candidates))
	var available []string
	availSeen := make(map[string]bool)

	for _, loc := range candidates {
		report, status, err := f.api.FetchWage(ctx, soc, loc)
		if err != nil {
			attempts = append(attempts, Attempt{Location: loc, Status: StatusError})
			log.Warn("wage: candidate request failed",
				zap.String("location", loc),
				zap.Error(err),
			)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		attempts = append(attempts, Attempt{Location: loc, Status: strconv.Itoa(status)})
		if report == nil {
			continue
		}

		metro := report.OccupationDetail.Wages.BLSAreaWagesList
		if len(metro) == 0 {
			continue
		}

		if target == "" {
			return report, attempts, nil
		}

		matched := false
		for _, row := range metro {
			code := NormalizeAreaCode(row.Identifier())
			if !availSeen[code] {
				availSeen[code] = true
				available = append(available, code)
			}
			if code == target {
				matched = true
			}
		}
		if matched {
			return report, attempts, nil
		}
	}

	if target != "" {
		return nil, attempts, &MissingAreaError{
			AreaCode:  target,
			Available: available,
			Attempts:  attempts,
		}
	}
	return nil, attempts, ErrNoWageData
}
