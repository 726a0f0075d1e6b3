// Package bls fetches Local Area Unemployment Statistics timeseries from the
// BLS public API v2.
package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL  = "https://api.bls.gov/publicAPI/v2/timeseries/data/"
	statusSucceeded = "REQUEST_SUCCEEDED"

	// floridaFIPS prefixes every LAUS metro series this service builds.
	floridaFIPS = "12"

	// monthsReturned bounds the timeseries handed back to clients.
	monthsReturned = 24
)

// LAUS measure codes, encoded as the last digit of a series ID.
const (
	measureRate       = "3"
	measureUnemployed = "4"
	measureEmployed   = "5"
	measureLaborForce = "6"
)

// Point is one month of labor-market context for a metro area. Measures the
// upstream did not report stay nil.
type Point struct {
	Year             int      `json:"year"`
	Month            int      `json:"month"`
	Period           string   `json:"period"` // "M01".."M12"
	Date             string   `json:"date"`   // "2024-01", for display
	LaborForce       *float64 `json:"labor_force"`
	Employed         *float64 `json:"employed"`
	Unemployed       *float64 `json:"unemployed"`
	UnemploymentRate *float64 `json:"unemployment_rate"`
}

// blsSeriesResponse is the BLS API v2 response envelope.
type blsSeriesResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []struct {
			SeriesID string `json:"seriesID"`
			Data     []struct {
				Year   string `json:"year"`
				Period string `json:"period"`
				Value  string `json:"value"`
			} `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

// Client calls the BLS timeseries API. The registration key is optional;
// without one the API enforces a lower daily quota.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
}

// NewClient creates a LAUS client. key may be empty.
func NewClient(key string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		key:        key,
	}
}

// SeriesIDs builds the four LAUS series for a Florida metro area:
// LAUMT{state_fips}{cbsa}000000000{measure}, one per measure.
func SeriesIDs(cbsa string) []string {
	base := "LAUMT" + floridaFIPS + cbsa + "000000000"
	return []string{
		base + measureLaborForce,
		base + measureEmployed,
		base + measureUnemployed,
		base + measureRate,
	}
}

// FetchTimeseries returns up to two years of monthly LAUS data for the given
// CBSA, oldest month first.
func (c *Client) FetchTimeseries(ctx context.Context, cbsa string) ([]Point, error) {
	endYear := time.Now().Year()

	payload := map[string]any{
		"seriesid":  SeriesIDs(cbsa),
		"startyear": strconv.Itoa(endYear - 2),
		"endyear":   strconv.Itoa(endYear),
	}
	if c.key != "" {
		payload["registrationkey"] = c.key
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, eris.Wrap(err, "laus: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "laus: build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "laus: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("laus: bls returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "laus: read body")
	}

	var envelope blsSeriesResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, eris.Wrap(err, "laus: parse response")
	}
	if envelope.Status != statusSucceeded {
		return nil, eris.Errorf("laus: bls request failed: %s", strings.Join(envelope.Message, "; "))
	}

	return mergeSeries(envelope), nil
}

// mergeSeries folds the four per-measure series into one monthly timeseries,
// keyed by year+period, newest first, capped at monthsReturned and then
// reversed to oldest-first for display.
func mergeSeries(envelope blsSeriesResponse) []Point {
	byMonth := make(map[string]*Point)

	for _, series := range envelope.Results.Series {
		if series.SeriesID == "" {
			continue
		}
		measure := series.SeriesID[len(series.SeriesID)-1:]

		for _, dp := range series.Data {
			if !strings.HasPrefix(dp.Period, "M") {
				continue
			}
			key := dp.Year + "-" + dp.Period

			pt, ok := byMonth[key]
			if !ok {
				year, _ := strconv.Atoi(dp.Year)
				month, _ := strconv.Atoi(strings.TrimPrefix(dp.Period, "M"))
				pt = &Point{
					Year:   year,
					Month:  month,
					Period: dp.Period,
					Date:   dp.Year + "-" + strings.TrimPrefix(dp.Period, "M"),
				}
				byMonth[key] = pt
			}

			v, err := strconv.ParseFloat(dp.Value, 64)
			if err != nil {
				continue
			}
			switch measure {
			case measureLaborForce:
				pt.LaborForce = &v
			case measureEmployed:
				pt.Employed = &v
			case measureUnemployed:
				pt.Unemployed = &v
			case measureRate:
				pt.UnemploymentRate = &v
			}
		}
	}

	points := make([]Point, 0, len(byMonth))
	for _, pt := range byMonth {
		points = append(points, *pt)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year > points[j].Year
		}
		return points[i].Month > points[j].Month
	})

	if len(points) > monthsReturned {
		points = points[:monthsReturned]
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points
}
