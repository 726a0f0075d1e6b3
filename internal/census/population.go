// Package census fetches metro-area population from the Census Bureau ACS
// 5-year estimates API.
package census

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const (
	// acsYear is the most recent complete ACS 5-year vintage.
	acsYear = 2022

	// totalPopulationVar is ACS table B01003 (total population).
	totalPopulationVar = "B01003_001E"

	defaultBaseURL = "https://api.census.gov/data"
)

// Vintage labels the data release served by this client.
const Vintage = "ACS 2022"

// Client calls the Census ACS API. No key is required for low volumes.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an ACS population client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// FetchPopulation returns the total population for a CBSA, or (0, false) when
// the area is unknown to the ACS without that being a hard error.
//
// The API responds with a two-row table: a header row and a value row, the
// population being the second column of the value row:
//
//	[["NAME","B01003_001E","metro area"],
//	 ["Miami-...","6138333","33100"]]
func (c *Client) FetchPopulation(ctx context.Context, cbsa string) (int, bool, error) {
	reqURL := fmt.Sprintf(
		"%s/%d/acs/acs5?get=NAME,%s&for=metropolitan%%20statistical%%20area/micropolitan%%20statistical%%20area:%s",
		c.baseURL, acsYear, totalPopulationVar, cbsa,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, false, eris.Wrap(err, "census: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, false, eris.Wrap(err, "census: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	// The ACS API answers 204 for unknown geographies.
	if resp.StatusCode == http.StatusNoContent {
		return 0, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return 0, false, eris.Errorf("census: returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, false, eris.Wrap(err, "census: read body")
	}

	var table [][]string
	if err := json.Unmarshal(body, &table); err != nil {
		return 0, false, eris.Wrap(err, "census: parse response")
	}
	if len(table) < 2 || len(table[1]) < 2 {
		return 0, false, eris.New("census: unexpected response shape")
	}

	population, err := strconv.Atoi(table[1][1])
	if err != nil {
		return 0, false, eris.Wrapf(err, "census: invalid population value %q", table[1][1])
	}
	return population, true, nil
}
