package wage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.careeronestop.org/v1"
	defaultTimeout = 10 * time.Second

	// RateAnnual and RateHourly are the rate-type labels the upstream uses.
	RateAnnual = "Annual"
	RateHourly = "Hourly"
)

// Report is the parsed upstream wage payload. The raw response is decoded
// into this shape immediately after the HTTP call; nothing downstream probes
// untyped maps.
type Report struct {
	OccupationDetail OccupationDetail `json:"OccupationDetail"`
}

// OccupationDetail carries the occupation title and the wage lists. The
// upstream sometimes wraps it in a one-element array, so it unmarshals from
// either shape.
type OccupationDetail struct {
	OnetTitle string `json:"OnetTitle"`
	Wages     Wages  `json:"Wages"`
}

func (o *OccupationDetail) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) == 0 {
			return nil
		}
		data = list[0]
	}

	type plain OccupationDetail
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = OccupationDetail(p)
	return nil
}

// Wages groups wage rows by geographic scope.
type Wages struct {
	BLSAreaWagesList  []AreaWage `json:"BLSAreaWagesList"`
	StateWagesList    []AreaWage `json:"StateWagesList"`
	NationalWagesList []AreaWage `json:"NationalWagesList"`
}

// Empty reports whether the payload carried no wage rows at any scope.
func (w Wages) Empty() bool {
	return len(w.BLSAreaWagesList) == 0 && len(w.StateWagesList) == 0 && len(w.NationalWagesList) == 0
}

// AreaWage is a single wage row. All statistics arrive as strings and may
// hold thousands separators or suppression markers instead of numbers.
type AreaWage struct {
	Area     string `json:"Area"`
	AreaCode string `json:"AreaCode"`
	AreaName string `json:"AreaName"`
	RateType string `json:"RateType"`
	Year     string `json:"Year"`
	Mean     string `json:"Mean"`
	Median   string `json:"Median"`
	Pct10    string `json:"Pct10"`
	Pct25    string `json:"Pct25"`
	Pct75    string `json:"Pct75"`
	Pct90    string `json:"Pct90"`
}

// Identifier returns the row's area identifier, preferring the explicit code
// fields over the display name.
func (a AreaWage) Identifier() string {
	if a.Area != "" {
		return a.Area
	}
	if a.AreaCode != "" {
		return a.AreaCode
	}
	return a.AreaName
}

// ClientOptions configures the upstream wage API client.
type ClientOptions struct {
	BaseURL string
	UserID  string
	Token   string
	Timeout time.Duration
}

// Client calls the CareerOneStop compare-salaries endpoint.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userID     string
	token      string
}

// NewClient creates a wage API client. UserID and Token must be set; the
// caller is expected to have validated credentials before constructing.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(5, 5),
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userID:     opts.UserID,
		token:      opts.Token,
	}
}

// FormatSOC appends the two-decimal suffix the upstream expects
// ("29-1141" → "29-1141.00"). Codes that already carry a suffix pass through.
func FormatSOC(soc string) string {
	if strings.Contains(soc, ".") {
		return soc
	}
	return soc + ".00"
}

// FetchWage requests wage rows for one occupation and location. The returned
// status is the upstream HTTP status; on a non-2xx status the report is nil
// and the error is nil, so callers can log the attempt and move on. A non-nil
// error means the request never produced a usable response (transport
// failure, timeout, or an unparseable body).
func (c *Client) FetchWage(ctx context.Context, soc, location string) (*Report, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, eris.Wrap(err, "wage: rate limit")
	}

	reqURL := c.baseURL + "/comparesalaries/" + url.PathEscape(c.userID) +
		"/wage?keyword=" + url.QueryEscape(FormatSOC(soc)) +
		"&location=" + url.QueryEscape(location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, eris.Wrap(err, "wage: build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, eris.Wrap(err, "wage: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, eris.Wrap(err, "wage: read body")
	}

	var report Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, resp.StatusCode, eris.Wrap(err, "wage: parse response")
	}

	return &report, resp.StatusCode, nil
}
