// Package sam is a client for the SAM.gov contract-opportunities search API.
package sam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production opportunities search endpoint.
const DefaultBaseURL = "https://api.sam.gov/opportunities/v2/search"

// dateLayout is the MM/DD/YYYY format the API requires for the posted range.
const dateLayout = "01/02/2006"

// maxLimit is the API's per-page ceiling.
const maxLimit = 1000

var ErrMissingAPIKey = errors.New("sam: api key missing")

// Client issues searches against the opportunities API. One search is one
// GET; pagination, caching and retries are out of scope.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// New returns a client for the given endpoint. An empty baseURL selects the
// production endpoint; a nil httpClient gets a 30s timeout default.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), APIKey: apiKey, HTTP: httpClient}
}

// SearchParams are the supported server-side query parameters. PostedFrom
// and PostedTo are required by the API.
type SearchParams struct {
	PostedFrom time.Time
	PostedTo   time.Time
	Limit      int      // clamped to 1..1000, default 100
	Offset     int
	PType      string   // procurement type code, e.g. "o" for solicitation
	SetAside   string   // optional typeOfSetAside applied server-side
	Fields     []string // optional response field restriction
}

// SearchResult is the decoded response. Opportunities keeps the upstream
// records schema-less; the field set varies per response.
type SearchResult struct {
	TotalRecords  int
	Opportunities []map[string]any
}

type searchResponse struct {
	TotalRecords      int              `json:"totalRecords"`
	OpportunitiesData []map[string]any `json:"opportunitiesData"`
}

// Search performs one search. An absent or empty opportunitiesData list is a
// valid no-results outcome, not an error.
func (c *Client) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if p.PostedFrom.IsZero() || p.PostedTo.IsZero() {
		return nil, errors.New("sam: posted date range is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(p), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sam request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sam api status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &SearchResult{
		TotalRecords:  body.TotalRecords,
		Opportunities: body.OpportunitiesData,
	}, nil
}

func (c *Client) searchURL(p SearchParams) string {
	q := url.Values{}
	q.Set("api_key", c.APIKey)
	q.Set("postedFrom", p.PostedFrom.Format(dateLayout))
	q.Set("postedTo", p.PostedTo.Format(dateLayout))
	q.Set("limit", strconv.Itoa(clampLimit(p.Limit)))
	q.Set("offset", strconv.Itoa(max(p.Offset, 0)))
	if p.PType != "" {
		q.Set("ptype", p.PType)
	}
	if p.SetAside != "" {
		q.Set("typeOfSetAside", p.SetAside)
	}
	if len(p.Fields) > 0 {
		q.Set("fields", strings.Join(p.Fields, ","))
	}
	return c.BaseURL + "?" + q.Encode()
}

func clampLimit(n int) int {
	if n <= 0 {
		return 100
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}
