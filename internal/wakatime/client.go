package wakatime

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const defaultBaseURL = "https://wakatime.com"

// ErrInvalidAPIKey is returned when the stats response does not carry a
// well-formed data.languages list, which is what WakaTime serves for a missing
// or bad key.
var ErrInvalidAPIKey = errors.New("wakatime stats response has no language data; check the API key")

//go:embed stats.schema.json
var statsSchemaJSON string

var statsSchema = jsonschema.MustCompileString("stats.schema.json", statsSchemaJSON)

// Language is one ranked entry of the per-language breakdown.
type Language struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Text    string  `json:"text"`
}

type statsResponse struct {
	Data struct {
		Languages []Language `json:"languages"`
	} `json:"data"`
}

type Client struct {
	client   *http.Client
	apiKey   string
	endpoint string
}

// NewClient builds a stats client. A nil httpClient uses http.DefaultClient,
// so only the transport defaults bound a request.
func NewClient(httpClient *http.Client, apiKey, baseURL string) *Client {
	endpoint := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		client:   httpClient,
		apiKey:   apiKey,
		endpoint: endpoint,
	}
}

// StatsURL returns the stats endpoint for the given range without the key.
func (c *Client) StatsURL(timeRange string) string {
	return c.endpoint + "/api/v1/users/current/stats/" + url.PathEscape(timeRange)
}

// Languages fetches the language breakdown for timeRange, ordered by
// descending percent as WakaTime returns it.
func (c *Client) Languages(ctx context.Context, timeRange string) ([]Language, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.StatsURL(timeRange)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wakatime stats request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w (status %d)", ErrInvalidAPIKey, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wakatime stats request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return parseLanguages(raw)
}

func parseLanguages(raw []byte) ([]Language, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode wakatime stats: %w", err)
	}
	if err := statsSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAPIKey, err)
	}

	var parsed statsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode wakatime stats: %w", err)
	}
	if parsed.Data.Languages == nil {
		return []Language{}, nil
	}
	return parsed.Data.Languages, nil
}
