// Package records is a typed client for the record provider: key-value
// movie records keyed by a string identifier, searchable by title.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"

	"filmera/models"
)

// ErrNotFound indicates the provider reported no matching record.
var ErrNotFound = errors.New("record not found")

// ErrNoResults indicates a title search matched nothing.
var ErrNoResults = errors.New("no search results")

// Client handles requests to the record provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a record client with a default HTTP client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchByTitle runs a full-text title search. The query is
// transliterated to ASCII first; the provider's search index does not
// match accented forms. Zero matches return ErrNoResults.
func (c *Client) SearchByTitle(ctx context.Context, query string) ([]models.RecordMovie, error) {
	query = strings.TrimSpace(unidecode.Unidecode(query))

	var result models.RecordSearchResult
	if err := c.get(ctx, url.Values{"s": {query}}, &result); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if result.Response == "False" || len(result.Search) == 0 {
		return nil, ErrNoResults
	}
	return result.Search, nil
}

// ByID looks up the full record for a single key. A provider-reported
// lookup failure returns ErrNotFound.
func (c *Client) ByID(ctx context.Context, key string) (*models.RecordMovie, error) {
	var movie models.RecordMovie
	if err := c.get(ctx, url.Values{"i": {key}}, &movie); err != nil {
		return nil, fmt.Errorf("record %q: %w", key, err)
	}
	if !movie.Found() {
		return nil, fmt.Errorf("record %q: %w", key, ErrNotFound)
	}
	return &movie, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	query := url.Values{}
	for k, vs := range params {
		query[k] = vs
	}
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
