// Package catalog is a typed client for the catalog provider: rich,
// numeric-ID-keyed movie metadata with paginated listings.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"filmera/models"
)

// Client handles requests to the catalog provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a catalog client with a default HTTP client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NowPlaying fetches page 1 of the now-playing listing.
func (c *Client) NowPlaying(ctx context.Context) (*models.CatalogListing, error) {
	var listing models.CatalogListing
	if err := c.get(ctx, "/movie/now_playing", url.Values{"page": {"1"}}, &listing); err != nil {
		return nil, fmt.Errorf("now playing: %w", err)
	}
	return &listing, nil
}

// Popular fetches page 1 of the popular listing.
func (c *Client) Popular(ctx context.Context) (*models.CatalogListing, error) {
	var listing models.CatalogListing
	if err := c.get(ctx, "/movie/popular", url.Values{"page": {"1"}}, &listing); err != nil {
		return nil, fmt.Errorf("popular: %w", err)
	}
	return &listing, nil
}

// MovieByID fetches full detail for a single movie, including runtime,
// genres and the record-provider cross reference.
func (c *Client) MovieByID(ctx context.Context, id int64) (*models.CatalogMovie, error) {
	var movie models.CatalogMovie
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &movie); err != nil {
		return nil, fmt.Errorf("movie %d: %w", id, err)
	}
	return &movie, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	query := url.Values{}
	for k, vs := range params {
		query[k] = vs
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", "en-US")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
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
