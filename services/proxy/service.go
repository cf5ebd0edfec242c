// Package proxy brokers named client actions to the two upstream movie
// providers, shielding the API credentials from the caller. Each
// invocation maps to exactly one outbound call; the upstream JSON body
// is relayed verbatim on success.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// Supported action names.
const (
	ActionGetBanners               = "getBanners"
	ActionGetPopularMovies         = "getPopularMovies"
	ActionGetMovieDetailsByCatalog = "getMovieDetailsByCatalog"
	ActionSearchMovies             = "searchMovies"
	ActionGetMovieDetailsByRecord  = "getMovieDetailsByRecord"
)

var (
	// ErrInvalidAction indicates an unknown action name.
	ErrInvalidAction = errors.New("invalid action")
	// ErrMissingParam indicates a required action parameter is absent
	// or has the wrong shape.
	ErrMissingParam = errors.New("missing or invalid parameter")
	// ErrNotConfigured indicates one or both provider keys are absent.
	ErrNotConfigured = errors.New("api keys are not configured")
)

// Request is the decoded proxy request body. ID is loosely typed: the
// catalog provider keys movies numerically, the record provider by
// string.
type Request struct {
	Action string `json:"action"`
	Query  string `json:"query"`
	ID     any    `json:"id"`
}

// Result is the outcome relayed to the caller: a status code and a JSON
// body, either the verbatim upstream payload or a generic error object.
type Result struct {
	Status int
	Body   []byte
}

// Service resolves actions to upstream URLs and performs the single
// outbound call. It holds no per-request state.
type Service struct {
	catalogBaseURL string
	recordBaseURL  string
	catalogAPIKey  string
	recordAPIKey   string
	httpClient     *http.Client
}

// NewService constructs a proxy service. The zero-timeout default
// transport behavior is kept deliberately; the function adds no timeout
// of its own.
func NewService(catalogBaseURL, recordBaseURL, catalogAPIKey, recordAPIKey string) *Service {
	return &Service{
		catalogBaseURL: catalogBaseURL,
		recordBaseURL:  recordBaseURL,
		catalogAPIKey:  catalogAPIKey,
		recordAPIKey:   recordAPIKey,
		httpClient:     http.DefaultClient,
	}
}

// Configured reports whether both provider credentials are present.
// The check precedes action dispatch.
func (s *Service) Configured() bool {
	return s.catalogAPIKey != "" && s.recordAPIKey != ""
}

// Dispatch validates the request, builds the single upstream URL and
// relays the response. Validation failures return one of the sentinel
// errors above before any outbound call is made; transport failures
// return the transport error.
func (s *Service) Dispatch(ctx context.Context, req Request) (*Result, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	target, err := s.upstreamURL(req)
	if err != nil {
		return nil, err
	}

	return s.relay(ctx, target)
}

func (s *Service) upstreamURL(req Request) (string, error) {
	switch req.Action {
	case ActionGetBanners:
		return s.catalogURL("/movie/now_playing"), nil

	case ActionGetPopularMovies:
		return s.catalogURL("/movie/popular"), nil

	case ActionGetMovieDetailsByCatalog:
		id, ok := numericID(req.ID)
		if !ok {
			return "", fmt.Errorf("%w: numeric id required", ErrMissingParam)
		}
		return s.catalogURL(fmt.Sprintf("/movie/%d", id)), nil

	case ActionSearchMovies:
		if req.Query == "" {
			return "", fmt.Errorf("%w: query required", ErrMissingParam)
		}
		return s.recordURL(url.Values{"s": {req.Query}}), nil

	case ActionGetMovieDetailsByRecord:
		key, ok := req.ID.(string)
		if !ok || key == "" {
			return "", fmt.Errorf("%w: record key required", ErrMissingParam)
		}
		return s.recordURL(url.Values{"i": {key}}), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, req.Action)
	}
}

func (s *Service) catalogURL(path string) string {
	query := url.Values{
		"api_key":  {s.catalogAPIKey},
		"language": {"en-US"},
	}
	switch path {
	case "/movie/now_playing", "/movie/popular":
		query.Set("page", "1")
	}
	return s.catalogBaseURL + path + "?" + query.Encode()
}

func (s *Service) recordURL(params url.Values) string {
	query := url.Values{"apikey": {s.recordAPIKey}}
	for k, vs := range params {
		query[k] = vs
	}
	return s.recordBaseURL + "/?" + query.Encode()
}

// relay performs the outbound call. A non-2xx upstream response is
// forwarded with its status and a generic body; the upstream error
// payload is logged, never exposed to the caller.
func (s *Service) relay(ctx context.Context, target string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create upstream request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[proxy] upstream returned %d: %s", resp.StatusCode, body)
		generic, _ := json.Marshal(map[string]string{"error": "Failed to fetch from external API"})
		return &Result{Status: resp.StatusCode, Body: generic}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	return &Result{Status: http.StatusOK, Body: body}, nil
}

// numericID accepts the shape a JSON number decodes into.
func numericID(v any) (int64, bool) {
	id, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int64(id), true
}
