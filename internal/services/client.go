package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/smorcillor/spotify-profile-dump-cli/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.spotify.com"

	// Per-request timeout. Exceeding it surfaces as a network failure from
	// the transport, never as a status code.
	requestTimeout = 30 * time.Second

	defaultFanOutWorkers = 10
)

// Response is the normalized outcome of a single HTTP round-trip.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client talks to the Spotify Web API on behalf of a single bearer token.
// The token is read-only for the life of the client and safe to share across
// the fan-out workers.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	retry      RetryPolicy
	limiter    *rate.Limiter
	workers    int
	logger     *log.Logger
}

// ClientOpts contains configuration options for creating a Client.
type ClientOpts struct {
	Token         string       // Bearer access token (required)
	BaseURL       string       // API base URL; SPOTIFY_API_URL overrides, default https://api.spotify.com
	HTTPClient    *http.Client // Custom HTTP client, mainly for tests
	Retry         *RetryPolicy // Retry policy, default DefaultRetryPolicy
	RateLimit     float64      // Requests per second across all workers, 0 = unthrottled
	FanOutWorkers int          // Concurrent playlist sub-fetches, default 10
	Logger        *log.Logger
}

// NewClient creates a new Client with the provided options.
func NewClient(opts ClientOpts) (*Client, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("%w: missing access token", shared.ErrMissingCredentials)
	}

	baseURL := os.Getenv("SPOTIFY_API_URL")
	if baseURL == "" {
		baseURL = opts.BaseURL
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: requestTimeout}
	}

	retry := DefaultRetryPolicy()
	if opts.Retry != nil {
		retry = *opts.Retry
	}

	workers := opts.FanOutWorkers
	if workers <= 0 {
		workers = defaultFanOutWorkers
	}

	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		baseURL:    baseURL,
		token:      opts.Token,
		httpClient: opts.HTTPClient,
		retry:      retry,
		limiter:    limiter,
		workers:    workers,
		logger:     shared.WithLogger(opts.Logger, "component", "spotify"),
	}, nil
}

// get performs exactly one GET request and returns the normalized response.
// Status codes are not interpreted here; that is the paginator's job after
// the retry policy has settled on a final response.
func (c *Client) get(ctx context.Context, url string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}
