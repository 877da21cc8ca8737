package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smorcillor/spotify-profile-dump-cli/internal/shared"
	testtools "github.com/smorcillor/spotify-profile-dump-cli/internal/testing"
)

// newTestClient builds a client pointed at a test server with a minimal
// retry policy so failure paths settle fast.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return &Client{
		baseURL:    srv.URL,
		token:      "test_token",
		httpClient: srv.Client(),
		retry: RetryPolicy{
			MaxRetries:   1,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
		},
		workers: 4,
		logger:  shared.NewLogger(io.Discard),
	}
}

func TestNewClient(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		_, err := NewClient(ClientOpts{})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SPOTIFY_API_URL", "")

		client, err := NewClient(ClientOpts{Token: "tok"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if client.baseURL != "https://api.spotify.com" {
			t.Errorf("expected default base URL, got %s", client.baseURL)
		}
		if client.retry.MaxRetries != 5 {
			t.Errorf("expected default retry budget, got %d", client.retry.MaxRetries)
		}
		if client.workers != 10 {
			t.Errorf("expected 10 workers, got %d", client.workers)
		}
		if client.limiter != nil {
			t.Error("expected no limiter when rate limit is zero")
		}
	})

	t.Run("environment overrides base URL", func(t *testing.T) {
		t.Setenv("SPOTIFY_API_URL", "http://localhost:1234")

		client, err := NewClient(ClientOpts{Token: "tok", BaseURL: "http://ignored"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if client.baseURL != "http://localhost:1234" {
			t.Errorf("expected env base URL, got %s", client.baseURL)
		}
	})

	t.Run("rate limit enables limiter", func(t *testing.T) {
		t.Setenv("SPOTIFY_API_URL", "")

		client, err := NewClient(ClientOpts{Token: "tok", RateLimit: 5})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if client.limiter == nil {
			t.Error("expected limiter to be configured")
		}
	})
}

func TestClientGet(t *testing.T) {
	t.Run("sends bearer token", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		client := newTestClient(t, srv)
		resp, err := client.get(context.Background(), srv.URL+"/v1/me")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotAuth != "Bearer test_token" {
			t.Errorf("expected bearer header, got %q", gotAuth)
		}
		if resp.StatusCode != 200 {
			t.Errorf("expected status 200, got %d", resp.StatusCode)
		}
		if string(resp.Body) != `{"ok":true}` {
			t.Errorf("unexpected body: %s", resp.Body)
		}
	})

	t.Run("does not interpret status codes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := newTestClient(t, srv)
		resp, err := client.get(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("a 500 is a response, not an error: %v", err)
		}
		if resp.StatusCode != 500 {
			t.Errorf("expected status 500, got %d", resp.StatusCode)
		}
	})

	t.Run("transport failure surfaces as an error", func(t *testing.T) {
		transport := testtools.NewMockRoundTripper(nil, errors.New("connection refused"))

		client := &Client{
			baseURL:    "http://example.invalid",
			token:      "tok",
			httpClient: &http.Client{Transport: transport},
			retry:      DefaultRetryPolicy(),
			logger:     shared.NewLogger(io.Discard),
		}

		if _, err := client.get(context.Background(), client.baseURL); err == nil {
			t.Error("expected transport error")
		}
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := newTestClient(t, srv)
		if _, err := client.get(ctx, srv.URL); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
