package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func playlistInfos(n int) []apiPlaylist {
	infos := make([]apiPlaylist, n)
	for i := range infos {
		infos[i] = apiPlaylist{
			ID:    fmt.Sprintf("pl%d", i),
			Name:  fmt.Sprintf("Playlist %d", i),
			Owner: apiOwner{ID: "owner"},
		}
	}
	return infos
}

// playlistServer serves one-page track listings, with configurable failures
// per playlist ID.
func playlistServer(fail map[string]int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		// /v1/playlists/{id}/tracks
		id := parts[3]
		if status, ok := fail[id]; ok {
			w.WriteHeader(status)
			return
		}
		fmt.Fprintf(w, `{"items":[{"added_at":"2023-01-01T00:00:00Z","track":{"name":"track of %s","duration_ms":1000}}],"next":null}`, id)
	}))
}

func TestPopulatePlaylists(t *testing.T) {
	t.Run("results in input order", func(t *testing.T) {
		srv := playlistServer(nil)
		defer srv.Close()

		client := newTestClient(t, srv)
		infos := playlistInfos(5)

		results := client.populatePlaylists(context.Background(), infos)
		if len(results) != 5 {
			t.Fatalf("expected 5 results, got %d", len(results))
		}
		for i, p := range results {
			if p.ID != fmt.Sprintf("pl%d", i) {
				t.Errorf("result %d has ID %s, order not preserved", i, p.ID)
			}
			if len(p.Tracks) != 1 {
				t.Errorf("playlist %s: expected 1 track, got %d", p.ID, len(p.Tracks))
			}
			if p.Error != "" {
				t.Errorf("playlist %s: unexpected error %q", p.ID, p.Error)
			}
		}
	})

	t.Run("one failure does not sink its siblings", func(t *testing.T) {
		srv := playlistServer(map[string]int{"pl2": http.StatusNotFound})
		defer srv.Close()

		client := newTestClient(t, srv)
		results := client.populatePlaylists(context.Background(), playlistInfos(5))

		if len(results) != 5 {
			t.Fatalf("expected 5 results, got %d", len(results))
		}

		failed := results[2]
		if failed.Error != "HTTP Error 404" {
			t.Errorf("expected 'HTTP Error 404', got %q", failed.Error)
		}
		if len(failed.Tracks) != 0 {
			t.Errorf("failed playlist should have empty listing, got %d tracks", len(failed.Tracks))
		}
		if failed.Name != "Playlist 2" {
			t.Errorf("failed playlist keeps its metadata, got %s", failed.Name)
		}

		for i, p := range results {
			if i == 2 {
				continue
			}
			if p.Error != "" || len(p.Tracks) != 1 {
				t.Errorf("sibling %d affected by failure: %+v", i, p)
			}
		}
	})

	t.Run("session errors degrade instead of aborting", func(t *testing.T) {
		srv := playlistServer(map[string]int{"pl0": http.StatusUnauthorized})
		defer srv.Close()

		client := newTestClient(t, srv)
		results := client.populatePlaylists(context.Background(), playlistInfos(2))

		if results[0].Error == "" {
			t.Error("expected error annotation for unauthorized sub-fetch")
		}
		if results[1].Error != "" {
			t.Errorf("sibling should succeed, got error %q", results[1].Error)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		srv := playlistServer(nil)
		defer srv.Close()

		client := newTestClient(t, srv)
		results := client.populatePlaylists(context.Background(), nil)
		if len(results) != 0 {
			t.Errorf("expected empty results, got %d", len(results))
		}
	})

	t.Run("cancellation annotates remaining playlists", func(t *testing.T) {
		srv := playlistServer(nil)
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := newTestClient(t, srv)
		results := client.populatePlaylists(ctx, playlistInfos(4))

		if len(results) != 4 {
			t.Fatalf("expected 4 results, got %d", len(results))
		}
		for i, p := range results {
			if p.Error == "" {
				t.Errorf("playlist %d should carry a cancellation annotation", i)
			}
			if p.ID != fmt.Sprintf("pl%d", i) {
				t.Errorf("cancelled results keep input order, got %s at %d", p.ID, i)
			}
		}
	})

	t.Run("concurrency stays within the worker bound", func(t *testing.T) {
		var inFlight, peak atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			fmt.Fprint(w, `{"items":[],"next":null}`)
		}))
		defer srv.Close()

		client := newTestClient(t, srv)
		client.workers = 2

		client.populatePlaylists(context.Background(), playlistInfos(10))

		if got := peak.Load(); got > 2 {
			t.Errorf("expected at most 2 concurrent fetches, saw %d", got)
		}
	})
}

func TestErrorAnnotation(t *testing.T) {
	t.Run("status errors render the code", func(t *testing.T) {
		got := errorAnnotation(&StatusError{StatusCode: 502})
		if got != "HTTP Error 502" {
			t.Errorf("expected 'HTTP Error 502', got %q", got)
		}
	})

	t.Run("other errors render their message", func(t *testing.T) {
		got := errorAnnotation(fmt.Errorf("connection refused"))
		if got != "connection refused" {
			t.Errorf("unexpected annotation: %q", got)
		}
	})
}
