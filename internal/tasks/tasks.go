// package tasks implements the library export operation.
//
// The core abstraction is ExportEngine, which drives the four resource
// fetchers sequentially and assembles the portable snapshot. Operations emit
// progress updates via channels for non-blocking status reporting to the CLI
// layer.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/smorcillor/spotify-profile-dump-cli/internal/services"
	"github.com/smorcillor/spotify-profile-dump-cli/internal/shared"
)

// Library is the portable snapshot of a user's library. Field names are the
// contract downstream consumers depend on.
type Library struct {
	SavedTracks []services.Track    `json:"savedTracks"`
	Playlists   []services.Playlist `json:"playlists"`
	Albums      []services.Album    `json:"albums"`
	Artists     []services.Artist   `json:"artists"`
	ExportedAt  string              `json:"exportedAt"`
}

// ExportEngine orchestrates a full library dump against a Service.
type ExportEngine struct {
	spotify services.Service
	now     func() time.Time
}

// NewExportEngine creates a new ExportEngine for the provided service.
func NewExportEngine(spotify services.Service) *ExportEngine {
	return &ExportEngine{
		spotify: spotify,
		now:     time.Now,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls a fetch.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Dump fetches the whole library: saved tracks, playlists with their track
// listings, saved albums, and followed artists, in that order. The top-level
// resources are fetched sequentially; concurrency lives inside the playlist
// fan-out. Unauthorized or Forbidden from any fetcher aborts the dump — the
// session is unusable. The export timestamp is assigned here, outside the
// acquisition engine, so engine output stays deterministic for identical
// fixtures.
func (e *ExportEngine) Dump(ctx context.Context, progress chan<- ProgressUpdate) (*Library, error) {
	if e.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	lib := &Library{}

	steps := []struct {
		phase    Phase
		message  string
		resource string
		fetch    func(context.Context) (int, error)
	}{
		{FetchTracks, "Fetching saved tracks...", "saved tracks", func(ctx context.Context) (int, error) {
			tracks, err := e.spotify.SavedTracks(ctx)
			lib.SavedTracks = tracks
			return len(tracks), err
		}},
		{FetchPlaylists, "Fetching playlists...", "playlists", func(ctx context.Context) (int, error) {
			playlists, err := e.spotify.Playlists(ctx)
			lib.Playlists = playlists
			return len(playlists), err
		}},
		{FetchAlbums, "Fetching albums...", "albums", func(ctx context.Context) (int, error) {
			albums, err := e.spotify.SavedAlbums(ctx)
			lib.Albums = albums
			return len(albums), err
		}},
		{FetchArtists, "Fetching artists...", "followed artists", func(ctx context.Context) (int, error) {
			artists, err := e.spotify.FollowedArtists(ctx)
			lib.Artists = artists
			return len(artists), err
		}},
	}

	total := len(steps)
	for i, step := range steps {
		e.sendProgress(progress, fetchUpdate(step.phase, i+1, total, step.message))

		count, err := step.fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.phase, err)
		}

		e.sendProgress(progress, fetchedUpdate(step.phase, i+1, total, count, step.resource))
	}

	// Empty collections serialize as [] rather than null.
	if lib.SavedTracks == nil {
		lib.SavedTracks = []services.Track{}
	}
	if lib.Playlists == nil {
		lib.Playlists = []services.Playlist{}
	}
	if lib.Albums == nil {
		lib.Albums = []services.Album{}
	}
	if lib.Artists == nil {
		lib.Artists = []services.Artist{}
	}

	lib.ExportedAt = e.now().UTC().Format(time.RFC3339)
	return lib, nil
}
