// package services implements the Spotify Web API data-acquisition engine.
//
// Each fetcher walks its paginated collection through the shared retry policy
// and transport, then normalizes the raw items into the record types in
// serialize.go before handing them to the caller.
package services

import (
	"context"
)

// Service is the set of library fetch entry points the export engine consumes.
// Each call walks its collection to exhaustion and returns normalized records
// in the order the server produced them.
type Service interface {
	// SavedTracks retrieves every track saved in the user's library.
	SavedTracks(ctx context.Context) ([]Track, error)

	// Playlists retrieves the user's playlists with their full track listings.
	Playlists(ctx context.Context) ([]Playlist, error)

	// SavedAlbums retrieves every album saved in the user's library.
	SavedAlbums(ctx context.Context) ([]Album, error)

	// FollowedArtists retrieves the artists the user follows.
	FollowedArtists(ctx context.Context) ([]Artist, error)
}
