// Resource fetchers, one per library collection. Each composes the paginator
// with its endpoint and normalizes raw items at the boundary.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// playlistTrackFields trims playlist track responses to the fields the
// snapshot needs.
const playlistTrackFields = "items(added_at,track(name,duration_ms,album(name,release_date,images),artists(name))),next"

// SavedTracks retrieves every saved track via /v1/me/tracks.
func (c *Client) SavedTracks(ctx context.Context) ([]Track, error) {
	start := time.Now()

	items, err := fetchPaged[savedTrackItem](ctx, c, c.baseURL+"/v1/me/tracks?limit=50")
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, serializeSavedTrack(item))
	}

	c.logger.Info("processed saved tracks", "count", len(tracks), "elapsed", time.Since(start))
	return tracks, nil
}

// SavedAlbums retrieves every saved album via /v1/me/albums.
func (c *Client) SavedAlbums(ctx context.Context) ([]Album, error) {
	start := time.Now()

	items, err := fetchPaged[savedAlbumItem](ctx, c, c.baseURL+"/v1/me/albums?limit=50")
	if err != nil {
		return nil, err
	}

	albums := make([]Album, 0, len(items))
	for _, item := range items {
		albums = append(albums, serializeAlbum(item))
	}

	c.logger.Info("processed saved albums", "count", len(albums), "elapsed", time.Since(start))
	return albums, nil
}

// FollowedArtists retrieves followed artists via /v1/me/following, which uses
// cursor pagination with items and cursor nested under an "artists" key.
func (c *Client) FollowedArtists(ctx context.Context) ([]Artist, error) {
	start := time.Now()
	base := c.baseURL + "/v1/me/following?type=artist&limit=50"

	raw, err := fetchCursorPaged(ctx, c, base, decodeFollowingPage)
	if err != nil {
		return nil, err
	}

	artists := make([]Artist, 0, len(raw))
	for _, a := range raw {
		artists = append(artists, serializeArtist(a))
	}

	c.logger.Info("processed followed artists", "count", len(artists), "elapsed", time.Since(start))
	return artists, nil
}

// decodeFollowingPage unwraps the "artists" nesting before the generic cursor
// logic sees the page.
func decodeFollowingPage(body []byte) ([]apiFullArtist, string, error) {
	var page followingEnvelope
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", err
	}

	after := ""
	if page.Artists.Cursors.After != nil {
		after = *page.Artists.Cursors.After
	}
	return page.Artists.Items, after, nil
}

// Playlists retrieves playlist metadata via /v1/me/playlists, then populates
// each playlist's track listing through the concurrent fan-out. The returned
// order matches the listing order, not sub-fetch completion order.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	start := time.Now()

	infos, err := fetchPaged[apiPlaylist](ctx, c, c.baseURL+"/v1/me/playlists?limit=50")
	if err != nil {
		return nil, err
	}

	playlists := c.populatePlaylists(ctx, infos)

	c.logger.Info("processed playlists", "count", len(playlists), "elapsed", time.Since(start))
	return playlists, nil
}

// playlistTracks retrieves one playlist's full track listing. Items with a
// null track (removed or local files) are skipped.
func (c *Client) playlistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	u := fmt.Sprintf("%s/v1/playlists/%s/tracks?fields=%s",
		c.baseURL, playlistID, url.QueryEscape(playlistTrackFields))

	items, err := fetchPaged[savedTrackItem](ctx, c, u)
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		if item.Track == nil {
			continue
		}
		tracks = append(tracks, serializeSavedTrack(item))
	}

	return tracks, nil
}
