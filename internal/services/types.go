// Wire types for the Spotify Web API, trimmed to the fields the exporter
// reads. Based on https://developer.spotify.com/documentation/web-api/reference/
package services

type apiImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type apiArtist struct {
	Name string `json:"name"`
}

type apiAlbum struct {
	Name        string      `json:"name"`
	ReleaseDate string      `json:"release_date"`
	TotalTracks int         `json:"total_tracks"`
	Images      []apiImage  `json:"images"`
	Artists     []apiArtist `json:"artists"`
}

type apiTrack struct {
	Name       string      `json:"name"`
	DurationMS *int        `json:"duration_ms"`
	Album      apiAlbum    `json:"album"`
	Artists    []apiArtist `json:"artists"`
}

// savedTrackItem is the shape shared by /me/tracks items and playlist track
// items: a track wrapped with the timestamp it was added. Track is a pointer
// because playlist items for removed or local files carry a null track.
type savedTrackItem struct {
	AddedAt string    `json:"added_at"`
	Track   *apiTrack `json:"track"`
}

type savedAlbumItem struct {
	AddedAt string   `json:"added_at"`
	Album   apiAlbum `json:"album"`
}

type apiFollowers struct {
	Total int `json:"total"`
}

// apiFullArtist is the full artist object returned by /me/following.
type apiFullArtist struct {
	Name      string       `json:"name"`
	Genres    []string     `json:"genres"`
	Images    []apiImage   `json:"images"`
	Followers apiFollowers `json:"followers"`
}

type apiOwner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// apiPlaylist is the simplified playlist object from /me/playlists; track
// listings are fetched separately per playlist.
type apiPlaylist struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Owner       apiOwner   `json:"owner"`
	Images      []apiImage `json:"images"`
}

// followingEnvelope is the cursor-paginated response of /me/following, which
// nests items and cursor under an "artists" key.
type followingEnvelope struct {
	Artists struct {
		Items   []apiFullArtist `json:"items"`
		Cursors struct {
			After *string `json:"after"`
		} `json:"cursors"`
	} `json:"artists"`
}
