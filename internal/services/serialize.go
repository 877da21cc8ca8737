package services

import (
	"github.com/smorcillor/spotify-profile-dump-cli/internal/shared"
)

// Normalized snapshot records. Field names and null conventions are the
// contract the downstream snapshot consumers depend on: missing images,
// descriptions, and owners become null or empty values, list fields are
// always present, and durations are preformatted strings.

// AlbumRef is the album reference embedded in a Track.
type AlbumRef struct {
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date"`
	ImageURL    *string `json:"image_url"`
}

// ArtistRef is the minimal artist reference embedded in tracks and albums.
type ArtistRef struct {
	Name string `json:"name"`
}

// Track is a normalized track record. AddedAt is null for tracks that do not
// come wrapped with a saved-at timestamp.
type Track struct {
	Name     string      `json:"name"`
	Album    AlbumRef    `json:"album"`
	Artists  []ArtistRef `json:"artists"`
	Duration *string     `json:"duration"`
	AddedAt  *string     `json:"added_at"`
}

// Album is a normalized saved-album record.
type Album struct {
	Name        string      `json:"name"`
	Artists     []ArtistRef `json:"artists"`
	ReleaseDate string      `json:"release_date"`
	TotalTracks int         `json:"total_tracks"`
	ImageURL    *string     `json:"image_url"`
	AddedAt     *string     `json:"added_at"`
}

// Artist is a normalized followed-artist record.
type Artist struct {
	Name      string   `json:"name"`
	Genres    []string `json:"genres"`
	ImageURL  *string  `json:"image_url"`
	Followers int      `json:"followers"`
}

// Playlist is a normalized playlist record with its full track listing.
// Error is set when the playlist's track fetch failed; the record is kept
// with an empty listing instead of aborting the export.
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Owner       string  `json:"owner"`
	ImageURL    *string `json:"image_url"`
	Tracks      []Track `json:"tracks"`
	Error       string  `json:"error,omitempty"`
}

// optString maps a missing wire value to null rather than an empty string.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// firstImageURL picks the first (largest) image, or null when there are none.
func firstImageURL(images []apiImage) *string {
	if len(images) == 0 {
		return nil
	}
	u := images[0].URL
	return &u
}

func artistRefs(artists []apiArtist) []ArtistRef {
	refs := make([]ArtistRef, 0, len(artists))
	for _, a := range artists {
		refs = append(refs, ArtistRef{Name: a.Name})
	}
	return refs
}

func serializeTrack(t apiTrack) Track {
	return Track{
		Name: t.Name,
		Album: AlbumRef{
			Name:        t.Album.Name,
			ReleaseDate: t.Album.ReleaseDate,
			ImageURL:    firstImageURL(t.Album.Images),
		},
		Artists:  artistRefs(t.Artists),
		Duration: shared.FormatDuration(t.DurationMS),
	}
}

func serializeSavedTrack(item savedTrackItem) Track {
	track := apiTrack{}
	if item.Track != nil {
		track = *item.Track
	}
	t := serializeTrack(track)
	t.AddedAt = optString(item.AddedAt)
	return t
}

func serializeAlbum(item savedAlbumItem) Album {
	return Album{
		Name:        item.Album.Name,
		Artists:     artistRefs(item.Album.Artists),
		ReleaseDate: item.Album.ReleaseDate,
		TotalTracks: item.Album.TotalTracks,
		ImageURL:    firstImageURL(item.Album.Images),
		AddedAt:     optString(item.AddedAt),
	}
}

func serializeArtist(a apiFullArtist) Artist {
	genres := a.Genres
	if genres == nil {
		genres = []string{}
	}
	return Artist{
		Name:      a.Name,
		Genres:    genres,
		ImageURL:  firstImageURL(a.Images),
		Followers: a.Followers.Total,
	}
}

func serializePlaylist(info apiPlaylist, tracks []Track) Playlist {
	owner := info.Owner.DisplayName
	if owner == "" {
		owner = info.Owner.ID
	}
	if tracks == nil {
		tracks = []Track{}
	}
	return Playlist{
		ID:          info.ID,
		Name:        info.Name,
		Description: info.Description,
		Owner:       owner,
		ImageURL:    firstImageURL(info.Images),
		Tracks:      tracks,
	}
}
