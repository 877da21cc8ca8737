package tasks

import "fmt"

// ProgressUpdate represents a progress event during a library dump.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number
	Total   int    // Total steps
	Message string // Human-readable message for display
	Count   int    // Records fetched, set on completion updates
}

// Operation phase enumeration
type Phase int

const (
	FetchTracks Phase = iota
	FetchPlaylists
	FetchAlbums
	FetchArtists
)

func (p Phase) String() string {
	switch p {
	case FetchTracks:
		return "fetch_tracks"
	case FetchPlaylists:
		return "fetch_playlists"
	case FetchAlbums:
		return "fetch_albums"
	case FetchArtists:
		return "fetch_artists"
	default:
		return ""
	}
}

func fetchUpdate(phase Phase, step, total int, message string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: message,
	}
}

func fetchedUpdate(phase Phase, step, total, count int, resource string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %d %s", step, total, count, resource),
		Count:   count,
	}
}
