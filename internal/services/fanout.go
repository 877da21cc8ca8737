package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// populatePlaylists fetches every playlist's track listing concurrently with
// a bounded worker pool and returns records in input order: each result lands
// in the slot matching its input index, never in completion order.
//
// Failures are isolated per playlist. Any sub-fetch error, including 401/403,
// degrades that one record to an empty track listing with an error
// annotation; siblings and the overall call are unaffected. This is a
// deliberate asymmetry with the top-level fetchers, which abort the session
// on 401/403.
func (c *Client) populatePlaylists(ctx context.Context, infos []apiPlaylist) []Playlist {
	results := make([]Playlist, len(infos))
	if len(infos) == 0 {
		return results
	}

	workers := c.workers
	if workers > len(infos) {
		workers = len(infos)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				info := infos[idx]
				tracks, err := c.playlistTracks(ctx, info.ID)
				if err != nil {
					c.logger.Warn("playlist track fetch failed", "playlist", info.ID, "err", err)
					p := serializePlaylist(info, nil)
					p.Error = errorAnnotation(err)
					results[idx] = p
					continue
				}
				results[idx] = serializePlaylist(info, tracks)
			}
		}()
	}

	// Stop dispatching promptly on cancellation; in-flight fetches fail on
	// their own context checks.
	dispatched := len(infos)
	for i := range infos {
		select {
		case <-ctx.Done():
			dispatched = i
		case jobs <- i:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()

	for i := dispatched; i < len(infos); i++ {
		p := serializePlaylist(infos[i], nil)
		p.Error = ctx.Err().Error()
		results[i] = p
	}

	return results
}

// errorAnnotation renders a sub-fetch failure as the per-playlist error
// string attached to the record.
func errorAnnotation(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("HTTP Error %d", se.StatusCode)
	}
	return err.Error()
}
