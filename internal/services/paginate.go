package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	neturl "net/url"

	"github.com/smorcillor/spotify-profile-dump-cli/internal/shared"
)

// StatusError reports a terminal non-2xx response after the retry policy has
// given up on it.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spotify API error: status %d", e.StatusCode)
}

// checkStatus classifies a settled response. 401 and 403 map to the session
// sentinels; any other non-2xx becomes a StatusError carrying the code.
func checkStatus(resp *Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return shared.ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return shared.ErrForbidden
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

// pageEnvelope is the offset-paginated collection shape shared by saved
// tracks, saved albums, playlist listings, and playlist track listings.
type pageEnvelope[T any] struct {
	Items []T     `json:"items"`
	Next  *string `json:"next"`
}

// fetchPaged walks a next-URL paginated collection, accumulating every item
// in server order. A page with zero items but a non-null next URL continues;
// only a null next URL ends the walk.
func fetchPaged[T any](ctx context.Context, c *Client, url string) ([]T, error) {
	var items []T

	for url != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.retry.run(ctx, c.logger, func() (*Response, error) {
			return c.get(ctx, url)
		})
		if err != nil {
			return nil, err
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		var page pageEnvelope[T]
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, fmt.Errorf("failed to decode page: %w", err)
		}

		items = append(items, page.Items...)

		if page.Next == nil {
			break
		}
		url = *page.Next
	}

	return items, nil
}

// fetchCursorPaged walks a cursor-paginated collection. decode unwraps one
// page body into its items and the next cursor token; an empty token ends the
// walk, otherwise the next request URL is baseURL with after=<token>
// appended. Empty pages with a cursor continue, same as fetchPaged.
func fetchCursorPaged[T any](ctx context.Context, c *Client, baseURL string, decode func([]byte) ([]T, string, error)) ([]T, error) {
	var items []T
	url := baseURL

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.retry.run(ctx, c.logger, func() (*Response, error) {
			return c.get(ctx, url)
		})
		if err != nil {
			return nil, err
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		pageItems, after, err := decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode page: %w", err)
		}

		items = append(items, pageItems...)

		if after == "" {
			return items, nil
		}
		url = baseURL + "&after=" + neturl.QueryEscape(after)
	}
}
