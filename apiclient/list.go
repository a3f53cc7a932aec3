package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const listPathPrefix = "/api/v1/me/animelist"

// MyAnimeList fetches one page of the user's anime list, optionally
// filtered by watch status. An empty status means all entries.
func (c *Client) MyAnimeList(ctx context.Context, status WatchStatus, page, perPage int) (*ListPage, error) {
	return call[ListPage](ctx, c, Request{
		Endpoint: fmt.Sprintf("%s/?status=%s&page=%d&perPage=%d",
			listPathPrefix, url.QueryEscape(string(status)), page, perPage),
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}

// SetListEntry adds an anime to the user's list or updates its status,
// keyed by the anime's external catalog id. Sending StatusRemoving
// drops the entry instead.
func (c *Client) SetListEntry(ctx context.Context, input ListEntryInput) (*ListEntry, error) {
	return call[ListEntry](ctx, c, Request{
		Endpoint:            listPathPrefix + "/",
		Method:              http.MethodPost,
		Body:                input,
		RequiresCredentials: true,
	})
}

// UpdateListEntry patches individual fields of a list entry, addressed
// by the entry's own id.
func (c *Client) UpdateListEntry(ctx context.Context, entryID int, patch ListEntryPatch) (*ListEntry, error) {
	return call[ListEntry](ctx, c, Request{
		Endpoint:            fmt.Sprintf("%s/entry/%d", listPathPrefix, entryID),
		Method:              http.MethodPatch,
		Body:                patch,
		RequiresCredentials: true,
	})
}

// DeleteListEntry removes a list entry by its id.
func (c *Client) DeleteListEntry(ctx context.Context, entryID int) error {
	_, err := c.Do(ctx, Request{
		Endpoint:            fmt.Sprintf("%s/entry/%d", listPathPrefix, entryID),
		Method:              http.MethodDelete,
		RequiresCredentials: true,
	})
	return err
}

// ListEntryFor looks up the user's list entry for a specific anime by
// its external catalog id. A 404 means the anime is not on the list.
func (c *Client) ListEntryFor(ctx context.Context, animeID int) (*ListEntry, error) {
	return call[ListEntry](ctx, c, Request{
		Endpoint:            fmt.Sprintf("%s/status/%d", listPathPrefix, animeID),
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}

// ListStats fetches the aggregate counts of the user's list.
func (c *Client) ListStats(ctx context.Context) (*ListStats, error) {
	return call[ListStats](ctx, c, Request{
		Endpoint:            listPathPrefix + "/stats",
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}

// PublicAnimeList fetches another user's public anime list. The only
// list read that works without a session.
func (c *Client) PublicAnimeList(ctx context.Context, username string, page, perPage int) (*ListPage, error) {
	return call[ListPage](ctx, c, Request{
		Endpoint: fmt.Sprintf("/api/v1/users/%s/animelist?page=%d&perPage=%d",
			url.PathEscape(username), page, perPage),
		Method: http.MethodGet,
	})
}

// MyHistory fetches one page of the user's detail-page view history,
// most recent first.
func (c *Client) MyHistory(ctx context.Context, page, perPage int) (*HistoryPage, error) {
	return call[HistoryPage](ctx, c, Request{
		Endpoint:            fmt.Sprintf("/api/v1/me/history/?page=%d&perPage=%d", page, perPage),
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}
