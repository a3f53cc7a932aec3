package view

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/pkg/async"
	"github.com/vrstep/wawatch/session"
)

// recommendationsSize is the fixed size of the detail recommendations
// rail.
const recommendationsSize = 10

// ErrInvalidAnimeID reports a detail route whose id segment is not a
// number. No request is made for such a route.
var ErrInvalidAnimeID = errors.New("view: invalid anime id")

// Detail drives the single-anime page: the full record with its watch
// providers, a recommendations rail, and, for a logged-in user, the
// anime's entry on their list.
type Detail struct {
	client *apiclient.Client
	store  *session.Store

	mu              sync.Mutex
	animeID         int
	detail          *apiclient.AnimeDetail
	recommendations []apiclient.Anime
	entry           *apiclient.ListEntry
	err             error
	loading         bool
}

// NewDetail creates the detail view controller.
func NewDetail(client *apiclient.Client, store *session.Store) *Detail {
	return &Detail{client: client, store: store}
}

// Load resolves the route's id segment and fetches the page. A
// non-numeric id yields ErrInvalidAnimeID without touching the
// network. The recommendations rail and the list-entry lookup are
// best-effort: their failure leaves the record itself intact.
func (d *Detail) Load(ctx context.Context, rawID string) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		d.mu.Lock()
		d.animeID = 0
		d.detail = nil
		d.recommendations = nil
		d.entry = nil
		d.err = ErrInvalidAnimeID
		d.loading = false
		d.mu.Unlock()
		return ErrInvalidAnimeID
	}

	d.mu.Lock()
	d.animeID = id
	d.err = nil
	d.loading = true
	d.mu.Unlock()

	detail := async.Go(ctx, func(ctx context.Context) (*apiclient.AnimeDetail, error) {
		return d.client.AnimeDetails(ctx, id)
	})
	recs := async.Go(ctx, func(ctx context.Context) ([]apiclient.Anime, error) {
		page, err := d.client.AnimeRecommendations(ctx, 1, recommendationsSize)
		if err != nil || page == nil {
			return nil, err
		}
		return page.Data, nil
	})
	entry := async.Go(ctx, func(ctx context.Context) (*apiclient.ListEntry, error) {
		if d.store == nil || d.store.User() == nil {
			return nil, nil
		}
		e, err := d.client.ListEntryFor(ctx, id)
		if err != nil {
			// Not on the list is a normal outcome, not a page error.
			var apiErr apiclient.Error
			if errors.As(err, &apiErr) && apiErr.Status == 404 {
				return nil, nil
			}
			return nil, err
		}
		return e, nil
	})

	record, recordErr := detail.Await()
	recItems, _ := recs.Await()
	listEntry, _ := entry.Await()

	d.mu.Lock()
	defer d.mu.Unlock()
	if recordErr != nil {
		d.detail = nil
		d.err = recordErr
		d.loading = false
		return recordErr
	}
	d.detail = record
	d.recommendations = recItems
	d.entry = listEntry
	d.loading = false
	return nil
}

// SetStatus adds the anime to the user's list or moves it to the given
// status. StatusRemoving deletes the entry instead. The local entry
// mirrors the outcome on success.
func (d *Detail) SetStatus(ctx context.Context, status apiclient.WatchStatus) error {
	d.mu.Lock()
	id := d.animeID
	d.mu.Unlock()
	if id == 0 {
		return ErrInvalidAnimeID
	}

	entry, err := d.client.SetListEntry(ctx, apiclient.ListEntryInput{AnimeID: id, Status: status})
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if status == apiclient.StatusRemoving {
		d.entry = nil
		return nil
	}
	if entry != nil {
		d.entry = entry
	} else if d.entry != nil {
		d.entry.Status = status
	}
	return nil
}

// Anime returns the loaded detail record, or nil.
func (d *Detail) Anime() *apiclient.AnimeDetail {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detail
}

// Recommendations returns the recommendations rail.
func (d *Detail) Recommendations() []apiclient.Anime {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.recommendations
}

// ListEntry returns the user's list entry for this anime, or nil when
// the anime is not on the list or nobody is logged in.
func (d *Detail) ListEntry() *apiclient.ListEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entry
}

// Err returns the error recorded by the last Load.
func (d *Detail) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Loading reports whether a Load is in progress.
func (d *Detail) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}
