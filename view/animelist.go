package view

import (
	"context"
	"sync"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/router"
	"github.com/vrstep/wawatch/session"
)

// animeListPerPage is the anime list view's fixed page size.
const animeListPerPage = 20

// AnimeList drives the authenticated "my list" view: paged entries
// filtered by watch status, with the aggregate counts alongside.
// Status changes made from the view are mirrored into the loaded page
// instead of refetching it.
type AnimeList struct {
	client *apiclient.Client
	store  *session.Store
	nav    *router.Navigator
	pager  *Pager[apiclient.ListEntry]

	mu     sync.Mutex
	filter apiclient.WatchStatus
	stats  *apiclient.ListStats
	err    error
}

// NewAnimeList creates the anime list view controller. An empty filter
// shows every entry.
func NewAnimeList(client *apiclient.Client, store *session.Store, nav *router.Navigator) *AnimeList {
	return &AnimeList{
		client: client,
		store:  store,
		nav:    nav,
		pager:  NewPager[apiclient.ListEntry](animeListPerPage),
	}
}

// Load gates on the session and fetches the first page plus the list
// stats.
func (l *AnimeList) Load(ctx context.Context) (GateState, error) {
	if state := Guard(l.store, l.nav); state != GateReady {
		return state, nil
	}

	l.pager.Reset()
	if err := l.fetch(ctx, 1); err != nil {
		return GateReady, err
	}

	stats, err := l.client.ListStats(ctx)
	if err == nil {
		l.mu.Lock()
		l.stats = stats
		l.mu.Unlock()
	}
	return GateReady, nil
}

// SetFilter adopts a new status filter and refetches from page 1. The
// generation bump discards any response still in flight for the old
// filter.
func (l *AnimeList) SetFilter(ctx context.Context, status apiclient.WatchStatus) error {
	l.mu.Lock()
	l.filter = status
	l.err = nil
	l.mu.Unlock()

	l.pager.Reset()
	return l.fetch(ctx, 1)
}

// LoadMore fetches the next page for the current filter, when
// available.
func (l *AnimeList) LoadMore(ctx context.Context) error {
	page, ok := l.pager.NextPage()
	if !ok {
		return nil
	}
	return l.fetch(ctx, page)
}

func (l *AnimeList) fetch(ctx context.Context, page int) error {
	l.mu.Lock()
	filter := l.filter
	l.mu.Unlock()

	gen := l.pager.BeginPage(page)
	result, err := l.client.MyAnimeList(ctx, filter, page, animeListPerPage)
	if err != nil {
		l.pager.Fail(gen)
		l.mu.Lock()
		l.err = err
		l.mu.Unlock()
		return err
	}
	if result == nil {
		l.pager.Apply(gen, page, nil, 0)
		return nil
	}
	l.pager.Apply(gen, page, result.Data, result.Meta.Total)
	return nil
}

// SetEntryStatus moves one entry to a new status, or removes it when
// status is StatusRemoving. On success the loaded page is edited in
// place so the view reflects the change without a refetch.
func (l *AnimeList) SetEntryStatus(ctx context.Context, animeID int, status apiclient.WatchStatus) error {
	_, err := l.client.SetListEntry(ctx, apiclient.ListEntryInput{AnimeID: animeID, Status: status})
	if err != nil {
		return err
	}

	l.pager.mutate(func(items []apiclient.ListEntry) []apiclient.ListEntry {
		if status == apiclient.StatusRemoving {
			kept := items[:0]
			for _, e := range items {
				if e.AnimeID != animeID {
					kept = append(kept, e)
				}
			}
			return kept
		}
		for i := range items {
			if items[i].AnimeID == animeID {
				items[i].Status = status
			}
		}
		return items
	})
	return nil
}

// Entries returns the accumulated list entries.
func (l *AnimeList) Entries() []apiclient.ListEntry {
	return l.pager.Items()
}

// Filter returns the active status filter; empty means all.
func (l *AnimeList) Filter() apiclient.WatchStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// Stats returns the aggregate counts fetched alongside the list.
func (l *AnimeList) Stats() *apiclient.ListStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Total returns the server-reported entry count for the active filter.
func (l *AnimeList) Total() int {
	return l.pager.Total()
}

// CanLoadMore reports whether more entries can be requested.
func (l *AnimeList) CanLoadMore() bool {
	return l.pager.CanLoadMore()
}

// Err returns the error recorded by the last fetch.
func (l *AnimeList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
