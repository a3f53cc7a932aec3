package view

import (
	"context"
	"sync"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/pkg/async"
)

// homeRailSize is the fixed page size of every home rail.
const homeRailSize = 12

// Home fetches the four landing rails. The rails are independent
// calls, issued concurrently; a failing rail leaves the others intact
// and records the first error for inline display.
type Home struct {
	client *apiclient.Client

	mu       sync.Mutex
	popular  []apiclient.Anime
	trending []apiclient.Anime
	upcoming []apiclient.Anime
	recent   []apiclient.Anime
	err      error
	loading  bool
}

// NewHome creates the home view controller.
func NewHome(client *apiclient.Client) *Home {
	return &Home{client: client}
}

// Load fetches all four rails concurrently and returns the first rail
// error, if any. Rails that succeeded are kept either way.
func (h *Home) Load(ctx context.Context) error {
	h.mu.Lock()
	h.loading = true
	h.err = nil
	h.mu.Unlock()

	rail := func(fetch func(context.Context, int, int) (*apiclient.AnimePage, error)) *async.Future[[]apiclient.Anime] {
		return async.Go(ctx, func(ctx context.Context) ([]apiclient.Anime, error) {
			page, err := fetch(ctx, 1, homeRailSize)
			if err != nil {
				return nil, err
			}
			if page == nil {
				return nil, nil
			}
			return page.Data, nil
		})
	}

	popular := rail(h.client.PopularAnime)
	trending := rail(h.client.TrendingAnime)
	upcoming := rail(h.client.UpcomingAnime)
	recent := rail(h.client.RecentlyReleasedAnime)

	firstErr := async.AwaitAll(popular, trending, upcoming, recent)

	h.mu.Lock()
	defer h.mu.Unlock()
	if data, err := popular.Await(); err == nil {
		h.popular = data
	}
	if data, err := trending.Await(); err == nil {
		h.trending = data
	}
	if data, err := upcoming.Await(); err == nil {
		h.upcoming = data
	}
	if data, err := recent.Await(); err == nil {
		h.recent = data
	}
	h.err = firstErr
	h.loading = false
	return firstErr
}

// Popular returns the popular rail.
func (h *Home) Popular() []apiclient.Anime {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.popular
}

// Trending returns the trending rail.
func (h *Home) Trending() []apiclient.Anime {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.trending
}

// Upcoming returns the upcoming rail.
func (h *Home) Upcoming() []apiclient.Anime {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.upcoming
}

// RecentlyReleased returns the recently released rail.
func (h *Home) RecentlyReleased() []apiclient.Anime {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recent
}

// Err returns the error recorded by the last Load.
func (h *Home) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Loading reports whether a Load is in progress.
func (h *Home) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}
