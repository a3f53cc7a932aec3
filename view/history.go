package view

import (
	"context"
	"sync"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/router"
	"github.com/vrstep/wawatch/session"
)

// historyPerPage is the history view's fixed page size.
const historyPerPage = 30

// History drives the authenticated view-history page, most recent
// first.
type History struct {
	client *apiclient.Client
	store  *session.Store
	nav    *router.Navigator
	pager  *Pager[apiclient.HistoryEntry]

	mu  sync.Mutex
	err error
}

// NewHistory creates the history view controller.
func NewHistory(client *apiclient.Client, store *session.Store, nav *router.Navigator) *History {
	return &History{
		client: client,
		store:  store,
		nav:    nav,
		pager:  NewPager[apiclient.HistoryEntry](historyPerPage),
	}
}

// Load gates on the session and fetches the first history page.
func (h *History) Load(ctx context.Context) (GateState, error) {
	if state := Guard(h.store, h.nav); state != GateReady {
		return state, nil
	}
	h.pager.Reset()
	return GateReady, h.fetch(ctx, 1)
}

// LoadMore fetches the next history page, when available.
func (h *History) LoadMore(ctx context.Context) error {
	page, ok := h.pager.NextPage()
	if !ok {
		return nil
	}
	return h.fetch(ctx, page)
}

func (h *History) fetch(ctx context.Context, page int) error {
	gen := h.pager.BeginPage(page)
	result, err := h.client.MyHistory(ctx, page, historyPerPage)
	if err != nil {
		h.pager.Fail(gen)
		h.mu.Lock()
		h.err = err
		h.mu.Unlock()
		return err
	}
	if result == nil {
		h.pager.Apply(gen, page, nil, 0)
		return nil
	}
	h.pager.Apply(gen, page, result.Data, result.Meta.Total)
	return nil
}

// Entries returns the accumulated history entries.
func (h *History) Entries() []apiclient.HistoryEntry {
	return h.pager.Items()
}

// Total returns the server-reported history length.
func (h *History) Total() int {
	return h.pager.Total()
}

// CanLoadMore reports whether more entries can be requested.
func (h *History) CanLoadMore() bool {
	return h.pager.CanLoadMore()
}

// Err returns the error recorded by the last fetch.
func (h *History) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}
