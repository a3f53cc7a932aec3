package view

import (
	"context"
	"sync"

	"github.com/vrstep/wawatch/apiclient"
)

// searchPerPage is the search view's fixed page size.
const searchPerPage = 24

// Search drives the search results view: one query, accumulated pages,
// and an inline error. Changing the query starts a new pager
// generation so a slow response for the old query cannot overwrite the
// new results.
type Search struct {
	client *apiclient.Client
	pager  *Pager[apiclient.Anime]

	mu    sync.Mutex
	query string
	err   error
}

// NewSearch creates the search view controller.
func NewSearch(client *apiclient.Client) *Search {
	return &Search{
		client: client,
		pager:  NewPager[apiclient.Anime](searchPerPage),
	}
}

// SetQuery adopts a new query and fetches its first page. An empty
// query clears the results without a fetch.
func (s *Search) SetQuery(ctx context.Context, query string) error {
	s.mu.Lock()
	s.query = query
	s.err = nil
	s.mu.Unlock()

	s.pager.Reset()
	if query == "" {
		gen := s.pager.BeginPage(1)
		s.pager.Apply(gen, 1, nil, 0)
		return nil
	}
	return s.fetch(ctx, 1)
}

// LoadMore fetches the next page for the current query, when available.
func (s *Search) LoadMore(ctx context.Context) error {
	page, ok := s.pager.NextPage()
	if !ok {
		return nil
	}
	return s.fetch(ctx, page)
}

func (s *Search) fetch(ctx context.Context, page int) error {
	s.mu.Lock()
	query := s.query
	s.mu.Unlock()

	gen := s.pager.BeginPage(page)
	result, err := s.client.SearchAnime(ctx, query, page, searchPerPage)
	if err != nil {
		s.pager.Fail(gen)
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return err
	}
	if result == nil {
		s.pager.Apply(gen, page, nil, 0)
		return nil
	}
	s.pager.Apply(gen, page, result.Data, result.Meta.Total)
	return nil
}

// Query returns the current search query.
func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Results returns the accumulated search results.
func (s *Search) Results() []apiclient.Anime {
	return s.pager.Items()
}

// Total returns the server-reported result count.
func (s *Search) Total() int {
	return s.pager.Total()
}

// CanLoadMore reports whether more results can be requested.
func (s *Search) CanLoadMore() bool {
	return s.pager.CanLoadMore()
}

// Err returns the error recorded by the last fetch.
func (s *Search) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
