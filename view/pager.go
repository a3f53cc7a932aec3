package view

import "sync"

// Pager accumulates paged results the way every paginated view does:
// a server page 1 replaces the accumulated items, later pages append,
// and "load more" is available only while the accumulated count is
// below the server-reported total and no fetch is in flight.
//
// Each Reset starts a new generation. Responses are committed with the
// generation token handed out when their fetch began, so a stale
// response overtaken by a filter or query change is discarded instead
// of overwriting newer state.
type Pager[T any] struct {
	mu       sync.Mutex
	perPage  int
	page     int
	total    int
	gen      int
	items    []T
	inFlight bool
}

// NewPager creates a Pager at page 1 with the view's fixed page size.
func NewPager[T any](perPage int) *Pager[T] {
	return &Pager[T]{perPage: perPage, page: 1}
}

// Reset returns to the first page, bumps the generation, and clears
// any in-flight marker. Accumulated items stay visible until the next
// page-1 apply replaces them.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = 1
	p.gen++
	p.inFlight = false
}

// BeginPage marks a fetch for the given page as in flight and returns
// the generation token to pass to Apply or Fail.
func (p *Pager[T]) BeginPage(page int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = true
	return p.gen
}

// Apply commits one server page: replace on page 1, append otherwise,
// and adopt the reported total. A token from a superseded generation
// is discarded. Reports whether the page was applied.
func (p *Pager[T]) Apply(gen, page int, items []T, total int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		return false
	}

	p.inFlight = false
	if page == 1 {
		p.items = append([]T(nil), items...)
	} else {
		p.items = append(p.items, items...)
	}
	p.page = page
	p.total = total
	return true
}

// Fail clears the in-flight marker for a fetch that errored. Stale
// generations are ignored, matching Apply.
func (p *Pager[T]) Fail(gen int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen == p.gen {
		p.inFlight = false
	}
}

// Items returns a copy of the accumulated results.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

// Len returns the accumulated result count.
func (p *Pager[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Page returns the last applied page number.
func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// PerPage returns the view's fixed page size.
func (p *Pager[T]) PerPage() int {
	return p.perPage
}

// Total returns the server-reported total.
func (p *Pager[T]) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Loading reports whether a fetch is in flight.
func (p *Pager[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// CanLoadMore reports whether more results remain and no fetch is in
// flight.
func (p *Pager[T]) CanLoadMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items) < p.total && !p.inFlight
}

// NextPage returns the page to request to extend the results, or false
// when nothing more can be loaded right now.
func (p *Pager[T]) NextPage() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.items) >= p.total || p.inFlight {
		return 0, false
	}
	return p.page + 1, true
}

// mutate edits the accumulated items in place under the lock. Used by
// views that mirror server-side mutations locally.
func (p *Pager[T]) mutate(fn func(items []T) []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = fn(p.items)
}
