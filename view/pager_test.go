package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrstep/wawatch/view"
)

func TestPager_FirstPageReplaces(t *testing.T) {
	t.Parallel()

	p := view.NewPager[int](3)

	gen := p.BeginPage(1)
	require.True(t, p.Apply(gen, 1, []int{1, 2, 3}, 7))
	assert.Equal(t, []int{1, 2, 3}, p.Items())

	// A fresh page 1 replaces, it does not append.
	gen = p.BeginPage(1)
	require.True(t, p.Apply(gen, 1, []int{9, 8, 7}, 7))
	assert.Equal(t, []int{9, 8, 7}, p.Items())
	assert.Equal(t, 1, p.Page())
}

func TestPager_LaterPagesAppend(t *testing.T) {
	t.Parallel()

	p := view.NewPager[int](3)

	gen := p.BeginPage(1)
	p.Apply(gen, 1, []int{1, 2, 3}, 7)

	page, ok := p.NextPage()
	require.True(t, ok)
	assert.Equal(t, 2, page)

	gen = p.BeginPage(page)
	p.Apply(gen, page, []int{4, 5, 6}, 7)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, p.Items())
	assert.Equal(t, 2, p.Page())
}

func TestPager_CanLoadMore(t *testing.T) {
	t.Parallel()

	p := view.NewPager[int](3)
	assert.False(t, p.CanLoadMore(), "empty pager with zero total")

	gen := p.BeginPage(1)
	assert.False(t, p.CanLoadMore(), "never while a fetch is in flight")
	p.Apply(gen, 1, []int{1, 2, 3}, 5)
	assert.True(t, p.CanLoadMore())

	gen = p.BeginPage(2)
	p.Apply(gen, 2, []int{4, 5}, 5)
	assert.False(t, p.CanLoadMore(), "everything loaded")

	_, ok := p.NextPage()
	assert.False(t, ok)
}

func TestPager_StaleGenerationDiscarded(t *testing.T) {
	t.Parallel()

	p := view.NewPager[int](3)

	stale := p.BeginPage(1)
	p.Reset()
	fresh := p.BeginPage(1)
	require.True(t, p.Apply(fresh, 1, []int{10, 20}, 2))

	// The response for the superseded fetch arrives late and must not
	// overwrite the fresh results.
	assert.False(t, p.Apply(stale, 1, []int{1, 2, 3}, 9))
	assert.Equal(t, []int{10, 20}, p.Items())
	assert.Equal(t, 2, p.Total())
}

func TestPager_FailClearsInFlight(t *testing.T) {
	t.Parallel()

	p := view.NewPager[int](3)
	gen := p.BeginPage(1)
	p.Apply(gen, 1, []int{1, 2, 3}, 9)

	gen = p.BeginPage(2)
	require.True(t, p.Loading())
	p.Fail(gen)
	assert.False(t, p.Loading())
	assert.True(t, p.CanLoadMore(), "a failed fetch can be retried")
	assert.Equal(t, []int{1, 2, 3}, p.Items(), "failure keeps loaded items")
}

func TestPager_ResetKeepsItemsUntilReplaced(t *testing.T) {
	t.Parallel()

	p := view.NewPager[int](3)
	gen := p.BeginPage(1)
	p.Apply(gen, 1, []int{1, 2, 3}, 3)

	p.Reset()
	assert.Equal(t, []int{1, 2, 3}, p.Items(), "old items stay visible while the new page loads")

	gen = p.BeginPage(1)
	p.Apply(gen, 1, []int{4}, 1)
	assert.Equal(t, []int{4}, p.Items())
}

func TestPager_ItemsReturnsCopy(t *testing.T) {
	t.Parallel()

	p := view.NewPager[int](3)
	gen := p.BeginPage(1)
	p.Apply(gen, 1, []int{1, 2, 3}, 3)

	items := p.Items()
	items[0] = 99
	assert.Equal(t, []int{1, 2, 3}, p.Items())
}
