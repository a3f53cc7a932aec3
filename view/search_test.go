package view_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrstep/wawatch/view"
)

func newSearchBackend(t *testing.T, total int) (*env, *view.Search) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/ext/anime/search", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		n := min(24, total-(page-1)*24)
		animePage(w, page, n, total)
	})

	e := newEnv(t, true, mux)
	return e, view.NewSearch(e.client)
}

func TestSearch_SetQueryFetchesFirstPage(t *testing.T) {
	t.Parallel()

	e, search := newSearchBackend(t, 30)
	require.NoError(t, search.SetQuery(context.Background(), "frieren"))

	assert.Equal(t, "frieren", search.Query())
	assert.Len(t, search.Results(), 24)
	assert.Equal(t, 30, search.Total())
	assert.True(t, search.CanLoadMore())

	reqs := e.recorded()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0], "q=frieren")
	assert.Contains(t, reqs[0], "perPage=24")
}

func TestSearch_EmptyQueryClearsWithoutFetch(t *testing.T) {
	t.Parallel()

	e, search := newSearchBackend(t, 30)
	require.NoError(t, search.SetQuery(context.Background(), "frieren"))
	require.Len(t, search.Results(), 24)

	require.NoError(t, search.SetQuery(context.Background(), ""))
	assert.Empty(t, search.Results())
	assert.Equal(t, 0, search.Total())
	assert.False(t, search.CanLoadMore())
	assert.Len(t, e.recorded(), 1, "clearing the query must not hit the backend")
}

func TestSearch_LoadMoreAppends(t *testing.T) {
	t.Parallel()

	_, search := newSearchBackend(t, 30)
	require.NoError(t, search.SetQuery(context.Background(), "frieren"))
	require.NoError(t, search.LoadMore(context.Background()))

	assert.Len(t, search.Results(), 30)
	assert.False(t, search.CanLoadMore(), "all results loaded")

	// Another LoadMore is a no-op.
	require.NoError(t, search.LoadMore(context.Background()))
	assert.Len(t, search.Results(), 30)
}

func TestSearch_NewQueryReplacesResults(t *testing.T) {
	t.Parallel()

	_, search := newSearchBackend(t, 30)
	require.NoError(t, search.SetQuery(context.Background(), "frieren"))
	require.NoError(t, search.LoadMore(context.Background()))
	require.Len(t, search.Results(), 30)

	require.NoError(t, search.SetQuery(context.Background(), "mushoku"))
	assert.Len(t, search.Results(), 24, "new query starts from page 1")
}

func TestSearch_FetchErrorIsRecorded(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/ext/anime/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"search backend down"}`))
	})

	e := newEnv(t, true, mux)
	search := view.NewSearch(e.client)

	err := search.SetQuery(context.Background(), "frieren")
	require.Error(t, err)
	assert.Equal(t, err, search.Err())
	assert.Empty(t, search.Results())
}
