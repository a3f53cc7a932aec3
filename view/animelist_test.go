package view_test

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/view"
)

func newListBackend(t *testing.T, authed bool, total int) (*env, *view.AnimeList) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/me/animelist/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = w.Write([]byte(`{"ID":1,"AnimeExternalID":101,"Status":"COMPLETED"}`))
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		n := min(20, total-(page-1)*20)
		entries := make([]string, n)
		for i := 0; i < n; i++ {
			id := (page-1)*20 + i + 1
			entries[i] = fmt.Sprintf(`{"ID":%d,"AnimeExternalID":%d,"Status":"WATCHING"}`, id, 100+id)
		}
		fmt.Fprintf(w, `{"data":[%s],"meta":{"total":%d,"page":%d}}`,
			strings.Join(entries, ","), total, page)
	})
	mux.HandleFunc("/api/v1/me/animelist/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":` + strconv.Itoa(total) + `,"by_status":{"WATCHING":` + strconv.Itoa(total) + `}}`))
	})

	e := newEnv(t, authed, mux)
	return e, view.NewAnimeList(e.client, e.store, e.nav)
}

func TestAnimeList_RedirectsAnonymous(t *testing.T) {
	t.Parallel()

	e, list := newListBackend(t, false, 5)
	state, err := list.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, view.GateRedirected, state)
	assert.Equal(t, "#/login", e.nav.Fragment())
	assert.Empty(t, list.Entries())
}

func TestAnimeList_LoadsEntriesAndStats(t *testing.T) {
	t.Parallel()

	e, list := newListBackend(t, true, 25)
	state, err := list.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, view.GateReady, state)

	assert.Len(t, list.Entries(), 20)
	assert.Equal(t, 25, list.Total())
	assert.True(t, list.CanLoadMore())

	stats := list.Stats()
	require.NotNil(t, stats)
	assert.Equal(t, 25, stats.Total)

	var sawPerPage bool
	for _, req := range e.recorded() {
		if strings.Contains(req, "/animelist/?") {
			assert.Contains(t, req, "perPage=20")
			sawPerPage = true
		}
	}
	assert.True(t, sawPerPage)
}

func TestAnimeList_LoadMoreAppends(t *testing.T) {
	t.Parallel()

	_, list := newListBackend(t, true, 25)
	_, err := list.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, list.LoadMore(context.Background()))
	assert.Len(t, list.Entries(), 25)
	assert.False(t, list.CanLoadMore())
}

func TestAnimeList_SetFilterRefetchesFromPageOne(t *testing.T) {
	t.Parallel()

	e, list := newListBackend(t, true, 25)
	_, err := list.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, list.LoadMore(context.Background()))
	require.Len(t, list.Entries(), 25)

	require.NoError(t, list.SetFilter(context.Background(), apiclient.StatusCompleted))
	assert.Equal(t, apiclient.StatusCompleted, list.Filter())
	assert.Len(t, list.Entries(), 20, "filter change restarts at page 1")

	reqs := e.recorded()
	last := reqs[len(reqs)-1]
	assert.Contains(t, last, "status=COMPLETED")
	assert.Contains(t, last, "page=1")
}

func TestAnimeList_SetEntryStatusEditsInPlace(t *testing.T) {
	t.Parallel()

	_, list := newListBackend(t, true, 3)
	_, err := list.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Entries(), 3)

	require.NoError(t, list.SetEntryStatus(context.Background(), 102, apiclient.StatusCompleted))
	for _, e := range list.Entries() {
		if e.AnimeID == 102 {
			assert.Equal(t, apiclient.StatusCompleted, e.Status)
		} else {
			assert.Equal(t, apiclient.StatusWatching, e.Status)
		}
	}
}

func TestAnimeList_RemovalDropsEntryLocally(t *testing.T) {
	t.Parallel()

	_, list := newListBackend(t, true, 3)
	_, err := list.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, list.SetEntryStatus(context.Background(), 102, apiclient.StatusRemoving))
	entries := list.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotEqual(t, 102, e.AnimeID)
	}
}
