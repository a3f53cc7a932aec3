package view_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/router"
	"github.com/vrstep/wawatch/session"
)

// env bundles the pieces every view controller needs, backed by a
// scripted server. Requests are recorded as "METHOD path?query" for
// assertions.
type env struct {
	client *apiclient.Client
	store  *session.Store
	nav    *router.Navigator

	mu       sync.Mutex
	requests []string
}

// newEnv starts a backend serving the given mux plus the session
// validation endpoint, and returns an initialized environment. With
// authed false the validation fails and the store resolves anonymous.
func newEnv(t *testing.T, authed bool, mux *http.ServeMux) *env {
	t.Helper()

	e := &env{}
	if mux == nil {
		mux = http.NewServeMux()
	}
	mux.HandleFunc("/api/v1/auth/validate", func(w http.ResponseWriter, r *http.Request) {
		if !authed {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":7,"username":"rei","email":"rei@example.com"}}`))
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.mu.Lock()
		e.requests = append(e.requests, r.Method+" "+r.URL.RequestURI())
		e.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	e.client = apiclient.New(apiclient.Config{BaseURL: srv.URL})
	e.nav = router.NewNavigator()
	e.store = session.New(e.client, e.nav)
	e.store.Init(context.Background())
	return e
}

func (e *env) recorded() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.requests...)
}

// animePage writes a catalog page of n entries with the given total.
func animePage(w http.ResponseWriter, page, n, total int) {
	entries := make([]string, n)
	for i := 0; i < n; i++ {
		id := (page-1)*n + i + 1
		entries[i] = fmt.Sprintf(`{"id":%d,"title":"anime %d"}`, id, id)
	}
	fmt.Fprintf(w, `{"data":[%s],"meta":{"total":%d,"page":%d}}`,
		strings.Join(entries, ","), total, page)
}
