package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/router"
	"github.com/vrstep/wawatch/session"
)

// backend is a scripted auth server counting calls per endpoint.
type backend struct {
	mu        sync.Mutex
	validates int
	logins    int
	total     int

	validateStatus int
	srv            *httptest.Server
}

func newBackend(t *testing.T, validateStatus int) *backend {
	t.Helper()

	b := &backend{validateStatus: validateStatus}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.total++
		switch r.URL.Path {
		case "/api/v1/auth/validate":
			b.validates++
			b.mu.Unlock()
			if b.validateStatus != http.StatusOK {
				w.WriteHeader(b.validateStatus)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			_, _ = w.Write([]byte(`{"user":{"id":7,"username":"rei"}}`))
		case "/api/v1/auth/login":
			b.logins++
			b.mu.Unlock()
			http.SetCookie(w, &http.Cookie{Name: "Authorization", Value: "jwt", Path: "/"})
			_, _ = w.Write([]byte(`{"user":{"id":7,"username":"rei"}}`))
		case "/api/v1/auth/signup":
			b.mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"message":"account created"}`))
		default:
			b.mu.Unlock()
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) counts() (validates, logins, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.validates, b.logins, b.total
}

func newStore(t *testing.T, validateStatus int) (*session.Store, *backend, *router.Navigator) {
	t.Helper()

	b := newBackend(t, validateStatus)
	nav := router.NewNavigator()
	client := apiclient.New(apiclient.Config{BaseURL: b.srv.URL})
	return session.New(client, nav), b, nav
}

func TestStore_StartsLoadingWithoutUser(t *testing.T) {
	t.Parallel()

	store, _, _ := newStore(t, http.StatusOK)
	assert.True(t, store.Loading())
	assert.Nil(t, store.User())
}

func TestInit_SuccessfulValidation(t *testing.T) {
	t.Parallel()

	store, _, _ := newStore(t, http.StatusOK)
	store.Init(context.Background())

	assert.False(t, store.Loading())
	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, "rei", user.Username)
}

func TestInit_FailedValidationIsAnonymous(t *testing.T) {
	t.Parallel()

	store, _, _ := newStore(t, http.StatusUnauthorized)
	store.Init(context.Background())

	assert.False(t, store.Loading())
	assert.Nil(t, store.User())
}

func TestInit_RunsExactlyOnce(t *testing.T) {
	t.Parallel()

	store, b, _ := newStore(t, http.StatusOK)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Init(context.Background())
		}()
	}
	wg.Wait()
	store.Init(context.Background())

	validates, _, _ := b.counts()
	assert.Equal(t, 1, validates)
}

func TestLogin_SetsUserFromResponse(t *testing.T) {
	t.Parallel()

	store, b, _ := newStore(t, http.StatusUnauthorized)
	store.Init(context.Background())
	require.Nil(t, store.User())

	resp, err := store.Login(context.Background(), apiclient.Credentials{Username: "rei", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, resp.User.ID, user.ID)

	_, logins, _ := b.counts()
	assert.Equal(t, 1, logins)
}

func TestLogin_FailurePreservesUser(t *testing.T) {
	t.Parallel()

	b := newBackend(t, http.StatusOK)
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad credentials"}`))
	}))
	t.Cleanup(failing.Close)

	// Validate against the good backend, then point logins at the
	// failing one through a fresh store sharing the same user.
	client := apiclient.New(apiclient.Config{BaseURL: b.srv.URL})
	store := session.New(client, router.NewNavigator())
	store.Init(context.Background())
	require.NotNil(t, store.User())

	failingClient := apiclient.New(apiclient.Config{BaseURL: failing.URL})
	failingStore := session.New(failingClient, router.NewNavigator())
	failingStore.SetUser(store.User())

	_, err := failingStore.Login(context.Background(), apiclient.Credentials{Username: "rei", Password: "wrong"})
	require.Error(t, err)

	var apiErr apiclient.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad credentials", apiErr.Message)

	// The failed login did not touch the existing identity.
	require.NotNil(t, failingStore.User())
	assert.Equal(t, "rei", failingStore.User().Username)
}

func TestSignup_DoesNotMutateSession(t *testing.T) {
	t.Parallel()

	store, _, _ := newStore(t, http.StatusUnauthorized)
	store.Init(context.Background())

	raw, err := store.Signup(context.Background(), apiclient.SignupInput{Username: "new", Password: "pw"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"account created"}`, string(raw))
	assert.Nil(t, store.User())
}

func TestLogout_LocalOnly(t *testing.T) {
	t.Parallel()

	store, b, nav := newStore(t, http.StatusOK)
	store.Init(context.Background())
	require.NotNil(t, store.User())

	_, _, before := b.counts()
	store.Logout()
	_, _, after := b.counts()

	assert.Nil(t, store.User())
	assert.Equal(t, before, after, "logout must not call the backend")
	assert.Equal(t, "#/login", nav.Fragment())
}

func TestUser_ReturnsCopy(t *testing.T) {
	t.Parallel()

	store, _, _ := newStore(t, http.StatusOK)
	store.Init(context.Background())

	first := store.User()
	require.NotNil(t, first)
	first.Username = "mutated"

	assert.Equal(t, "rei", store.User().Username)
}
