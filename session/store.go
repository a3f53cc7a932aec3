// Package session holds the client's belief about the current
// authenticated identity, reconciled with the backend once at startup.
// One Store is created per application and passed explicitly to every
// consumer; there is no package-level singleton.
package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/pkg/logger"
	"github.com/vrstep/wawatch/router"
)

// loginFragment is where Logout sends the user.
const loginFragment = "#/login"

// Store is the process-wide source of truth for "who is logged in".
// All views read it; only Store operations mutate it.
type Store struct {
	client *apiclient.Client
	nav    *router.Navigator
	log    *slog.Logger

	mu      sync.Mutex
	user    *apiclient.User
	loading bool

	initOnce sync.Once
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger. Default discards output.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New creates a Store in its pre-validation state: no user, loading
// until Init resolves.
func New(client *apiclient.Client, nav *router.Navigator, opts ...Option) *Store {
	s := &Store{
		client:  client,
		nav:     nav,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init validates the stored session with the backend, exactly once per
// Store lifetime; later calls are no-ops. A failed validation is the
// routine anonymous path: the user stays nil, stored credentials are
// dropped, and no error surfaces. Either way loading ends.
func (s *Store) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		resp, err := s.client.Validate(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		switch {
		case err != nil || resp == nil || resp.User == nil:
			s.user = nil
			s.client.ClearCredentials()
			s.log.LogAttrs(ctx, slog.LevelDebug, "session validation resolved to anonymous",
				logger.Component("session"),
				logger.Error(err),
			)
		default:
			s.user = resp.User
			s.log.LogAttrs(ctx, slog.LevelDebug, "session validated",
				logger.Component("session"),
				logger.Key("username", resp.User.Username),
			)
		}
		s.loading = false
	})
}

// User returns the authenticated identity, or nil before Init resolves
// and whenever no valid session exists. The returned value is a copy.
func (s *Store) User() *apiclient.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading reports whether the one-time validation is still pending.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Login authenticates and, on success, adopts the returned identity.
// The full response is returned so callers can use its non-user
// fields. On failure the error propagates untouched and the current
// user is not modified.
func (s *Store) Login(ctx context.Context, creds apiclient.Credentials) (*apiclient.AuthResponse, error) {
	resp, err := s.client.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	if resp != nil && resp.User != nil {
		s.mu.Lock()
		s.user = resp.User
		s.mu.Unlock()
	}
	return resp, nil
}

// Signup creates an account. Pure passthrough: no auto-login, no
// session state change.
func (s *Store) Signup(ctx context.Context, input apiclient.SignupInput) (json.RawMessage, error) {
	return s.client.Signup(ctx, input)
}

// Logout is client-local and synchronous: it clears the user and the
// stored credentials, then navigates to the login view. The backend is
// not called, so the server-side session outlives this client's
// knowledge of it.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	s.client.ClearCredentials()
	s.nav.Go(loginFragment)
}

// SetUser overwrites the current identity directly. Retained for
// compatibility with callers that patch the session after profile
// mutations; new code should go through Login/Logout.
func (s *Store) SetUser(user *apiclient.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}
