package view

import (
	"context"
	"sync"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/pkg/async"
	"github.com/vrstep/wawatch/router"
	"github.com/vrstep/wawatch/session"
)

// Profile drives the authenticated profile page: the account record
// plus the list stats shown beside it, with in-place profile edits.
type Profile struct {
	client *apiclient.Client
	store  *session.Store
	nav    *router.Navigator

	mu      sync.Mutex
	user    *apiclient.User
	stats   *apiclient.ListStats
	err     error
	loading bool
}

// NewProfile creates the profile view controller.
func NewProfile(client *apiclient.Client, store *session.Store, nav *router.Navigator) *Profile {
	return &Profile{client: client, store: store, nav: nav}
}

// Load gates on the session and fetches the profile and list stats
// concurrently. The stats are best-effort; only a profile failure is
// the page's error.
func (p *Profile) Load(ctx context.Context) (GateState, error) {
	if state := Guard(p.store, p.nav); state != GateReady {
		return state, nil
	}

	p.mu.Lock()
	p.loading = true
	p.err = nil
	p.mu.Unlock()

	user := async.Go(ctx, func(ctx context.Context) (*apiclient.User, error) {
		return p.client.MyProfile(ctx)
	})
	stats := async.Go(ctx, func(ctx context.Context) (*apiclient.ListStats, error) {
		return p.client.ListStats(ctx)
	})

	u, userErr := user.Await()
	s, _ := stats.Await()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if userErr != nil {
		p.err = userErr
		return GateReady, userErr
	}
	p.user = u
	p.stats = s
	return GateReady, nil
}

// Update changes profile fields and adopts the returned record. The
// session identity is refreshed so the rest of the app sees the change.
func (p *Profile) Update(ctx context.Context, update apiclient.ProfileUpdate) error {
	user, err := p.client.UpdateMyProfile(ctx, update)
	if err != nil {
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.user = user
	p.err = nil
	p.mu.Unlock()

	if user != nil {
		p.store.SetUser(user)
	}
	return nil
}

// User returns the loaded profile record, or nil.
func (p *Profile) User() *apiclient.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user
}

// Stats returns the list stats fetched alongside the profile.
func (p *Profile) Stats() *apiclient.ListStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Err returns the error recorded by the last Load or Update.
func (p *Profile) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Loading reports whether a Load is in progress.
func (p *Profile) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}
