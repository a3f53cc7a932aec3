package view

import (
	"context"
	"sync"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/router"
	"github.com/vrstep/wawatch/session"
)

// homeFragment is where a successful login lands.
const homeFragment = "#/"

// Login drives the login form. A successful submission adopts the
// identity through the session store and navigates home.
type Login struct {
	store *session.Store
	nav   *router.Navigator

	mu         sync.Mutex
	err        error
	submitting bool
}

// NewLogin creates the login view controller.
func NewLogin(store *session.Store, nav *router.Navigator) *Login {
	return &Login{store: store, nav: nav}
}

// Submit authenticates with the given credentials. On success the user
// is navigated home; on failure the error is kept for inline display.
func (l *Login) Submit(ctx context.Context, username, password string) error {
	l.mu.Lock()
	l.submitting = true
	l.err = nil
	l.mu.Unlock()

	_, err := l.store.Login(ctx, apiclient.Credentials{Username: username, Password: password})

	l.mu.Lock()
	l.submitting = false
	l.err = err
	l.mu.Unlock()

	if err != nil {
		return err
	}
	l.nav.Go(homeFragment)
	return nil
}

// Err returns the error recorded by the last Submit.
func (l *Login) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Submitting reports whether a Submit is in progress.
func (l *Login) Submitting() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.submitting
}

// Signup drives the account creation form. A successful submission
// navigates to the login view; no session is established.
type Signup struct {
	store *session.Store
	nav   *router.Navigator

	mu         sync.Mutex
	err        error
	submitting bool
}

// NewSignup creates the signup view controller.
func NewSignup(store *session.Store, nav *router.Navigator) *Signup {
	return &Signup{store: store, nav: nav}
}

// Submit creates the account and, on success, sends the user to the
// login form to authenticate.
func (s *Signup) Submit(ctx context.Context, input apiclient.SignupInput) error {
	s.mu.Lock()
	s.submitting = true
	s.err = nil
	s.mu.Unlock()

	_, err := s.store.Signup(ctx, input)

	s.mu.Lock()
	s.submitting = false
	s.err = err
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.nav.Go(loginFragment)
	return nil
}

// Err returns the error recorded by the last Submit.
func (s *Signup) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Submitting reports whether a Submit is in progress.
func (s *Signup) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}
