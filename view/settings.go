package view

import (
	"context"
	"errors"
	"sync"

	"github.com/vrstep/wawatch/apiclient"
	"github.com/vrstep/wawatch/router"
	"github.com/vrstep/wawatch/session"
)

// ErrPasswordMismatch reports that the new password and its
// confirmation differ. Checked locally before any request is made.
var ErrPasswordMismatch = errors.New("view: new password and confirmation do not match")

// Settings drives the authenticated settings page: three independent
// forms changing the password, username, and email. Each form keeps
// its own outcome so one form's failure never clears another's
// success message.
type Settings struct {
	client *apiclient.Client
	store  *session.Store
	nav    *router.Navigator

	mu       sync.Mutex
	password FormState
	username FormState
	email    FormState
}

// FormState is the outcome of one settings form's last submission.
type FormState struct {
	Message string
	Err     error
}

// NewSettings creates the settings view controller.
func NewSettings(client *apiclient.Client, store *session.Store, nav *router.Navigator) *Settings {
	return &Settings{client: client, store: store, nav: nav}
}

// Load gates on the session; the settings page fetches nothing of its
// own.
func (s *Settings) Load(_ context.Context) (GateState, error) {
	return Guard(s.store, s.nav), nil
}

// ChangePassword submits the password form. The confirmation is
// checked locally first; a mismatch never reaches the server.
func (s *Settings) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if next != confirm {
		s.setForm(&s.password, FormState{Err: ErrPasswordMismatch})
		return ErrPasswordMismatch
	}

	resp, err := s.client.ChangePassword(ctx, apiclient.PasswordChange{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		s.setForm(&s.password, FormState{Err: err})
		return err
	}
	s.setForm(&s.password, FormState{Message: messageOf(resp, "password updated")})
	return nil
}

// ChangeUsername submits the username form and refreshes the session
// identity on success.
func (s *Settings) ChangeUsername(ctx context.Context, newUsername, currentPassword string) error {
	resp, err := s.client.ChangeUsername(ctx, apiclient.UsernameChange{
		NewUsername:     newUsername,
		CurrentPassword: currentPassword,
	})
	if err != nil {
		s.setForm(&s.username, FormState{Err: err})
		return err
	}

	if user := s.store.User(); user != nil {
		adopted := newUsername
		if resp != nil && resp.NewUsername != "" {
			adopted = resp.NewUsername
		}
		user.Username = adopted
		s.store.SetUser(user)
	}
	s.setForm(&s.username, FormState{Message: messageOf(resp, "username updated")})
	return nil
}

// ChangeEmail submits the email form and refreshes the session
// identity on success.
func (s *Settings) ChangeEmail(ctx context.Context, newEmail, currentPassword string) error {
	resp, err := s.client.ChangeEmail(ctx, apiclient.EmailChange{
		NewEmail:        newEmail,
		CurrentPassword: currentPassword,
	})
	if err != nil {
		s.setForm(&s.email, FormState{Err: err})
		return err
	}

	if user := s.store.User(); user != nil {
		adopted := newEmail
		if resp != nil && resp.NewEmail != "" {
			adopted = resp.NewEmail
		}
		user.Email = adopted
		s.store.SetUser(user)
	}
	s.setForm(&s.email, FormState{Message: messageOf(resp, "email updated")})
	return nil
}

// PasswordForm returns the password form's last outcome.
func (s *Settings) PasswordForm() FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.password
}

// UsernameForm returns the username form's last outcome.
func (s *Settings) UsernameForm() FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// EmailForm returns the email form's last outcome.
func (s *Settings) EmailForm() FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

func (s *Settings) setForm(form *FormState, state FormState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*form = state
}

func messageOf(resp *apiclient.MessageResponse, fallback string) string {
	if resp != nil && resp.Message != "" {
		return resp.Message
	}
	return fallback
}
