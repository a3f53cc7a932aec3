// Package view holds the controllers behind each routed page. Every
// controller owns its data, loading flag, and error; one view's
// failure never touches another's state. Authenticated views share the
// gating contract in Guard, paginated views the accumulation contract
// in Pager.
package view

import (
	"github.com/vrstep/wawatch/router"
	"github.com/vrstep/wawatch/session"
)

// loginFragment is where anonymous users are sent by gated views.
const loginFragment = "#/login"

// GateState is the outcome of the shared authenticated-view check.
type GateState int

const (
	// GatePending means session validation has not resolved yet:
	// render a loading indicator, fetch nothing.
	GatePending GateState = iota
	// GateRedirected means no user is logged in; navigation to the
	// login view has already been issued and nothing further renders.
	GateRedirected
	// GateReady means an authenticated user is present.
	GateReady
)

// Guard applies the collective contract of authenticated views: block
// while the session store is loading, redirect anonymous visitors to
// the login view, and only then let the view fetch its own data. The
// redirect goes through the Navigator; the router itself never
// redirects.
func Guard(store *session.Store, nav *router.Navigator) GateState {
	if store.Loading() {
		return GatePending
	}
	if store.User() == nil {
		nav.Go(loginFragment)
		return GateRedirected
	}
	return GateReady
}
