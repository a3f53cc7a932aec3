// Package router derives exactly one view from a location fragment and
// notifies subscribers when the current fragment changes. Matching is a
// pure function; the Navigator owns the only piece of state, the
// current fragment itself.
package router

import (
	"net/url"
	"strings"
)

// ViewKind identifies the view bound to a route.
type ViewKind int

const (
	ViewHome ViewKind = iota
	ViewAnimeDetail
	ViewSearch
	ViewLogin
	ViewSignup
	ViewProfile
	ViewAnimeList
	ViewHistory
	ViewSettings
	ViewNotFound
)

// String returns the view name for logging.
func (v ViewKind) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewAnimeDetail:
		return "anime_detail"
	case ViewSearch:
		return "search"
	case ViewLogin:
		return "login"
	case ViewSignup:
		return "signup"
	case ViewProfile:
		return "profile"
	case ViewAnimeList:
		return "anime_list"
	case ViewHistory:
		return "history"
	case ViewSettings:
		return "settings"
	case ViewNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Route is the derived value for one fragment: the view to render and
// its extracted parameters. Params is nil for parameterless views.
type Route struct {
	View   ViewKind
	Params map[string]string
}

// Match maps a location fragment to its Route. Total and side-effect
// free: every input yields exactly one Route, unrecognized fragments
// yield ViewNotFound. Rules are evaluated top to bottom; the first
// match wins.
func Match(fragment string) Route {
	switch {
	case strings.HasPrefix(fragment, "#/anime/"):
		// Naive split: extra segments or a malformed id pass through
		// unchanged; the detail view validates the id.
		id := ""
		if parts := strings.Split(fragment, "/"); len(parts) > 2 {
			id = parts[2]
		}
		return Route{View: ViewAnimeDetail, Params: map[string]string{"id": id}}

	case strings.HasPrefix(fragment, "#/search"):
		query := ""
		if _, rawQuery, ok := strings.Cut(fragment, "?"); ok {
			if values, err := url.ParseQuery(rawQuery); err == nil {
				query = values.Get("q")
			}
		}
		return Route{View: ViewSearch, Params: map[string]string{"query": query}}

	case fragment == "#/login":
		return Route{View: ViewLogin}

	case fragment == "#/signup":
		return Route{View: ViewSignup}

	// Alias: both spellings resolve to the same profile view.
	case fragment == "#/me/profile", fragment == "#/profile":
		return Route{View: ViewProfile}

	case fragment == "#/me/animelist":
		return Route{View: ViewAnimeList}

	case fragment == "#/me/history":
		return Route{View: ViewHistory}

	case fragment == "#/me/settings":
		return Route{View: ViewSettings}

	case fragment == "#/", fragment == "":
		return Route{View: ViewHome}

	default:
		return Route{View: ViewNotFound}
	}
}
