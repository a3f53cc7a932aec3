package router

import "sync"

// subscription pairs an id with its callback so removal keeps
// notification order stable for the remaining subscribers.
type subscription struct {
	id int
	fn func(Route)
}

// Navigator owns the current location fragment and fans out route
// changes to subscribers. It is the single navigation interface: views
// redirect by calling Go, never by re-matching fragments themselves.
// Safe for concurrent use.
type Navigator struct {
	mu       sync.Mutex
	fragment string
	subs     []subscription
	nextID   int
}

// NewNavigator creates a Navigator at the empty fragment, which
// matches the home view.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Fragment returns the current location fragment.
func (n *Navigator) Fragment() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.fragment
}

// Route returns the route derived from the current fragment.
func (n *Navigator) Route() Route {
	return Match(n.Fragment())
}

// Go sets the current fragment and notifies every subscriber with the
// newly derived route, synchronously, in subscription order.
// Subscribers run outside the Navigator's lock, so a subscriber may
// itself navigate.
func (n *Navigator) Go(fragment string) {
	n.mu.Lock()
	n.fragment = fragment
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	route := Match(fragment)
	for _, sub := range subs {
		sub.fn(route)
	}
}

// Subscribe registers a callback for route changes and returns its
// unsubscribe function. Unsubscribing is idempotent and must be called
// on teardown; a released subscription is never invoked again.
func (n *Navigator) Subscribe(fn func(Route)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs = append(n.subs, subscription{id: id, fn: fn})

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}
