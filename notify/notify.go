// Package notify provides a single-subscriber change signal.
//
// A Notifier holds at most one callback. Subscribing replaces any previous
// callback, and the returned cancel function clears it only if it is still
// the active one.
package notify

import "sync"

// Notifier delivers Publish calls to the current subscriber.
// The zero value is ready to use and safe for concurrent use.
type Notifier struct {
	mu  sync.Mutex
	gen uint64
	fn  func()
}

// Subscribe installs fn as the subscriber and returns a function that
// removes it. Calling the cancel function more than once is harmless.
func (n *Notifier) Subscribe(fn func()) (cancel func()) {
	n.mu.Lock()
	n.gen++
	id := n.gen
	n.fn = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.gen == id {
			n.fn = nil
		}
	}
}

// Publish invokes the current subscriber, if any, outside the lock.
func (n *Notifier) Publish() {
	n.mu.Lock()
	fn := n.fn
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Active reports whether a subscriber is installed.
func (n *Notifier) Active() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.fn != nil
}
