// ABOUTME: Tracks in-flight requests per page and result target
// ABOUTME: Starting a request cancels the earlier one so only the latest result renders

package detection

import (
	"context"
	"sync"
)

// Result targets tracked by the page.
const (
	TargetNews     = "newsResults"
	TargetDeepfake = "deepfakeResults"
	TargetPreview  = "mediaPreview"
)

type trackKey struct {
	scope  string
	target string
}

// Tracker keys pending work by (scope, target). A scope identifies one loaded page, so
// separate browser tabs sharing a session cookie never cancel each other.
type Tracker struct {
	mu      sync.Mutex
	pending map[trackKey]*Ticket
	seq     uint64
}

// Ticket identifies one tracked request.
type Ticket struct {
	tracker *Tracker
	key     trackKey
	id      uint64
	cancel  context.CancelFunc
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{pending: make(map[trackKey]*Ticket)}
}

// Begin registers a request for target in scope and cancels any earlier pending request
// on the same key. The returned context is cancelled when the request is superseded or
// when Done is called. An empty scope is not tracked.
func (t *Tracker) Begin(ctx context.Context, scope, target string) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancel(ctx)
	ticket := &Ticket{tracker: t, key: trackKey{scope: scope, target: target}, cancel: cancel}
	if scope == "" {
		return ctx, ticket
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.pending[ticket.key]; ok {
		prev.cancel()
	}
	t.seq++
	ticket.id = t.seq
	t.pending[ticket.key] = ticket

	return ctx, ticket
}

// Current reports whether no newer request has started for the same key.
func (tk *Ticket) Current() bool {
	if tk.id == 0 {
		return true
	}

	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()
	return tk.tracker.pending[tk.key] == tk
}

// Done releases the ticket and its context.
func (tk *Ticket) Done() {
	tk.cancel()
	if tk.id == 0 {
		return
	}

	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()
	if tk.tracker.pending[tk.key] == tk {
		delete(tk.tracker.pending, tk.key)
	}
}

// Pending returns the number of tracked requests.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
