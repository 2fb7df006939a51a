package engine

import (
	"sync"
	"time"
)

// notifier coalesces bursts of per-session commit signals into a single
// count recomputation once the session goes quiet for the window duration.
// This is a debounce, not a throttle: a steady stream of commits postpones
// the fire indefinitely.
type notifier struct {
	window time.Duration
	fire   func(sessionID string)

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

func newNotifier(window time.Duration, fire func(sessionID string)) *notifier {
	return &notifier{
		window: window,
		fire:   fire,
		timers: make(map[string]*time.Timer),
	}
}

// Touch signals that the session's record set changed, (re)starting its
// quiescence window.
func (n *notifier) Touch(sessionID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	if t, ok := n.timers[sessionID]; ok {
		t.Stop()
	}
	n.timers[sessionID] = time.AfterFunc(n.window, func() {
		n.mu.Lock()
		if n.closed {
			n.mu.Unlock()
			return
		}
		delete(n.timers, sessionID)
		n.mu.Unlock()
		n.fire(sessionID)
	})
}

// Close stops all pending timers. Touches after Close are ignored.
func (n *notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
}
