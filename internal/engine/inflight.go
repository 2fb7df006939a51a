package engine

import "sync"

// inFlight tracks fingerprints with a pipeline currently running. It is the
// engine's sole synchronization primitive: at most one pipeline per
// fingerprint is admitted, and a marker's presence alone carries meaning.
type inFlight struct {
	mu    sync.Mutex
	marks map[string]struct{}
}

func newInFlight() *inFlight {
	return &inFlight{marks: make(map[string]struct{})}
}

// TryAcquire registers a marker for fp. It returns false when a marker is
// already held.
func (g *inFlight) TryAcquire(fp string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.marks[fp]; held {
		return false
	}
	g.marks[fp] = struct{}{}
	return true
}

// Release removes the marker for fp. Releasing an absent marker is a no-op.
func (g *inFlight) Release(fp string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.marks, fp)
}

// Has reports whether a marker is held for fp.
func (g *inFlight) Has(fp string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, held := g.marks[fp]
	return held
}
