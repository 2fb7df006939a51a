package engine

import (
	"sync"
	"testing"
	"time"
)

type fireLog struct {
	mu    sync.Mutex
	fired []string
}

func (f *fireLog) add(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fired = append(f.fired, id)
}

func (f *fireLog) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fired...)
}

func TestNotifierCoalescesBurst(t *testing.T) {
	var log fireLog
	n := newNotifier(30*time.Millisecond, log.add)
	defer n.Close()

	for range 5 {
		n.Touch("tab1")
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	got := log.snapshot()
	if len(got) != 1 || got[0] != "tab1" {
		t.Fatalf("fired = %v, want single tab1", got)
	}
}

func TestNotifierPerSessionTimers(t *testing.T) {
	var log fireLog
	n := newNotifier(20*time.Millisecond, log.add)
	defer n.Close()

	n.Touch("tab1")
	n.Touch("tab2")
	time.Sleep(100 * time.Millisecond)

	got := log.snapshot()
	if len(got) != 2 {
		t.Fatalf("fired = %v, want both sessions", got)
	}
	seen := map[string]bool{got[0]: true, got[1]: true}
	if !seen["tab1"] || !seen["tab2"] {
		t.Fatalf("fired = %v, want tab1 and tab2", got)
	}
}

func TestNotifierCloseStopsPending(t *testing.T) {
	var log fireLog
	n := newNotifier(30*time.Millisecond, log.add)

	n.Touch("tab1")
	n.Close()
	n.Touch("tab2")
	time.Sleep(80 * time.Millisecond)

	if got := log.snapshot(); len(got) != 0 {
		t.Fatalf("fired = %v after Close, want none", got)
	}
}
