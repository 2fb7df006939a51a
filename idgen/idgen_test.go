package idgen

import (
	"strings"
	"testing"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := New()
		if id == "" {
			t.Fatal("New returned empty ID")
		}
		if seen[id] {
			t.Fatalf("duplicate ID: %s", id)
		}
		seen[id] = true
	}
}

func TestUUIDv7_Sortable(t *testing.T) {
	gen := UUIDv7()
	a := gen()
	b := gen()
	if !(a < b) {
		t.Errorf("UUIDv7 IDs not time-sortable: %s >= %s", a, b)
	}
}

func TestNanoID_LengthAndAlphabet(t *testing.T) {
	gen := NanoID(12)
	id := gen()
	if len(id) != 12 {
		t.Fatalf("NanoID length: got %d, want 12", len(id))
	}
	for _, c := range id {
		if !strings.ContainsRune("0123456789abcdefghijklmnopqrstuvwxyz", c) {
			t.Errorf("NanoID char %q outside alphabet", c)
		}
	}
}

func TestPrefixed(t *testing.T) {
	gen := Prefixed("anim_", NanoID(8))
	id := gen()
	if !strings.HasPrefix(id, "anim_") {
		t.Errorf("Prefixed: got %q, want anim_ prefix", id)
	}
	if len(id) != len("anim_")+8 {
		t.Errorf("Prefixed length: got %d", len(id))
	}
}
