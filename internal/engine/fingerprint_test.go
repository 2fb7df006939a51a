package engine

import "testing"

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("tab1", "https://cdn.example.com/anim.json")
	b := Fingerprint("tab1", "https://cdn.example.com/anim.json")
	if a != b {
		t.Fatalf("same inputs produced %q and %q", a, b)
	}
}

func TestFingerprintSeparatesSessions(t *testing.T) {
	a := Fingerprint("tab1", "https://cdn.example.com/anim.json")
	b := Fingerprint("tab2", "https://cdn.example.com/anim.json")
	if a == b {
		t.Fatalf("sessions collided: %q", a)
	}
}

func TestFingerprintSeparatesURLs(t *testing.T) {
	a := Fingerprint("tab1", "https://cdn.example.com/a.json")
	b := Fingerprint("tab1", "https://cdn.example.com/b.json")
	if a == b {
		t.Fatalf("urls collided: %q", a)
	}
}

func TestHashURLEmpty(t *testing.T) {
	if h := hashURL(""); h != 0 {
		t.Fatalf("hashURL(\"\") = %d, want 0", h)
	}
	if fp := Fingerprint("tab1", ""); fp != "tab1-0" {
		t.Fatalf("Fingerprint = %q, want tab1-0", fp)
	}
}

func TestHashURLKnownValues(t *testing.T) {
	cases := []struct {
		in   string
		want int32
	}{
		{"a", 97},
		{"ab", 31*97 + 98},
		{"abc", 31*(31*97+98) + 99},
		// U+1D49C hashes as its surrogate pair D835 DC9C, unit by unit.
		{"\U0001D49C", 31*0xD835 + 0xDC9C},
	}
	for _, tc := range cases {
		if got := hashURL(tc.in); got != tc.want {
			t.Errorf("hashURL(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
