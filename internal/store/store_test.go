package store

import (
	"context"
	"testing"

	"github.com/jawish/lottiegrab/dbopen"
	"github.com/jawish/lottiegrab/internal/lottie"

	_ "modernc.org/sqlite"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(dbopen.OpenMemory(t, dbopen.WithSchema(Schema)))
}

func sampleRecord(fp, session string) *lottie.Record {
	return &lottie.Record{
		ID:           "0195",
		Fingerprint:  fp,
		SessionID:    session,
		BMVersion:    "5.5.2",
		NumLayers:    1,
		Width:        100,
		Height:       100,
		FrameRate:    30,
		NumFrames:    30,
		LottieURL:    "https://cdn.example.com/anim.json",
		TabURL:       "https://example.com/",
		DiscoveredAt: 1700000000000,
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := sampleRecord("tab1-123", "tab1")
	rec.Meta = map[string]any{"g": "LottieFiles"}
	rec.FromArchive = true
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "tab1-123")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get: nil record")
	}
	if got.BMVersion != "5.5.2" || got.NumFrames != 30 || !got.FromArchive {
		t.Errorf("record mismatch: %+v", got)
	}
	if got.Meta["g"] != "LottieFiles" {
		t.Errorf("meta: got %v", got.Meta)
	}
}

func TestGet_Absent(t *testing.T) {
	s := testStore(t)
	got, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("Get absent: got %+v", got)
	}
}

func TestPut_Upsert(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := sampleRecord("tab1-123", "tab1")
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rec.BMVersion = "5.9.0"
	rec.NumFrames = 60
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put update: %v", err)
	}

	got, _ := s.Get(ctx, "tab1-123")
	if got.BMVersion != "5.9.0" || got.NumFrames != 60 {
		t.Errorf("upsert did not replace: %+v", got)
	}
	n, _ := s.CountForSession(ctx, "tab1")
	if n != 1 {
		t.Errorf("count after upsert: got %d, want 1", n)
	}
}

func TestHas(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	ok, err := s.Has(ctx, "tab1-123")
	if err != nil || ok {
		t.Fatalf("Has before put: %v %v", ok, err)
	}
	s.Put(ctx, sampleRecord("tab1-123", "tab1"))
	ok, err = s.Has(ctx, "tab1-123")
	if err != nil || !ok {
		t.Fatalf("Has after put: %v %v", ok, err)
	}
}

func TestClearSession_ScopedExactly(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.Put(ctx, sampleRecord("tab1-1", "tab1"))
	s.Put(ctx, sampleRecord("tab1-2", "tab1"))
	s.Put(ctx, sampleRecord("tab2-1", "tab2"))

	if err := s.ClearSession(ctx, "tab1"); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	recs, err := s.AllForSession(ctx, "tab1")
	if err != nil {
		t.Fatalf("AllForSession: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("tab1 records after clear: %d", len(recs))
	}

	other, _ := s.AllForSession(ctx, "tab2")
	if len(other) != 1 {
		t.Errorf("tab2 records after clearing tab1: got %d, want 1", len(other))
	}
}

func TestAllForSession_NewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	old := sampleRecord("tab1-1", "tab1")
	old.DiscoveredAt = 1000
	newer := sampleRecord("tab1-2", "tab1")
	newer.DiscoveredAt = 2000
	s.Put(ctx, old)
	s.Put(ctx, newer)

	recs, err := s.AllForSession(ctx, "tab1")
	if err != nil {
		t.Fatalf("AllForSession: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0].Fingerprint != "tab1-2" {
		t.Errorf("order: got %s first", recs[0].Fingerprint)
	}
}

func TestCountForSession(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.Put(ctx, sampleRecord("tab1-1", "tab1"))
	s.Put(ctx, sampleRecord("tab1-2", "tab1"))
	s.Put(ctx, sampleRecord("tab2-1", "tab2"))

	n, err := s.CountForSession(ctx, "tab1")
	if err != nil {
		t.Fatalf("CountForSession: %v", err)
	}
	if n != 2 {
		t.Errorf("count: got %d, want 2", n)
	}
}

func TestClearAll(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.Put(ctx, sampleRecord("tab1-1", "tab1"))
	s.Put(ctx, sampleRecord("tab2-1", "tab2"))
	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	all, _ := s.All(ctx)
	if len(all) != 0 {
		t.Errorf("records after ClearAll: %d", len(all))
	}
}
