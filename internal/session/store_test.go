package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"cqv/internal/domain"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir())
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	s := newStore(t)

	if err := s.Put(KeyFilename, "run-a.json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var filename string
	ok, err := s.Get(KeyFilename, &filename)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || filename != "run-a.json" {
		t.Errorf("expected run-a.json, got ok=%v value=%q", ok, filename)
	}
}

func TestStore_GetMissingKey(t *testing.T) {
	s := newStore(t)
	var out string
	ok, err := s.Get("absent", &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected missing key to report ok=false")
	}
}

func TestStore_TakeConsumesOnce(t *testing.T) {
	s := newStore(t)
	params := map[string]string{"sortBy": "group", "status": "fail"}
	if err := s.Put(KeyInitialParams, params); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got map[string]string
	ok, err := s.Take(KeyInitialParams, &got)
	if err != nil || !ok {
		t.Fatalf("first Take: ok=%v err=%v", ok, err)
	}
	if got["sortBy"] != "group" {
		t.Errorf("unexpected params: %v", got)
	}

	ok, err = s.Take(KeyInitialParams, &got)
	if err != nil {
		t.Fatalf("second Take errored: %v", err)
	}
	if ok {
		t.Error("one-shot value survived its first Take")
	}
}

func TestStore_Clear(t *testing.T) {
	s := newStore(t)
	if err := s.Put(KeyFileURL, "http://host/run.json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	var out string
	if ok, _ := s.Get(KeyFileURL, &out); ok {
		t.Error("value survived Clear")
	}

	// clearing an already-empty session is fine
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestStore_LastLoadWins(t *testing.T) {
	s := newStore(t)

	first := s.BeginLoad()
	second := s.BeginLoad()

	// the newer load completes first
	kept, err := s.CompleteLoad(second, domain.Document{TestsRunDateTime: "new"}, "new.json")
	if err != nil || !kept {
		t.Fatalf("newer load rejected: kept=%v err=%v", kept, err)
	}

	// the stale load completes afterwards and must be discarded
	kept, err = s.CompleteLoad(first, domain.Document{TestsRunDateTime: "old"}, "old.json")
	if err != nil {
		t.Fatalf("stale CompleteLoad errored: %v", err)
	}
	if kept {
		t.Fatal("stale load overwrote a newer one")
	}

	var doc domain.Document
	if ok, _ := s.Get(KeyDocument, &doc); !ok || doc.TestsRunDateTime != "new" {
		t.Errorf("expected the newer document to survive, got %+v", doc)
	}
}

func TestStore_FingerprintChangesWithContent(t *testing.T) {
	s := newStore(t)

	empty, err := s.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if empty != 0 {
		t.Errorf("missing file should fingerprint to 0, got %d", empty)
	}

	if err := s.Put(KeyFilename, "a.json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	fp1, _ := s.Fingerprint()
	fp2, _ := s.Fingerprint()
	if fp1 == 0 || fp1 != fp2 {
		t.Errorf("fingerprint unstable: %d vs %d", fp1, fp2)
	}

	if err := s.Put(KeyFilename, "b.json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	fp3, _ := s.Fingerprint()
	if fp3 == fp1 {
		t.Error("fingerprint did not change with content")
	}
}

func TestWatcher_FiresOnChange(t *testing.T) {
	s := newStore(t)
	if err := s.Put(KeyFilename, "a.json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var fired atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher(s, 10*time.Millisecond, nil)
	go w.Watch(ctx, func() { fired.Add(1) })

	time.Sleep(30 * time.Millisecond)
	if err := s.Put(KeyFilename, "b.json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if fired.Load() == 0 {
		t.Error("watcher never fired after a content change")
	}
}

func TestWatcher_QuietWhenUnchanged(t *testing.T) {
	s := newStore(t)
	if err := s.Put(KeyFilename, "a.json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var fired atomic.Int32
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	w := NewWatcher(s, 10*time.Millisecond, nil)
	w.Watch(ctx, func() { fired.Add(1) })

	if fired.Load() != 0 {
		t.Errorf("watcher fired %d times without changes", fired.Load())
	}
}
