package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/omarhani/rafiq/internal/logger"
	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/reducer"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	s := New(path, logger.NewNop())
	if err := s.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return s
}

func TestLoad_SeedsWhenMissing(t *testing.T) {
	s := newTestStore(t)

	snap := s.Read()
	if len(snap.Plan) != 5 {
		t.Fatalf("expected 5 seeded subjects, got %d", len(snap.Plan))
	}
	if snap.CompletedMissions == nil {
		t.Error("completed missions map not initialized")
	}
}

func TestLoad_ReseedsOnCorruptBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s := New(path, logger.NewNop())
	if err := s.Load(); err != nil {
		t.Fatalf("corrupt blob should reseed, not fail: %v", err)
	}
	if len(s.Read().Plan) != 5 {
		t.Error("expected seeded plan after corrupt blob")
	}
}

func TestMutate_PersistsAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	s := New(path, logger.NewNop())
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	s.Mutate(func(snap models.Snapshot) models.Snapshot {
		snap = reducer.ToggleMission(snap, "ch-m1", now)
		return reducer.AddWish(snap, "round trip", now)
	})
	if err := s.SaveNow(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// A fresh store over the same path sees the identical state.
	s2 := New(path, logger.NewNop())
	if err := s2.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	snap := s2.Read()
	if !snap.CompletedMissions["ch-m1"] {
		t.Error("completed mission lost in round trip")
	}
	if len(snap.Wishes) != 1 || snap.Wishes[0].Text != "round trip" {
		t.Errorf("wish lost in round trip: %+v", snap.Wishes)
	}
	if len(snap.Timeline) != 1 {
		t.Errorf("timeline lost in round trip: %d events", len(snap.Timeline))
	}
}

func TestRead_ReturnsIsolatedCopy(t *testing.T) {
	s := newTestStore(t)

	snap := s.Read()
	snap.CompletedMissions["ch-m1"] = true
	snap.Plan[0].Name = "tampered"

	fresh := s.Read()
	if fresh.CompletedMissions["ch-m1"] {
		t.Error("mutating a Read copy leaked into the store")
	}
	if fresh.Plan[0].Name == "tampered" {
		t.Error("mutating a Read copy's plan leaked into the store")
	}
}

func TestMutate_NotifiesDirtyWithKind(t *testing.T) {
	s := newTestStore(t)

	s.Mutate(func(snap models.Snapshot) models.Snapshot { return snap })
	select {
	case kind := <-s.Dirty():
		if kind != DirtyDebounced {
			t.Errorf("kind = %v, want DirtyDebounced", kind)
		}
	case <-time.After(time.Second):
		t.Fatal("no dirty notification after Mutate")
	}

	s.MutateImmediate(func(snap models.Snapshot) models.Snapshot { return snap })
	select {
	case kind := <-s.Dirty():
		if kind != DirtyImmediate {
			t.Errorf("kind = %v, want DirtyImmediate", kind)
		}
	case <-time.After(time.Second):
		t.Fatal("no dirty notification after MutateImmediate")
	}
}

func TestReplace_DoesNotNotify(t *testing.T) {
	s := newTestStore(t)

	snap := s.Read()
	snap.UserName = "Mohamed"
	s.Replace(snap)

	select {
	case <-s.Dirty():
		t.Error("Replace must not schedule a push")
	case <-time.After(50 * time.Millisecond):
	}

	if s.Read().UserName != "Mohamed" {
		t.Error("Replace did not swap the snapshot")
	}
}

func TestSaveNow_WaitsForBackgroundWrites(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 20; i++ {
		s.Mutate(func(snap models.Snapshot) models.Snapshot {
			return reducer.AddWish(snap, "w", time.Now())
		})
	}
	if err := s.SaveNow(); err != nil {
		t.Fatal(err)
	}

	s2 := New(s.Path(), logger.NewNop())
	if err := s2.Load(); err != nil {
		t.Fatal(err)
	}
	if got := len(s2.Read().Wishes); got != 20 {
		t.Errorf("persisted wishes = %d, want 20", got)
	}
}
