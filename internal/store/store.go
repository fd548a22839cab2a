// Package store holds the in-process state container for the study plan. All
// mutations go through Mutate, which applies a pure reducer synchronously and
// persists the full snapshot to disk in the background. Local durability is
// best-effort; the cloud store is authoritative.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/omarhani/rafiq/internal/logger"
	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/plan"
)

// DirtyKind tells the sync engine how urgently a mutation should reach the
// cloud store.
type DirtyKind int

const (
	// DirtyDebounced batches plan/progress edits behind a short debounce window.
	DirtyDebounced DirtyKind = iota
	// DirtyImmediate pushes right away (wish and vent mutations).
	DirtyImmediate
)

type Store struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
	snap models.Snapshot

	dirty chan DirtyKind
	wg    sync.WaitGroup
	// fileMu serializes background writes so an older snapshot can never
	// clobber a newer one on disk.
	fileMu sync.Mutex
}

func New(path string, log *logger.Logger) *Store {
	return &Store{
		path:  path,
		log:   log,
		dirty: make(chan DirtyKind, 16),
	}
}

// Load restores the last persisted snapshot. When no snapshot exists (or it
// cannot be parsed) the store seeds from the default curriculum; a later cloud
// pull may fully overwrite the seeded plan.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		s.snap = seeded()
		return nil
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("snapshot unreadable, reseeding", "path", s.path, "error", err)
		s.snap = seeded()
		return nil
	}

	// Ensure maps are initialized
	if snap.CompletedMissions == nil {
		snap.CompletedMissions = make(map[string]bool)
	}
	if len(snap.Plan) == 0 {
		snap.Plan = plan.Seed()
	}
	s.snap = snap
	return nil
}

func seeded() models.Snapshot {
	return models.Snapshot{
		Plan:              plan.Seed(),
		CompletedMissions: make(map[string]bool),
	}
}

// Read returns a deep copy of the current state. It never blocks on I/O and
// never fails.
func (s *Store) Read() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Mutate applies one reducer synchronously, then fires a background persist
// and notifies the sync engine with debounced urgency.
func (s *Store) Mutate(apply func(models.Snapshot) models.Snapshot) {
	s.mutate(apply, DirtyDebounced)
}

// MutateImmediate is Mutate with immediate sync urgency, used for wish and
// vent edits.
func (s *Store) MutateImmediate(apply func(models.Snapshot) models.Snapshot) {
	s.mutate(apply, DirtyImmediate)
}

func (s *Store) mutate(apply func(models.Snapshot) models.Snapshot, kind DirtyKind) {
	s.mu.Lock()
	s.snap = apply(s.snap.Clone())
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.persist()
	}()

	select {
	case s.dirty <- kind:
	default:
		// The channel already carries pending notifications; the next sync
		// reads the whole snapshot anyway.
	}
}

// Replace swaps in a complete snapshot (cloud pull, user switch) and persists
// it. It does not emit a dirty notification, so a pull never schedules a push
// by itself.
func (s *Store) Replace(snap models.Snapshot) {
	s.mu.Lock()
	s.snap = snap.Clone()
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.persist()
	}()
}

// persist writes the freshest snapshot under the file lock. Failure is logged
// and swallowed: in-memory state stays authoritative for the session.
func (s *Store) persist() {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	if err := writeSnapshot(s.path, s.Read()); err != nil {
		s.log.Warn("local persist failed", "path", s.path, "error", err)
	}
}

// Dirty exposes mutation notifications for the sync engine.
func (s *Store) Dirty() <-chan DirtyKind {
	return s.dirty
}

// SaveNow persists the current snapshot synchronously. Used on shutdown and in
// tests; regular mutations persist in the background.
func (s *Store) SaveNow() error {
	s.wg.Wait()
	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	return writeSnapshot(s.path, s.Read())
}

// Path returns the snapshot blob location.
func (s *Store) Path() string {
	return s.path
}

func writeSnapshot(path string, snap models.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
