// Package syncer reconciles the local store with the cloud store. Pushes are
// whole-snapshot upserts under last-write-wins; the engine never blocks the
// mutation path and never surfaces background failures as fatal errors.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/omarhani/rafiq/internal/backup"
	"github.com/omarhani/rafiq/internal/cloud"
	"github.com/omarhani/rafiq/internal/identity"
	"github.com/omarhani/rafiq/internal/logger"
	"github.com/omarhani/rafiq/internal/store"
)

// State is the engine's connection state for the active identity.
type State int

const (
	StateDisconnected State = iota
	StateIdle
	StateSyncing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSyncing:
		return "syncing"
	default:
		return "disconnected"
	}
}

// DefaultDebounce batches rapid plan edits into one push.
const DefaultDebounce = time.Second

const pushTimeout = 15 * time.Second

type Engine struct {
	local   *store.Store
	remote  cloud.Store
	session *identity.Session
	backups *backup.Manager
	log     *logger.Logger

	debounce time.Duration

	mu            sync.Mutex
	inFlight      bool
	trailing      bool
	syncing       int
	debounceTimer *time.Timer

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func New(local *store.Store, remote cloud.Store, session *identity.Session, backups *backup.Manager, log *logger.Logger) *Engine {
	return &Engine{
		local:    local,
		remote:   remote,
		session:  session,
		backups:  backups,
		log:      log.With("component", "syncer"),
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// SetDebounce overrides the debounce window. Used in tests.
func (e *Engine) SetDebounce(d time.Duration) {
	e.debounce = d
}

// Start begins consuming the store's dirty notifications in the background.
func (e *Engine) Start() {
	go e.run()
}

// Stop shuts the background loop down. In-flight pushes run to completion.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
	<-e.doneCh
}

func (e *Engine) run() {
	defer close(e.doneCh)
	for {
		select {
		case kind := <-e.local.Dirty():
			if kind == store.DirtyImmediate {
				e.requestPush()
				continue
			}
			e.mu.Lock()
			if e.debounceTimer != nil {
				e.debounceTimer.Stop()
			}
			e.debounceTimer = time.AfterFunc(e.debounce, e.requestPush)
			e.mu.Unlock()
		case <-e.stopCh:
			e.mu.Lock()
			if e.debounceTimer != nil {
				e.debounceTimer.Stop()
			}
			e.mu.Unlock()
			return
		}
	}
}

// State reports the current connection state.
func (e *Engine) State() State {
	if !e.session.Active() {
		return StateDisconnected
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight || e.syncing > 0 {
		return StateSyncing
	}
	return StateIdle
}

// requestPush collapses overlapping triggers into at most one in-flight push
// plus one trailing push. Last-write-wins makes the collapsed pushes
// equivalent to firing each one.
func (e *Engine) requestPush() {
	if !e.session.Active() {
		return
	}
	e.mu.Lock()
	if e.inFlight {
		e.trailing = true
		e.mu.Unlock()
		return
	}
	e.inFlight = true
	e.mu.Unlock()

	go e.pushLoop()
}

func (e *Engine) pushLoop() {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		err := e.push(ctx)
		cancel()
		if err != nil {
			// Best-effort: no retry, no rollback of local state.
			e.log.Warn("background push failed", "user", e.session.Key(), "error", err)
		}

		e.mu.Lock()
		if !e.trailing {
			e.inFlight = false
			e.mu.Unlock()
			return
		}
		e.trailing = false
		e.mu.Unlock()
	}
}

func (e *Engine) push(ctx context.Context) error {
	key := e.session.Key()
	if key == "" {
		return fmt.Errorf("no identity set")
	}
	snap := e.local.Read()
	snap.UserName = e.session.Name()
	if err := e.remote.Upsert(ctx, cloud.RecordFromSnapshot(key, snap)); err != nil {
		return fmt.Errorf("cloud upsert failed: %w", err)
	}
	return nil
}

// SyncNow pushes the current snapshot synchronously. Used by the explicit
// "sync now" action; the returned error is for a transient notification only.
func (e *Engine) SyncNow(ctx context.Context) error {
	if !e.session.Active() {
		return fmt.Errorf("not connected to the cloud")
	}
	e.beginSyncing()
	defer e.endSyncing()
	return e.push(ctx)
}

// Pull fetches the identity's remote row and, when one exists, unconditionally
// replaces the whole local snapshot with it. A missing row leaves local state
// untouched (first run, nothing synced yet). The previous local blob is backed
// up first so the overwrite is recoverable.
func (e *Engine) Pull(ctx context.Context) error {
	_, err := e.pull(ctx)
	return err
}

// pull reports whether a remote row existed. An error means the remote state
// is unknown, which callers must not treat the same as a missing row.
func (e *Engine) pull(ctx context.Context) (bool, error) {
	key := e.session.Key()
	if key == "" {
		return false, fmt.Errorf("not connected to the cloud")
	}
	e.beginSyncing()
	defer e.endSyncing()

	rec, found, err := e.remote.Select(ctx, key)
	if err != nil {
		return false, fmt.Errorf("cloud select failed: %w", err)
	}
	if !found {
		return false, nil
	}

	if e.backups != nil {
		if _, err := e.backups.Create(); err != nil {
			// A failed backup never blocks the pull.
			e.log.Warn("pre-pull backup failed", "error", err)
		}
	}

	snap := cloud.SnapshotFromRecord(rec)
	e.local.Replace(snap)
	return true, nil
}

// Probe checks that the cloud backend answers a read for the active identity.
// Used by diagnostics; it never mutates local or remote state.
func (e *Engine) Probe(ctx context.Context) error {
	key := e.session.Key()
	if key == "" {
		return fmt.Errorf("not connected to the cloud")
	}
	_, _, err := e.remote.Select(ctx, key)
	return err
}

// SwitchUser moves the session from the active identity to another one,
// carrying plan structure across while keeping the target's own progress:
// the resulting state is exactly {plan: previous user's plan, progress:
// target's pulled progress}, pushed back to the target's key immediately.
// When the target's row cannot be read the push is skipped, so a transient
// remote failure never overwrites the target's progress with the previous
// user's; the switch still happens locally.
func (e *Engine) SwitchUser(ctx context.Context, name string) error {
	capturedPlan := e.local.Read().Plan

	e.session.Set(name)
	_, pullErr := e.pull(ctx)

	merged := e.local.Read()
	merged.Plan = capturedPlan
	merged.UserName = name
	e.local.Replace(merged)

	if pullErr != nil {
		e.log.Warn("pull on user switch failed, skipping push", "user", name, "error", pullErr)
		return nil
	}
	if err := e.SyncNow(ctx); err != nil {
		e.log.Warn("push on user switch failed", "user", name, "error", err)
	}
	return nil
}

// Connect activates an identity and pulls its remote snapshot. Passing an
// empty name disconnects; the local store keeps working offline. The active
// name is persisted on the snapshot so the next process start resumes it.
func (e *Engine) Connect(ctx context.Context, name string) error {
	e.session.Set(name)

	pullErr := error(nil)
	if name != "" {
		pullErr = e.Pull(ctx)
	}

	snap := e.local.Read()
	snap.UserName = name
	e.local.Replace(snap)
	return pullErr
}

func (e *Engine) beginSyncing() {
	e.mu.Lock()
	e.syncing++
	e.mu.Unlock()
}

func (e *Engine) endSyncing() {
	e.mu.Lock()
	e.syncing--
	e.mu.Unlock()
}
