package syncer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/omarhani/rafiq/internal/cloud"
	"github.com/omarhani/rafiq/internal/identity"
	"github.com/omarhani/rafiq/internal/logger"
	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/reducer"
	"github.com/omarhani/rafiq/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store, *cloud.MemoryStore, *identity.Session) {
	t.Helper()
	local := store.New(filepath.Join(t.TempDir(), "snapshot.json"), logger.NewNop())
	if err := local.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	// Drain background persists before TempDir cleanup removes the directory.
	t.Cleanup(func() { _ = local.SaveNow() })
	remote := cloud.NewMemoryStore()
	session := identity.NewSession()
	engine := New(local, remote, session, nil, logger.NewNop())
	return engine, local, remote, session
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestSyncNow_PushesSnapshotUnderStorageKey(t *testing.T) {
	engine, local, remote, session := newTestEngine(t)
	session.Set("Mohamed")

	local.Mutate(func(s models.Snapshot) models.Snapshot {
		return reducer.ToggleMission(s, "ch-m1", time.Now())
	})
	if err := engine.SyncNow(context.Background()); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	rec, found, err := remote.Select(context.Background(), "user-mohamed")
	if err != nil || !found {
		t.Fatalf("remote row missing: found=%v err=%v", found, err)
	}
	if !rec.Progress.CompletedMissions["ch-m1"] {
		t.Error("pushed record lost the completed mission")
	}
	if rec.Progress.UserName != "Mohamed" {
		t.Errorf("pushed user name = %q", rec.Progress.UserName)
	}
}

func TestSyncNow_RequiresIdentity(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	if err := engine.SyncNow(context.Background()); err == nil {
		t.Error("expected error without an active identity")
	}
}

func TestPushFailure_KeepsLocalState(t *testing.T) {
	engine, local, remote, session := newTestEngine(t)
	session.Set("Mohamed")
	remote.FailUpserts = true

	local.Mutate(func(s models.Snapshot) models.Snapshot {
		return reducer.ToggleMission(s, "ch-m1", time.Now())
	})
	if err := engine.SyncNow(context.Background()); err == nil {
		t.Fatal("expected push to fail")
	}

	// Fail-open: the local mutation survives the failed push.
	if !local.Read().CompletedMissions["ch-m1"] {
		t.Error("failed push rolled back local state")
	}
}

func TestBackgroundPush_DebouncesPlanEdits(t *testing.T) {
	engine, local, remote, session := newTestEngine(t)
	session.Set("Mohamed")
	engine.SetDebounce(20 * time.Millisecond)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	for _, id := range []string{"ch-m1", "ch-m2", "ch-m3"} {
		missionID := id
		local.Mutate(func(s models.Snapshot) models.Snapshot {
			return reducer.ToggleMission(s, missionID, now)
		})
	}

	waitFor(t, 2*time.Second, func() bool {
		rec, found, _ := remote.Select(context.Background(), "user-mohamed")
		return found && len(rec.Progress.CompletedMissions) == 3
	})
}

func TestBackgroundPush_ImmediateForJournalEdits(t *testing.T) {
	engine, local, remote, session := newTestEngine(t)
	session.Set("Mohamed")
	// A long debounce proves immediate pushes bypass it.
	engine.SetDebounce(time.Hour)
	engine.Start()
	defer engine.Stop()

	local.MutateImmediate(func(s models.Snapshot) models.Snapshot {
		return reducer.AddWish(s, "push me now", time.Now())
	})

	waitFor(t, 2*time.Second, func() bool {
		rec, found, _ := remote.Select(context.Background(), "user-mohamed")
		return found && len(rec.Progress.Wishes) == 1
	})
}

func TestPull_ReplacesLocalWholesale(t *testing.T) {
	engine, local, remote, session := newTestEngine(t)
	session.Set("Mohamed")

	// Seed the remote with different state.
	remoteSnap := local.Read()
	remoteSnap = reducer.ToggleMission(remoteSnap, "math-m5", time.Now())
	remoteSnap = reducer.AddWish(remoteSnap, "remote wish", time.Now())
	remoteSnap.UserName = "Mohamed"
	if err := remote.Upsert(context.Background(), cloud.RecordFromSnapshot("user-mohamed", remoteSnap)); err != nil {
		t.Fatal(err)
	}

	// Local diverges.
	local.Mutate(func(s models.Snapshot) models.Snapshot {
		return reducer.ToggleMission(s, "ch-m1", time.Now())
	})

	if err := engine.Pull(context.Background()); err != nil {
		t.Fatalf("pull failed: %v", err)
	}

	snap := local.Read()
	if !snap.CompletedMissions["math-m5"] {
		t.Error("pull did not adopt remote progress")
	}
	if snap.CompletedMissions["ch-m1"] {
		t.Error("pull must replace wholesale, local divergence should be gone")
	}
	if len(snap.Wishes) != 1 || snap.Wishes[0].Text != "remote wish" {
		t.Errorf("pull lost remote wishes: %+v", snap.Wishes)
	}
}

func TestPull_MissingRowLeavesLocalUntouched(t *testing.T) {
	engine, local, _, session := newTestEngine(t)
	session.Set("Mohamed")

	local.Mutate(func(s models.Snapshot) models.Snapshot {
		return reducer.ToggleMission(s, "ch-m1", time.Now())
	})

	if err := engine.Pull(context.Background()); err != nil {
		t.Fatalf("pull of missing row must not error: %v", err)
	}
	if !local.Read().CompletedMissions["ch-m1"] {
		t.Error("pull of missing row wiped local state")
	}
}

func TestPull_DoesNotTriggerPushback(t *testing.T) {
	engine, local, remote, session := newTestEngine(t)
	session.Set("Mohamed")
	engine.SetDebounce(10 * time.Millisecond)
	engine.Start()
	defer engine.Stop()

	snap := local.Read()
	snap.UserName = "Mohamed"
	if err := remote.Upsert(context.Background(), cloud.RecordFromSnapshot("user-mohamed", snap)); err != nil {
		t.Fatal(err)
	}

	if err := engine.Pull(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Give a would-be echo push time to fire; none should.
	time.Sleep(100 * time.Millisecond)
	if remote.Len() != 1 {
		t.Errorf("remote rows = %d, want 1", remote.Len())
	}
}

func TestSwitchUser_CarriesPlanKeepsTargetProgress(t *testing.T) {
	engine, local, remote, session := newTestEngine(t)
	ctx := context.Background()

	// Enji has her own remote progress over the stock plan.
	enjiSnap := local.Read()
	enjiSnap = reducer.ToggleMission(enjiSnap, "en-m1", time.Now())
	enjiSnap = reducer.AddWish(enjiSnap, "enji's wish", time.Now())
	enjiSnap.UserName = "Enji"
	if err := remote.Upsert(ctx, cloud.RecordFromSnapshot("user-enji", enjiSnap)); err != nil {
		t.Fatal(err)
	}

	// Mohamed is active, has edited the plan structure and made progress.
	session.Set("Mohamed")
	title := "Rewritten by Mohamed"
	local.Mutate(func(s models.Snapshot) models.Snapshot {
		s = reducer.UpdateMission(s, "chemistry", "ch-m1", reducer.MissionPatch{Title: &title})
		return reducer.ToggleMission(s, "ch-m5", time.Now())
	})

	if err := engine.SwitchUser(ctx, "Enji"); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	snap := local.Read()
	// Plan structure carried over from Mohamed.
	found := false
	for _, subj := range snap.Plan {
		for _, m := range subj.AllMissions() {
			if m.ID == "ch-m1" && m.Title == "Rewritten by Mohamed" {
				found = true
			}
		}
	}
	if !found {
		t.Error("plan edit did not carry across the switch")
	}
	// Progress is Enji's, not Mohamed's.
	if snap.CompletedMissions["ch-m5"] {
		t.Error("previous user's progress leaked into the target")
	}
	if !snap.CompletedMissions["en-m1"] {
		t.Error("target's own progress missing")
	}
	if len(snap.Wishes) != 1 || snap.Wishes[0].Text != "enji's wish" {
		t.Errorf("target's wishes missing: %+v", snap.Wishes)
	}
	if snap.UserName != "Enji" {
		t.Errorf("snapshot user = %q", snap.UserName)
	}
	if session.Key() != "user-enji" {
		t.Errorf("session key = %q", session.Key())
	}

	// The merged state was pushed back to the target's key.
	rec, foundRec, err := remote.Select(ctx, "user-enji")
	if err != nil || !foundRec {
		t.Fatalf("merged state not pushed: found=%v err=%v", foundRec, err)
	}
	if !rec.Progress.CompletedMissions["en-m1"] {
		t.Error("pushed merged state lost target progress")
	}
}

func TestSwitchUser_FirstTimeTargetAdoptsCurrentPlan(t *testing.T) {
	engine, local, remote, session := newTestEngine(t)
	ctx := context.Background()
	session.Set("Mohamed")

	local.Mutate(func(s models.Snapshot) models.Snapshot {
		return reducer.ToggleMission(s, "ch-m1", time.Now())
	})

	// Enji has no remote row yet; local progress carries along with the plan.
	if err := engine.SwitchUser(ctx, "Enji"); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	if session.Name() != "Enji" {
		t.Errorf("session = %q", session.Name())
	}
	if _, found, _ := remote.Select(ctx, "user-enji"); !found {
		t.Error("switch did not push the adopted state to the new identity")
	}
}

func TestSwitchUser_PullFailureStillSwitches(t *testing.T) {
	engine, _, remote, session := newTestEngine(t)
	session.Set("Mohamed")
	remote.FailSelects = true

	if err := engine.SwitchUser(context.Background(), "Enji"); err != nil {
		t.Fatalf("switch must fail open: %v", err)
	}
	if session.Name() != "Enji" {
		t.Errorf("session = %q after failed pull", session.Name())
	}
}

func TestSwitchUser_PullFailurePreservesTargetRemoteRow(t *testing.T) {
	engine, local, remote, session := newTestEngine(t)
	ctx := context.Background()

	// Enji's remote row holds her own progress.
	enjiSnap := local.Read()
	enjiSnap = reducer.ToggleMission(enjiSnap, "en-m1", time.Now())
	enjiSnap.UserName = "Enji"
	if err := remote.Upsert(ctx, cloud.RecordFromSnapshot("user-enji", enjiSnap)); err != nil {
		t.Fatal(err)
	}

	// Mohamed is active with progress of his own.
	session.Set("Mohamed")
	local.Mutate(func(s models.Snapshot) models.Snapshot {
		return reducer.ToggleMission(s, "ch-m5", time.Now())
	})

	// The switch-time pull hits a transient remote failure.
	remote.FailSelects = true
	if err := engine.SwitchUser(ctx, "Enji"); err != nil {
		t.Fatalf("switch must fail open: %v", err)
	}
	remote.FailSelects = false

	if session.Name() != "Enji" {
		t.Errorf("session = %q after failed pull", session.Name())
	}
	if local.Read().UserName != "Enji" {
		t.Errorf("snapshot user = %q after failed pull", local.Read().UserName)
	}

	// Enji's row was not overwritten with Mohamed's state.
	rec, found, err := remote.Select(ctx, "user-enji")
	if err != nil || !found {
		t.Fatalf("target row gone: found=%v err=%v", found, err)
	}
	if !rec.Progress.CompletedMissions["en-m1"] {
		t.Error("target's own progress lost from the remote row")
	}
	if rec.Progress.CompletedMissions["ch-m5"] {
		t.Error("previous user's progress pushed over the target's row")
	}
}

func TestConnect_PersistsIdentityOnSnapshot(t *testing.T) {
	engine, local, _, session := newTestEngine(t)

	if err := engine.Connect(context.Background(), "Mohamed"); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if local.Read().UserName != "Mohamed" {
		t.Error("identity not persisted on the snapshot")
	}

	if err := engine.Connect(context.Background(), ""); err != nil {
		t.Fatalf("disconnect failed: %v", err)
	}
	if local.Read().UserName != "" {
		t.Error("disconnect left identity on the snapshot")
	}
	if session.Active() {
		t.Error("session still active after disconnect")
	}
}

func TestState_Transitions(t *testing.T) {
	engine, _, _, session := newTestEngine(t)

	if engine.State() != StateDisconnected {
		t.Errorf("state = %v, want disconnected", engine.State())
	}
	session.Set("Mohamed")
	if engine.State() != StateIdle {
		t.Errorf("state = %v, want idle", engine.State())
	}
}
