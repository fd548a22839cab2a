package cloud

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/omarhani/rafiq/internal/logger"
	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/plan"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cloud.db"), logger.NewNop())
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seededRecord(userID string) Record {
	snap := models.Snapshot{
		Plan:              plan.Seed(),
		CompletedMissions: map[string]bool{"ch-m1": true, "en-m2": true},
		Wishes: []models.Wish{
			{ID: "w1", Text: "finish chapter four", CreatedAt: time.Now().UTC()},
		},
		VentLogs: []models.VentLog{
			{ID: "v1", Content: "long day", Mood: "Tired", SentimentScore: -0.2, CreatedAt: time.Now().UTC()},
		},
		Timeline: []models.TimelineEvent{
			{ID: "t1", Type: models.TimelineEventMission, Title: "Mission accomplished! 🎉", CreatedAt: time.Now().UTC()},
		},
		UserName: "Mohamed",
	}
	return RecordFromSnapshot(userID, snap)
}

func TestSQLiteStore_UpsertSelectRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := s.Upsert(ctx, seededRecord("user-mohamed")); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	rec, found, err := s.Select(ctx, "user-mohamed")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}

	if len(rec.Plan) != 5 {
		t.Fatalf("plan subjects = %d, want 5", len(rec.Plan))
	}
	// Containment shapes must survive normalization.
	for _, subj := range rec.Plan {
		switch subj.ID {
		case "arabic":
			if subj.Containment != models.ContainmentUnitized || len(subj.Units) != 4 {
				t.Errorf("arabic reassembled wrong: %s, %d units", subj.Containment, len(subj.Units))
			}
		case "physics":
			if subj.Containment != models.ContainmentSectioned || len(subj.Sections) != 2 {
				t.Errorf("physics reassembled wrong: %s, %d sections", subj.Containment, len(subj.Sections))
			}
		case "chemistry":
			if len(subj.Missions) != 8 {
				t.Errorf("chemistry missions = %d, want 8", len(subj.Missions))
			}
		}
	}

	if !rec.Progress.CompletedMissions["ch-m1"] || !rec.Progress.CompletedMissions["en-m2"] {
		t.Errorf("completed missions lost: %v", rec.Progress.CompletedMissions)
	}
	if len(rec.Progress.Wishes) != 1 || rec.Progress.Wishes[0].Text != "finish chapter four" {
		t.Errorf("wishes lost: %+v", rec.Progress.Wishes)
	}
	if len(rec.Progress.VentLogs) != 1 || rec.Progress.VentLogs[0].Mood != "Tired" {
		t.Errorf("vent logs lost: %+v", rec.Progress.VentLogs)
	}
	if len(rec.Progress.Timeline) != 1 {
		t.Errorf("timeline lost: %+v", rec.Progress.Timeline)
	}
	if rec.Progress.UserName != "Mohamed" {
		t.Errorf("user name = %q", rec.Progress.UserName)
	}
}

func TestSQLiteStore_UpsertIsReplaceByKey(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := s.Upsert(ctx, seededRecord("user-mohamed")); err != nil {
		t.Fatal(err)
	}

	// Second upsert with fewer wishes must fully replace, not accumulate.
	rec := seededRecord("user-mohamed")
	rec.Progress.Wishes = nil
	rec.Progress.CompletedMissions = map[string]bool{"math-m1": true}
	if err := s.Upsert(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, _, err := s.Select(ctx, "user-mohamed")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Progress.Wishes) != 0 {
		t.Errorf("old wishes survived the replace: %+v", got.Progress.Wishes)
	}
	if got.Progress.CompletedMissions["ch-m1"] {
		t.Error("old completion flags survived the replace")
	}
	if !got.Progress.CompletedMissions["math-m1"] {
		t.Error("new completion flag missing")
	}
}

func TestSQLiteStore_SelectMissingUser(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, found, err := s.Select(context.Background(), "user-nobody")
	if err != nil {
		t.Fatalf("missing user must not error: %v", err)
	}
	if found {
		t.Error("expected found=false for missing user")
	}
}

func TestSQLiteStore_UsersAreIsolated(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := s.Upsert(ctx, seededRecord("user-mohamed")); err != nil {
		t.Fatal(err)
	}
	other := seededRecord("user-enji")
	other.Progress.UserName = "Enji"
	other.Progress.CompletedMissions = map[string]bool{}
	if err := s.Upsert(ctx, other); err != nil {
		t.Fatal(err)
	}

	rec, _, err := s.Select(ctx, "user-enji")
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Progress.CompletedMissions) != 0 {
		t.Errorf("user-enji sees user-mohamed's progress: %v", rec.Progress.CompletedMissions)
	}
	if rec.Progress.UserName != "Enji" {
		t.Errorf("user name = %q", rec.Progress.UserName)
	}
}

func TestSQLiteStore_ToggleMissionLockstep(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	if err := s.Upsert(ctx, seededRecord("user-mohamed")); err != nil {
		t.Fatal(err)
	}

	// Completing drives progress to 100.
	done, err := s.ToggleMission(ctx, "user-mohamed", "math-m1")
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("expected mission completed")
	}
	progress, completed, err := s.MissionProgress(ctx, "user-mohamed", "math-m1")
	if err != nil {
		t.Fatal(err)
	}
	if progress != 100 || !completed {
		t.Errorf("after complete: progress=%v completed=%v", progress, completed)
	}

	// Uncompleting a full mission resets progress to 0.
	if _, err := s.ToggleMission(ctx, "user-mohamed", "math-m1"); err != nil {
		t.Fatal(err)
	}
	progress, completed, _ = s.MissionProgress(ctx, "user-mohamed", "math-m1")
	if progress != 0 || completed {
		t.Errorf("after uncomplete: progress=%v completed=%v", progress, completed)
	}

	// Partial progress is preserved when uncompleting a manually completed row.
	if err := s.SetMissionProgress(ctx, "user-mohamed", "math-m2", 40); err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.ExecContext(ctx,
		"UPDATE missions SET is_completed = 1 WHERE user_id = ? AND id = ?",
		"user-mohamed", "math-m2"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleMission(ctx, "user-mohamed", "math-m2"); err != nil {
		t.Fatal(err)
	}
	progress, completed, _ = s.MissionProgress(ctx, "user-mohamed", "math-m2")
	if progress != 40 || completed {
		t.Errorf("partial progress not preserved: progress=%v completed=%v", progress, completed)
	}
}

func TestSQLiteStore_SetMissionProgressDerivesFlag(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	if err := s.Upsert(ctx, seededRecord("user-mohamed")); err != nil {
		t.Fatal(err)
	}

	if err := s.SetMissionProgress(ctx, "user-mohamed", "en-m1", 100); err != nil {
		t.Fatal(err)
	}
	progress, completed, _ := s.MissionProgress(ctx, "user-mohamed", "en-m1")
	if progress != 100 || !completed {
		t.Errorf("progress=100 must imply completed, got progress=%v completed=%v", progress, completed)
	}

	// Out-of-range values clamp.
	if err := s.SetMissionProgress(ctx, "user-mohamed", "en-m1", 150); err != nil {
		t.Fatal(err)
	}
	progress, _, _ = s.MissionProgress(ctx, "user-mohamed", "en-m1")
	if progress != 100 {
		t.Errorf("progress not clamped: %v", progress)
	}
}
