package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/plan"
)

func cleanSnapshot() models.Snapshot {
	return models.Snapshot{
		Plan:              plan.Seed(),
		CompletedMissions: make(map[string]bool),
	}
}

func conflictTypes(r Result) map[ConflictType]int {
	out := make(map[ConflictType]int)
	for _, c := range r.Conflicts {
		out[c.Type]++
	}
	return out
}

func TestValidateSnapshot_CleanSeed(t *testing.T) {
	result := New().ValidateSnapshot(cleanSnapshot())
	if result.HasConflicts() {
		t.Errorf("seeded snapshot should validate clean, got %+v", result.Conflicts)
	}
}

func TestValidateSnapshot_DuplicateIDs(t *testing.T) {
	snap := cleanSnapshot()
	snap.Plan = append(snap.Plan, snap.Plan[0])

	types := conflictTypes(New().ValidateSnapshot(snap))
	if types[ConflictDuplicateSubjectID] == 0 {
		t.Error("duplicate subject id not flagged")
	}
	if types[ConflictDuplicateMissionID] == 0 {
		t.Error("duplicate mission ids not flagged")
	}
}

func TestValidateSnapshot_Containment(t *testing.T) {
	snap := cleanSnapshot()
	snap.Plan[0].Containment = "nested"

	types := conflictTypes(New().ValidateSnapshot(snap))
	if types[ConflictUnknownContainment] == 0 {
		t.Error("unknown containment not flagged")
	}

	snap = cleanSnapshot()
	// A flat subject must not also carry units.
	snap.Plan[0].Units = []models.Unit{{Name: "stray", Missions: nil}}
	snap.Plan[0].Units[0].Missions = []models.Mission{{ID: "stray-m1", Title: "stray"}}

	types = conflictTypes(New().ValidateSnapshot(snap))
	if types[ConflictMixedContainment] == 0 {
		t.Error("mixed containment not flagged")
	}
}

func TestValidateSnapshot_OrphanCompletedFlag(t *testing.T) {
	snap := cleanSnapshot()
	snap.CompletedMissions["ghost-m1"] = true
	snap.CompletedMissions["ch-m1"] = true

	types := conflictTypes(New().ValidateSnapshot(snap))
	if types[ConflictOrphanCompletedFlag] != 1 {
		t.Errorf("orphan flags = %d, want 1", types[ConflictOrphanCompletedFlag])
	}
}

func TestValidateSnapshot_Timeline(t *testing.T) {
	snap := cleanSnapshot()
	base := time.Now()
	for i := 0; i < models.MaxTimelineEvents+5; i++ {
		snap.Timeline = append(snap.Timeline, models.TimelineEvent{
			ID:        fmt.Sprintf("t%d", i),
			Type:      models.TimelineEventVent,
			Title:     "entry",
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}

	types := conflictTypes(New().ValidateSnapshot(snap))
	if types[ConflictTimelineOverflow] == 0 {
		t.Error("timeline overflow not flagged")
	}
	if types[ConflictTimelineOutOfOrder] != 0 {
		t.Error("newest-first timeline wrongly flagged as out of order")
	}

	// Swap two entries out of order.
	snap.Timeline[0], snap.Timeline[1] = snap.Timeline[1], snap.Timeline[0]
	types = conflictTypes(New().ValidateSnapshot(snap))
	if types[ConflictTimelineOutOfOrder] == 0 {
		t.Error("out-of-order timeline not flagged")
	}
}
