package plan

import (
	"testing"

	"github.com/omarhani/rafiq/internal/models"
)

func TestSeed_Shape(t *testing.T) {
	subjects := Seed()

	if len(subjects) != 5 {
		t.Fatalf("subjects = %d, want 5", len(subjects))
	}

	shapes := map[string]models.ContainmentKind{
		"english":   models.ContainmentFlat,
		"arabic":    models.ContainmentUnitized,
		"chemistry": models.ContainmentFlat,
		"physics":   models.ContainmentSectioned,
		"math":      models.ContainmentFlat,
	}
	for _, s := range subjects {
		want, ok := shapes[s.ID]
		if !ok {
			t.Errorf("unexpected subject %s", s.ID)
			continue
		}
		if s.Containment != want {
			t.Errorf("%s containment = %s, want %s", s.ID, s.Containment, want)
		}
		if len(s.AllMissions()) == 0 {
			t.Errorf("%s has no missions", s.ID)
		}
	}

	// Mission ids are globally unique.
	seen := make(map[string]bool)
	for _, id := range AllMissionIDs(subjects) {
		if seen[id] {
			t.Errorf("duplicate mission id %s", id)
		}
		seen[id] = true
	}
}

func TestDefaultPhilosophy(t *testing.T) {
	p := DefaultPhilosophy()
	if p.Title == "" {
		t.Error("philosophy has no title")
	}
	if len(p.Principles) != 5 {
		t.Errorf("principles = %d, want 5", len(p.Principles))
	}
	for i, principle := range p.Principles {
		if principle == "" {
			t.Errorf("principle %d is empty", i)
		}
	}
}

func TestFindMission(t *testing.T) {
	subjects := Seed()

	m, subjectID, ok := FindMission(subjects, "ar-u6-m2")
	if !ok {
		t.Fatal("ar-u6-m2 not found")
	}
	if subjectID != "arabic" {
		t.Errorf("subject = %s, want arabic", subjectID)
	}
	if m.Title == "" {
		t.Error("mission title empty")
	}

	if _, _, ok := FindMission(subjects, "nope"); ok {
		t.Error("found a mission that does not exist")
	}
}

func TestFindSubject(t *testing.T) {
	subjects := Seed()
	if idx := FindSubject(subjects, "physics"); idx < 0 {
		t.Error("physics not found")
	}
	if idx := FindSubject(subjects, "history"); idx != -1 {
		t.Errorf("unknown subject index = %d, want -1", idx)
	}
}

func TestSubjectProgress(t *testing.T) {
	subjects := Seed()
	idx := FindSubject(subjects, "chemistry")
	chem := subjects[idx]

	if got := SubjectProgress(chem, nil); got != 0 {
		t.Errorf("empty progress = %v, want 0", got)
	}

	completed := map[string]bool{"ch-m1": true, "ch-m2": true}
	if got := SubjectProgress(chem, completed); got != 25 {
		t.Errorf("2/8 progress = %v, want 25", got)
	}

	// Completion flags from other subjects don't count.
	completed["en-m1"] = true
	if got := SubjectProgress(chem, completed); got != 25 {
		t.Errorf("cross-subject progress = %v, want 25", got)
	}
}

func TestSubjectProgress_EmptySubject(t *testing.T) {
	empty := models.Subject{ID: "x", Containment: models.ContainmentFlat}
	if got := SubjectProgress(empty, map[string]bool{}); got != 0 {
		t.Errorf("progress of empty subject = %v, want 0", got)
	}
}

func TestTotalProgress(t *testing.T) {
	subjects := Seed()

	completed := make(map[string]bool)
	for _, id := range AllMissionIDs(subjects) {
		completed[id] = true
	}
	if got := TotalProgress(subjects, completed); got != 100 {
		t.Errorf("all-complete total = %v, want 100", got)
	}

	if got := TotalProgress(subjects, nil); got != 0 {
		t.Errorf("no-progress total = %v, want 0", got)
	}
}
