package schedule

import (
	"testing"
	"time"

	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/plan"
)

func TestSubjectsForDay(t *testing.T) {
	subjects := plan.Seed()

	saturday := SubjectsForDay(subjects, time.Saturday)
	if len(saturday) != 1 || saturday[0].ID != "english" {
		t.Errorf("saturday subjects = %v", ids(saturday))
	}

	monday := SubjectsForDay(subjects, time.Monday)
	if len(monday) != 1 || monday[0].ID != "math" {
		t.Errorf("monday subjects = %v", ids(monday))
	}

	// Physics holds lessons twice a week.
	wednesday := SubjectsForDay(subjects, time.Wednesday)
	friday := SubjectsForDay(subjects, time.Friday)
	if len(wednesday) != 1 || wednesday[0].ID != "physics" || len(friday) != 1 {
		t.Errorf("physics days wrong: wed=%v fri=%v", ids(wednesday), ids(friday))
	}
}

func TestFocusForDay_LessonSubjectsFirst(t *testing.T) {
	subjects := plan.Seed()

	focus := FocusForDay(subjects, nil, time.Sunday)
	if len(focus) != 5 {
		t.Fatalf("focus entries = %d, want 5", len(focus))
	}
	// Chemistry has its lesson on Sunday, so it leads.
	if focus[0].Subject.ID != "chemistry" || !focus[0].HasLesson {
		t.Errorf("first focus = %s (lesson=%v), want chemistry", focus[0].Subject.ID, focus[0].HasLesson)
	}
	for _, f := range focus[1:] {
		if f.HasLesson {
			t.Errorf("unexpected second lesson subject %s on Sunday", f.Subject.ID)
		}
	}
}

func TestFocusForDay_LeastCompleteFirstWithinGroup(t *testing.T) {
	subjects := plan.Seed()

	// Finish all of english; it should drop to the back of the no-lesson group.
	completed := make(map[string]bool)
	for _, s := range subjects {
		if s.ID == "english" {
			for _, id := range s.MissionIDs() {
				completed[id] = true
			}
		}
	}

	focus := FocusForDay(subjects, completed, time.Sunday)
	last := focus[len(focus)-1]
	if last.Subject.ID != "english" || last.Progress != 100 {
		t.Errorf("finished subject not last: %s at %v%%", last.Subject.ID, last.Progress)
	}
}

func TestWeekOverview(t *testing.T) {
	overview := WeekOverview(plan.Seed())

	totalLessons := 0
	for _, subjects := range overview {
		totalLessons += len(subjects)
	}
	// english 1 + arabic 1 + chemistry 1 + physics 2 + math 2
	if totalLessons != 7 {
		t.Errorf("total weekly lessons = %d, want 7", totalLessons)
	}
	if len(overview[time.Thursday]) != 1 || overview[time.Thursday][0].ID != "math" {
		t.Errorf("thursday = %v", ids(overview[time.Thursday]))
	}
}

func ids(subjects []models.Subject) []string {
	out := make([]string, len(subjects))
	for i, s := range subjects {
		out[i] = s.ID
	}
	return out
}
