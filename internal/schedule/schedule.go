// Package schedule maps subjects' lesson days onto the week and orders the
// day's study focus: subjects with a lesson today come first ("new material
// first, following your lesson days"), then everything else by remaining work.
package schedule

import (
	"sort"
	"time"

	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/plan"
)

// DayFocus is one subject's standing for a given day.
type DayFocus struct {
	Subject   models.Subject
	HasLesson bool
	// Progress is the subject's completion percentage.
	Progress float64
}

// SubjectsForDay returns the subjects that have a lesson on the given weekday.
func SubjectsForDay(subjects []models.Subject, day time.Weekday) []models.Subject {
	var out []models.Subject
	for _, s := range subjects {
		if hasLessonOn(s, day) {
			out = append(out, s)
		}
	}
	return out
}

func hasLessonOn(s models.Subject, day time.Weekday) bool {
	for _, name := range s.LessonDays {
		if wd, ok := parseWeekday(name); ok && wd == day {
			return true
		}
	}
	return false
}

func parseWeekday(name string) (time.Weekday, bool) {
	switch name {
	case "Sunday", "sunday", "sun":
		return time.Sunday, true
	case "Monday", "monday", "mon":
		return time.Monday, true
	case "Tuesday", "tuesday", "tue":
		return time.Tuesday, true
	case "Wednesday", "wednesday", "wed":
		return time.Wednesday, true
	case "Thursday", "thursday", "thu":
		return time.Thursday, true
	case "Friday", "friday", "fri":
		return time.Friday, true
	case "Saturday", "saturday", "sat":
		return time.Saturday, true
	}
	return time.Sunday, false
}

// FocusForDay orders all subjects for the given day: lesson-day subjects
// first, then the rest, each group least-complete first so fresh material
// never hides behind nearly-finished subjects.
func FocusForDay(subjects []models.Subject, completed map[string]bool, day time.Weekday) []DayFocus {
	focus := make([]DayFocus, 0, len(subjects))
	for _, s := range subjects {
		focus = append(focus, DayFocus{
			Subject:   s,
			HasLesson: hasLessonOn(s, day),
			Progress:  plan.SubjectProgress(s, completed),
		})
	}
	sort.SliceStable(focus, func(i, j int) bool {
		if focus[i].HasLesson != focus[j].HasLesson {
			return focus[i].HasLesson
		}
		return focus[i].Progress < focus[j].Progress
	})
	return focus
}

// WeekOverview returns, for each weekday starting Saturday (the local school
// week), the subjects holding lessons that day.
func WeekOverview(subjects []models.Subject) map[time.Weekday][]models.Subject {
	out := make(map[time.Weekday][]models.Subject, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if day := SubjectsForDay(subjects, d); len(day) > 0 {
			out[d] = day
		}
	}
	return out
}
