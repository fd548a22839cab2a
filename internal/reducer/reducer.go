// Package reducer holds the pure state transitions of the study plan. Each
// function takes a snapshot and returns the next one; scheduling of
// persistence and cloud sync happens in the caller, never here.
package reducer

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarhani/rafiq/internal/models"
)

const (
	missionEventTitle = "Mission accomplished! 🎉"
	ventEventTitle    = "Let it all out 🍃"
)

// MissionPatch is a partial mission edit. Nil fields are left untouched.
type MissionPatch struct {
	Title    *string
	Content  *string
	Duration *string
	Method   *string
	Outcome  *string
	Priority *int
	Deadline *string
	Links    *models.MissionLinks
}

// SubjectPatch is a partial subject edit. Nil fields are left untouched.
type SubjectPatch struct {
	Name          *string
	Icon          *string
	Theme         *models.Theme
	LessonDays    *[]string
	ScheduleImage *string
}

// ToggleMission flips the completion flag for the given mission id, creating
// the entry as false first when absent. Completing a mission (false→true)
// records a timeline event; uncompleting does not. The mission id is not
// validated against the plan.
func ToggleMission(s models.Snapshot, missionID string, now time.Time) models.Snapshot {
	out := s.Clone()
	if out.CompletedMissions == nil {
		out.CompletedMissions = make(map[string]bool)
	}
	wasCompleted := out.CompletedMissions[missionID]
	out.CompletedMissions[missionID] = !wasCompleted

	if !wasCompleted {
		out.Timeline = pushEvent(out.Timeline, models.TimelineEventMission, missionEventTitle, now)
	}
	return out
}

// UpdateMission shallow-merges the patch into the mission with the given id
// under the given subject. Unknown subject or mission ids leave the snapshot
// unchanged.
func UpdateMission(s models.Snapshot, subjectID, missionID string, patch MissionPatch) models.Snapshot {
	out := s.Clone()
	for i := range out.Plan {
		if out.Plan[i].ID != subjectID {
			continue
		}
		subj := &out.Plan[i]
		switch subj.Containment {
		case models.ContainmentFlat:
			patchMissions(subj.Missions, missionID, patch)
		case models.ContainmentUnitized:
			for j := range subj.Units {
				patchMissions(subj.Units[j].Missions, missionID, patch)
			}
		case models.ContainmentSectioned:
			for j := range subj.Sections {
				patchMissions(subj.Sections[j].Missions, missionID, patch)
			}
		}
		return out
	}
	return out
}

func patchMissions(missions []models.Mission, missionID string, patch MissionPatch) {
	for i := range missions {
		if missions[i].ID != missionID {
			continue
		}
		m := &missions[i]
		if patch.Title != nil {
			m.Title = *patch.Title
		}
		if patch.Content != nil {
			m.Content = *patch.Content
		}
		if patch.Duration != nil {
			m.Duration = *patch.Duration
		}
		if patch.Method != nil {
			m.Method = *patch.Method
		}
		if patch.Outcome != nil {
			m.Outcome = *patch.Outcome
		}
		if patch.Priority != nil {
			m.Priority = *patch.Priority
		}
		if patch.Deadline != nil {
			m.Deadline = *patch.Deadline
		}
		if patch.Links != nil {
			links := *patch.Links
			m.Links = &links
		}
		return
	}
}

// UpdateSubject shallow-merges the patch into the subject with the given id;
// no effect when absent.
func UpdateSubject(s models.Snapshot, subjectID string, patch SubjectPatch) models.Snapshot {
	out := s.Clone()
	for i := range out.Plan {
		if out.Plan[i].ID != subjectID {
			continue
		}
		subj := &out.Plan[i]
		if patch.Name != nil {
			subj.Name = *patch.Name
		}
		if patch.Icon != nil {
			subj.Icon = *patch.Icon
		}
		if patch.Theme != nil {
			subj.Theme = *patch.Theme
		}
		if patch.LessonDays != nil {
			subj.LessonDays = append([]string(nil), (*patch.LessonDays)...)
		}
		if patch.ScheduleImage != nil {
			subj.ScheduleImage = *patch.ScheduleImage
		}
		return out
	}
	return out
}

// AddWish prepends a new wish with a fresh id.
func AddWish(s models.Snapshot, text string, now time.Time) models.Snapshot {
	out := s.Clone()
	wish := models.Wish{
		ID:        uuid.New().String(),
		Text:      text,
		Completed: false,
		CreatedAt: now,
	}
	out.Wishes = append([]models.Wish{wish}, out.Wishes...)
	return out
}

// ToggleWish flips the completed flag of the wish with the given id; no effect
// when absent.
func ToggleWish(s models.Snapshot, wishID string) models.Snapshot {
	out := s.Clone()
	for i := range out.Wishes {
		if out.Wishes[i].ID == wishID {
			out.Wishes[i].Completed = !out.Wishes[i].Completed
			return out
		}
	}
	return out
}

// AddVent prepends a new vent log entry together with a timeline event.
func AddVent(s models.Snapshot, content, mood, feedback string, sentiment float64, now time.Time) models.Snapshot {
	out := s.Clone()
	entry := models.VentLog{
		ID:             uuid.New().String(),
		Content:        content,
		Mood:           mood,
		Feedback:       feedback,
		SentimentScore: sentiment,
		CreatedAt:      now,
	}
	out.VentLogs = append([]models.VentLog{entry}, out.VentLogs...)
	out.Timeline = pushEvent(out.Timeline, models.TimelineEventVent, ventEventTitle, now)
	return out
}

func pushEvent(timeline []models.TimelineEvent, kind models.TimelineEventType, title string, now time.Time) []models.TimelineEvent {
	event := models.TimelineEvent{
		ID:        uuid.New().String(),
		Type:      kind,
		Title:     title,
		CreatedAt: now,
	}
	timeline = append([]models.TimelineEvent{event}, timeline...)
	if len(timeline) > models.MaxTimelineEvents {
		timeline = timeline[:models.MaxTimelineEvents]
	}
	return timeline
}
