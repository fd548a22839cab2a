package models

// ContainmentKind identifies which mission container a subject uses.
// Exactly one shape is populated per subject.
type ContainmentKind string

const (
	ContainmentFlat      ContainmentKind = "flat"
	ContainmentUnitized  ContainmentKind = "unitized"
	ContainmentSectioned ContainmentKind = "sectioned"
)

type Theme struct {
	Primary   string `json:"primary"`
	Gradient  string `json:"gradient"`
	Scientist string `json:"scientist"`
}

// MissionLinks holds optional external resources for a mission.
type MissionLinks struct {
	Notebook  string `json:"notebook,omitempty"`
	Questions string `json:"questions,omitempty"`
}

// Mission is the atomic work item of the study plan.
type Mission struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Content  string        `json:"content"`
	Duration string        `json:"duration"`
	Method   string        `json:"method,omitempty"`
	Outcome  string        `json:"outcome,omitempty"`
	Priority int           `json:"priority,omitempty"`
	Deadline string        `json:"deadline,omitempty"` // YYYY-MM-DD format
	Links    *MissionLinks `json:"links,omitempty"`
	// Progress is a percentage in [0,100]. Completed is derived from it in the
	// normalized cloud schema: completed == (progress == 100).
	Progress  float64 `json:"progress,omitempty"`
	Completed bool    `json:"completed"`
}

type Unit struct {
	Name     string    `json:"name"`
	Missions []Mission `json:"missions"`
}

type Section struct {
	Name     string    `json:"name"`
	Missions []Mission `json:"missions"`
}

// Subject owns exactly one of Missions, Units, or Sections, selected by Containment.
type Subject struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Icon          string          `json:"icon"`
	Theme         Theme           `json:"theme"`
	LessonDays    []string        `json:"lesson_days,omitempty"`
	ScheduleImage string          `json:"schedule_image,omitempty"`
	Containment   ContainmentKind `json:"containment"`
	Missions      []Mission       `json:"missions,omitempty"`
	Units         []Unit          `json:"units,omitempty"`
	Sections      []Section       `json:"sections,omitempty"`
}

// AllMissions returns the subject's missions regardless of containment shape,
// in plan order.
func (s Subject) AllMissions() []Mission {
	switch s.Containment {
	case ContainmentFlat:
		return append([]Mission(nil), s.Missions...)
	case ContainmentUnitized:
		var out []Mission
		for _, u := range s.Units {
			out = append(out, u.Missions...)
		}
		return out
	case ContainmentSectioned:
		var out []Mission
		for _, sec := range s.Sections {
			out = append(out, sec.Missions...)
		}
		return out
	}
	return nil
}

// MissionIDs returns the ids of all missions owned by the subject.
func (s Subject) MissionIDs() []string {
	missions := s.AllMissions()
	ids := make([]string, 0, len(missions))
	for _, m := range missions {
		ids = append(ids, m.ID)
	}
	return ids
}
