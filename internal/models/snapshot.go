package models

// Snapshot is the complete serializable local state. It is exactly the unit
// that gets persisted to disk and synced to the cloud store keyed by identity;
// no partial-field sync exists.
type Snapshot struct {
	Plan              []Subject       `json:"plan"`
	CompletedMissions map[string]bool `json:"completed_missions"`
	Wishes            []Wish          `json:"wishes"`
	VentLogs          []VentLog       `json:"vent_logs"`
	Timeline          []TimelineEvent `json:"timeline"`
	UserName          string          `json:"user_name,omitempty"`
}

// Clone returns a deep copy of the snapshot. Reducers and readers work on
// copies so the store's own state is never aliased.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		UserName: s.UserName,
	}

	if s.Plan != nil {
		out.Plan = make([]Subject, len(s.Plan))
		for i, subj := range s.Plan {
			out.Plan[i] = cloneSubject(subj)
		}
	}
	if s.CompletedMissions != nil {
		out.CompletedMissions = make(map[string]bool, len(s.CompletedMissions))
		for k, v := range s.CompletedMissions {
			out.CompletedMissions[k] = v
		}
	}
	out.Wishes = append([]Wish(nil), s.Wishes...)
	out.VentLogs = append([]VentLog(nil), s.VentLogs...)
	out.Timeline = append([]TimelineEvent(nil), s.Timeline...)
	return out
}

func cloneSubject(s Subject) Subject {
	out := s
	out.LessonDays = append([]string(nil), s.LessonDays...)
	out.Missions = cloneMissions(s.Missions)
	if s.Units != nil {
		out.Units = make([]Unit, len(s.Units))
		for i, u := range s.Units {
			out.Units[i] = Unit{Name: u.Name, Missions: cloneMissions(u.Missions)}
		}
	}
	if s.Sections != nil {
		out.Sections = make([]Section, len(s.Sections))
		for i, sec := range s.Sections {
			out.Sections[i] = Section{Name: sec.Name, Missions: cloneMissions(sec.Missions)}
		}
	}
	return out
}

func cloneMissions(missions []Mission) []Mission {
	if missions == nil {
		return nil
	}
	out := make([]Mission, len(missions))
	for i, m := range missions {
		out[i] = m
		if m.Links != nil {
			links := *m.Links
			out[i].Links = &links
		}
	}
	return out
}
