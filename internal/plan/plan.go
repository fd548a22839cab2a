package plan

import "github.com/omarhani/rafiq/internal/models"

// FindSubject returns the index of the subject with the given id, or -1.
func FindSubject(subjects []models.Subject, id string) int {
	for i, s := range subjects {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// FindMission locates a mission anywhere in the plan and returns it together
// with its owning subject id.
func FindMission(subjects []models.Subject, missionID string) (models.Mission, string, bool) {
	for _, s := range subjects {
		for _, m := range s.AllMissions() {
			if m.ID == missionID {
				return m, s.ID, true
			}
		}
	}
	return models.Mission{}, "", false
}

// AllMissionIDs returns every mission id in the plan, in plan order.
func AllMissionIDs(subjects []models.Subject) []string {
	var ids []string
	for _, s := range subjects {
		ids = append(ids, s.MissionIDs()...)
	}
	return ids
}

// SubjectProgress returns the subject's completion percentage given the
// completed-missions map. An empty subject reports 0.
func SubjectProgress(subject models.Subject, completed map[string]bool) float64 {
	ids := subject.MissionIDs()
	if len(ids) == 0 {
		return 0
	}
	done := 0
	for _, id := range ids {
		if completed[id] {
			done++
		}
	}
	return float64(done) / float64(len(ids)) * 100
}

// TotalProgress returns the overall completion percentage across the plan.
func TotalProgress(subjects []models.Subject, completed map[string]bool) float64 {
	ids := AllMissionIDs(subjects)
	if len(ids) == 0 {
		return 0
	}
	done := 0
	for _, id := range ids {
		if completed[id] {
			done++
		}
	}
	return float64(done) / float64(len(ids)) * 100
}
