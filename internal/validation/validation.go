// Package validation checks the structural invariants of a snapshot. Reducers
// deliberately don't validate ids (missing-id mutations are silent no-ops), so
// this is where typos and drift get surfaced, as warnings rather than errors.
package validation

import (
	"fmt"

	"github.com/omarhani/rafiq/internal/models"
)

type ConflictType string

const (
	ConflictDuplicateMissionID  ConflictType = "duplicate_mission_id"
	ConflictDuplicateSubjectID  ConflictType = "duplicate_subject_id"
	ConflictMixedContainment    ConflictType = "mixed_containment"
	ConflictUnknownContainment  ConflictType = "unknown_containment"
	ConflictOrphanCompletedFlag ConflictType = "orphan_completed_flag"
	ConflictTimelineOverflow    ConflictType = "timeline_overflow"
	ConflictTimelineOutOfOrder  ConflictType = "timeline_out_of_order"
)

type Conflict struct {
	Type    ConflictType
	Message string
}

type Result struct {
	Conflicts []Conflict
}

func (r Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateSnapshot runs every check against the snapshot.
func (v *Validator) ValidateSnapshot(snap models.Snapshot) Result {
	var result Result
	result.Conflicts = append(result.Conflicts, v.validatePlan(snap.Plan)...)
	result.Conflicts = append(result.Conflicts, v.validateCompletedFlags(snap)...)
	result.Conflicts = append(result.Conflicts, v.validateTimeline(snap.Timeline)...)
	return result
}

func (v *Validator) validatePlan(subjects []models.Subject) []Conflict {
	var conflicts []Conflict

	seenSubjects := make(map[string]bool)
	seenMissions := make(map[string]bool)

	for _, subj := range subjects {
		if seenSubjects[subj.ID] {
			conflicts = append(conflicts, Conflict{
				Type:    ConflictDuplicateSubjectID,
				Message: fmt.Sprintf("subject id %q appears more than once", subj.ID),
			})
		}
		seenSubjects[subj.ID] = true

		conflicts = append(conflicts, v.validateContainment(subj)...)

		for _, m := range subj.AllMissions() {
			if seenMissions[m.ID] {
				conflicts = append(conflicts, Conflict{
					Type:    ConflictDuplicateMissionID,
					Message: fmt.Sprintf("mission id %q appears more than once", m.ID),
				})
			}
			seenMissions[m.ID] = true
		}
	}
	return conflicts
}

// validateContainment enforces the tagged-union shape: the declared kind must
// be known, and only its container may be populated.
func (v *Validator) validateContainment(subj models.Subject) []Conflict {
	var conflicts []Conflict

	switch subj.Containment {
	case models.ContainmentFlat, models.ContainmentUnitized, models.ContainmentSectioned:
	default:
		return append(conflicts, Conflict{
			Type:    ConflictUnknownContainment,
			Message: fmt.Sprintf("subject %q has unknown containment %q", subj.ID, subj.Containment),
		})
	}

	populated := 0
	if len(subj.Missions) > 0 {
		populated++
	}
	if len(subj.Units) > 0 {
		populated++
	}
	if len(subj.Sections) > 0 {
		populated++
	}
	if populated > 1 {
		conflicts = append(conflicts, Conflict{
			Type:    ConflictMixedContainment,
			Message: fmt.Sprintf("subject %q populates more than one mission container", subj.ID),
		})
	}
	return conflicts
}

// validateCompletedFlags flags completion entries that don't resolve to any
// plan mission. These are warnings: the reducers allow them on purpose.
func (v *Validator) validateCompletedFlags(snap models.Snapshot) []Conflict {
	known := make(map[string]bool)
	for _, subj := range snap.Plan {
		for _, id := range subj.MissionIDs() {
			known[id] = true
		}
	}

	var conflicts []Conflict
	for id := range snap.CompletedMissions {
		if !known[id] {
			conflicts = append(conflicts, Conflict{
				Type:    ConflictOrphanCompletedFlag,
				Message: fmt.Sprintf("completion flag for %q matches no mission in the plan", id),
			})
		}
	}
	return conflicts
}

func (v *Validator) validateTimeline(timeline []models.TimelineEvent) []Conflict {
	var conflicts []Conflict
	if len(timeline) > models.MaxTimelineEvents {
		conflicts = append(conflicts, Conflict{
			Type:    ConflictTimelineOverflow,
			Message: fmt.Sprintf("timeline holds %d entries, limit is %d", len(timeline), models.MaxTimelineEvents),
		})
	}
	for i := 1; i < len(timeline); i++ {
		if timeline[i].CreatedAt.After(timeline[i-1].CreatedAt) {
			conflicts = append(conflicts, Conflict{
				Type:    ConflictTimelineOutOfOrder,
				Message: fmt.Sprintf("timeline entry %d is newer than entry %d", i, i-1),
			})
			break
		}
	}
	return conflicts
}
