// Package cloud defines the remote storage contract the sync engine needs and
// its backends. The contract is a keyed replace/fetch of the whole snapshot;
// how a backend lays that out (one jsonb row, or normalized per-entity tables)
// is its own business.
package cloud

import (
	"context"
	"errors"
	"time"

	"github.com/omarhani/rafiq/internal/models"
)

var errRemoteUnavailable = errors.New("remote store unavailable")

// Progress groups the per-identity progress fields that ride alongside the
// plan in a record.
type Progress struct {
	CompletedMissions map[string]bool        `json:"completed_missions"`
	Wishes            []models.Wish          `json:"wishes"`
	VentLogs          []models.VentLog       `json:"vent_logs"`
	Timeline          []models.TimelineEvent `json:"timeline"`
	UserName          string                 `json:"user_name,omitempty"`
}

// Record is one identity's remote row.
type Record struct {
	UserID    string
	Plan      []models.Subject
	Progress  Progress
	UpdatedAt time.Time
}

// Store is the remote persistence contract. Upsert must be an idempotent
// replace-by-key: the conflict policy is pure last-write-wins, no merge.
type Store interface {
	Upsert(ctx context.Context, rec Record) error
	Select(ctx context.Context, userID string) (Record, bool, error)
	Close() error
}

// RecordFromSnapshot packs a local snapshot into a remote record.
func RecordFromSnapshot(userID string, snap models.Snapshot) Record {
	return Record{
		UserID: userID,
		Plan:   snap.Plan,
		Progress: Progress{
			CompletedMissions: snap.CompletedMissions,
			Wishes:            snap.Wishes,
			VentLogs:          snap.VentLogs,
			Timeline:          snap.Timeline,
			UserName:          snap.UserName,
		},
	}
}

// SnapshotFromRecord unpacks a remote record into a local snapshot. Missing
// fields come back empty, never nil maps.
func SnapshotFromRecord(rec Record) models.Snapshot {
	snap := models.Snapshot{
		Plan:              rec.Plan,
		CompletedMissions: rec.Progress.CompletedMissions,
		Wishes:            rec.Progress.Wishes,
		VentLogs:          rec.Progress.VentLogs,
		Timeline:          rec.Progress.Timeline,
		UserName:          rec.Progress.UserName,
	}
	if snap.CompletedMissions == nil {
		snap.CompletedMissions = make(map[string]bool)
	}
	return snap
}
