package cloud

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and fully-offline runs.
// Records are kept serialized so reads never alias a caller's data.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[string][]byte

	// FailUpserts and FailSelects make remote calls error, for exercising the
	// engine's best-effort failure paths.
	FailUpserts bool
	FailSelects bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string][]byte)}
}

func (m *MemoryStore) Upsert(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUpserts {
		return errRemoteUnavailable
	}
	rec.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	m.rows[rec.UserID] = data
	return nil
}

func (m *MemoryStore) Select(ctx context.Context, userID string) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSelects {
		return Record{}, false, errRemoteUnavailable
	}
	data, ok := m.rows[userID]
	if !ok {
		return Record{}, false, nil
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, err
	}
	if rec.Progress.CompletedMissions == nil {
		rec.Progress.CompletedMissions = make(map[string]bool)
	}
	return rec, true, nil
}

func (m *MemoryStore) Close() error { return nil }

// Len reports how many identities have a stored row.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
