package store

import (
	"encoding/json"
	"fmt"

	"github.com/inovacc/katasync/internal/model"
)

// LoadHistory returns the sync history, newest first.
func LoadHistory(st Store) ([]model.SyncRecord, error) {
	raw, ok, err := st.Get(KeySyncHistory)
	if err != nil {
		return nil, err
	}

	if !ok || raw == "" {
		return []model.SyncRecord{}, nil
	}

	var history []model.SyncRecord
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("failed to parse sync history: %w", err)
	}

	return history, nil
}

// AppendHistory puts record at the front of the history and drops the
// oldest entries beyond limit. A limit <= 0 means model.HistoryLimit.
func AppendHistory(st Store, record model.SyncRecord, limit int) ([]model.SyncRecord, error) {
	if limit <= 0 {
		limit = model.HistoryLimit
	}

	history, err := LoadHistory(st)
	if err != nil {
		return nil, err
	}

	history = append([]model.SyncRecord{record}, history...)
	if len(history) > limit {
		history = history[:limit]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sync history: %w", err)
	}

	if err := st.Set(KeySyncHistory, string(data)); err != nil {
		return nil, err
	}

	return history, nil
}

// ClearHistory removes every sync record.
func ClearHistory(st Store) error {
	return st.Remove(KeySyncHistory)
}
