package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/localnerve/basetrack/internal/models"
	"github.com/localnerve/basetrack/internal/types"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// HistoryEntry is one recorded settings write batch
type HistoryEntry struct {
	ID        int64          `json:"id"`
	Table     string         `json:"table"`
	Changes   []SettingInput `json:"changes"`
	CreatedAt *time.Time     `json:"createdAt"`
}

// History appends to and reads the write log
type History struct {
	gate *AccessGate
	now  func() time.Time
}

// NewHistory builds a write log over the gate
func NewHistory(gate *AccessGate) *History {
	return &History{gate: gate, now: utcNow}
}

// Record appends one entry listing the written pairs. Nothing is recorded for no changes.
func (h *History) Record(ctx context.Context, ownerID, table string, changes []SettingInput) error {
	if len(changes) == 0 {
		return nil
	}
	doc, err := models.NewJSON(changes)
	if err != nil {
		return fmt.Errorf("encode write log: %w", err)
	}
	return h.gate.ScopedInsert(ctx, models.TableWriteLog, ownerID, []types.Row{{
		"target_table": table,
		"changes":      doc,
		"created_at":   h.now(),
	}})
}

// Recent returns the owner's latest entries, newest first
func (h *History) Recent(ctx context.Context, ownerID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	rows, err := h.gate.ScopedSelect(ctx, models.TableWriteLog, ownerID, types.Query{
		Columns: []string{"id", "target_table", "changes", "created_at"},
		Order: []types.Order{
			{Column: "created_at", Desc: true},
			{Column: "id", Desc: true},
		},
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entry := HistoryEntry{
			ID:        int64(r.Int("id")),
			Table:     r.String("target_table"),
			CreatedAt: r.Time("created_at"),
		}
		if raw := r.String("changes"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &entry.Changes); err != nil {
				return nil, fmt.Errorf("decode write log %d: %w", entry.ID, err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
