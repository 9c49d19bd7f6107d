package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/localnerve/basetrack/internal/models"
	"github.com/localnerve/basetrack/internal/types"
)

// SettingValue is one key of a snapshot. Value is nil when the key has never been stored.
type SettingValue struct {
	Key       string     `json:"key"`
	Value     *string    `json:"value"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// SettingInput is one edited key-value pair
type SettingInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingsSnapshot is an ordered set of setting values, one per distinct key
type SettingsSnapshot struct {
	entries []SettingValue
	index   map[string]int
}

// NewSnapshot builds a snapshot; repeated keys keep their first occurrence
func NewSnapshot(values ...SettingValue) *SettingsSnapshot {
	s := &SettingsSnapshot{index: make(map[string]int, len(values))}
	for _, v := range values {
		if _, ok := s.index[v.Key]; ok {
			continue
		}
		s.index[v.Key] = len(s.entries)
		s.entries = append(s.entries, v)
	}
	return s
}

// Len is the number of keys
func (s *SettingsSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Values returns the entries in order
func (s *SettingsSnapshot) Values() []SettingValue {
	if s == nil {
		return nil
	}
	return s.entries
}

// Keys returns the keys in order
func (s *SettingsSnapshot) Keys() []string {
	keys := make([]string, 0, s.Len())
	for _, v := range s.Values() {
		keys = append(keys, v.Key)
	}
	return keys
}

// Lookup finds a key's entry
func (s *SettingsSnapshot) Lookup(key string) (SettingValue, bool) {
	if s == nil {
		return SettingValue{}, false
	}
	i, ok := s.index[key]
	if !ok {
		return SettingValue{}, false
	}
	return s.entries[i], true
}

// Text returns a key's value, "" when absent or null
func (s *SettingsSnapshot) Text(key string) string {
	v, ok := s.Lookup(key)
	if !ok || v.Value == nil {
		return ""
	}
	return *v.Value
}

// MarshalJSON encodes the snapshot as an ordered array
func (s *SettingsSnapshot) MarshalJSON() ([]byte, error) {
	values := s.Values()
	if values == nil {
		values = []SettingValue{}
	}
	return json.Marshal(values)
}

// UnmarshalJSON decodes an array of entries
func (s *SettingsSnapshot) UnmarshalJSON(b []byte) error {
	var values []SettingValue
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	*s = *NewSnapshot(values...)
	return nil
}

// SettingsOption configures a SettingsStore
type SettingsOption func(*SettingsStore)

// WithOptimisticWrites makes DiffAndUpsert reject rows changed since the snapshot was read
func WithOptimisticWrites(enabled bool) SettingsOption {
	return func(s *SettingsStore) {
		s.optimistic = enabled
	}
}

// WithHistory records every successful write batch
func WithHistory(h *History) SettingsOption {
	return func(s *SettingsStore) {
		s.history = h
	}
}

// SettingsStore reads and writes one owner-scoped key-value table
type SettingsStore struct {
	gate       *AccessGate
	table      string
	optimistic bool
	history    *History
	now        func() time.Time
}

// NewSettingsStore builds a store over table
func NewSettingsStore(gate *AccessGate, table string, opts ...SettingsOption) *SettingsStore {
	s := &SettingsStore{gate: gate, table: table, now: utcNow}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the backing table name
func (s *SettingsStore) Table() string {
	return s.table
}

// BulkRead returns every requested key in request order in one round trip.
// Keys with no stored row carry a nil value.
func (s *SettingsStore) BulkRead(ctx context.Context, ownerID string, keys []string) (*SettingsSnapshot, error) {
	if err := requireOwner("bulk read", s.table, ownerID); err != nil {
		return nil, err
	}
	requested := NewSnapshot(keyValues(keys)...)
	if requested.Len() == 0 {
		return requested, nil
	}

	rows, err := s.gate.ScopedSelect(ctx, s.table, ownerID, types.Query{
		Columns: []string{"key", "value", "updated_at"},
		Filters: []types.Filter{types.In("key", requested.Keys())},
	})
	if err != nil {
		return nil, err
	}

	found := make(map[string]types.Row, len(rows))
	for _, r := range rows {
		found[r.String("key")] = r
	}
	for i, v := range requested.entries {
		r, ok := found[v.Key]
		if !ok {
			continue
		}
		if !r.IsNull("value") {
			text := r.String("value")
			requested.entries[i].Value = &text
		}
		requested.entries[i].UpdatedAt = r.Time("updated_at")
	}
	return requested, nil
}

// Get reads one key, nil when absent
func (s *SettingsStore) Get(ctx context.Context, ownerID, key string) (*string, error) {
	snap, err := s.BulkRead(ctx, ownerID, []string{key})
	if err != nil {
		return nil, err
	}
	v, _ := snap.Lookup(key)
	return v.Value, nil
}

// Set writes one key
func (s *SettingsStore) Set(ctx context.Context, ownerID, key, value string) error {
	return s.BulkUpsert(ctx, ownerID, []SettingInput{{Key: key, Value: value}})
}

// BulkUpsert writes each row on its own. A failing row does not undo the
// others; failures are reported together as a *types.BulkWriteError.
func (s *SettingsStore) BulkUpsert(ctx context.Context, ownerID string, rows []SettingInput) error {
	if err := requireOwner("bulk upsert", s.table, ownerID); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i, row := range rows {
		if strings.TrimSpace(row.Key) == "" {
			return types.NewValidationError("bulk upsert", s.table, fmt.Sprintf("row %d: setting key is required", i))
		}
	}
	written, err := s.write(ctx, ownerID, rows, nil)
	s.record(ctx, ownerID, written)
	return err
}

// DiffAndUpsert writes only the edited rows whose text differs from the
// snapshot and returns how many were written. A key absent from the
// snapshot compares as "".
func (s *SettingsStore) DiffAndUpsert(ctx context.Context, ownerID string, edited []SettingInput, snapshot *SettingsSnapshot) (int, error) {
	if err := requireOwner("diff upsert", s.table, ownerID); err != nil {
		return 0, err
	}
	changed := Diff(edited, snapshot)
	if len(changed) == 0 {
		return 0, nil
	}
	written, err := s.write(ctx, ownerID, changed, snapshot)
	s.record(ctx, ownerID, written)
	return len(written), err
}

// Diff returns the edited rows whose value differs from the snapshot.
// For a key edited more than once the last value wins.
func Diff(edited []SettingInput, snapshot *SettingsSnapshot) []SettingInput {
	latest := make(map[string]string, len(edited))
	var order []string
	for _, e := range edited {
		if e.Key == "" {
			continue
		}
		if _, seen := latest[e.Key]; !seen {
			order = append(order, e.Key)
		}
		latest[e.Key] = e.Value
	}

	var changed []SettingInput
	for _, key := range order {
		if latest[key] != snapshot.Text(key) {
			changed = append(changed, SettingInput{Key: key, Value: latest[key]})
		}
	}
	return changed
}

// write issues one store call per row. When snapshot is set and optimistic
// writes are on, rows read with a timestamp are updated only if unchanged.
func (s *SettingsStore) write(ctx context.Context, ownerID string, rows []SettingInput, snapshot *SettingsSnapshot) ([]SettingInput, error) {
	failed := &bulkFailure{table: s.table, attempts: len(rows)}
	written := make([]SettingInput, 0, len(rows))

	for _, row := range rows {
		if row.Key == "" {
			failed.add(row.Key, types.NewValidationError("upsert", row.Key, "setting key is required"))
			continue
		}
		now := s.now()

		var err error
		if prior, ok := snapshot.Lookup(row.Key); ok && s.optimistic && prior.UpdatedAt != nil {
			err = s.conditionalUpdate(ctx, ownerID, row, *prior.UpdatedAt, now)
		} else {
			err = s.gate.ScopedUpsert(ctx, s.table, ownerID, []types.Row{{
				"key":        row.Key,
				"value":      row.Value,
				"updated_at": now,
			}}, []string{"key"})
		}

		if err != nil {
			failed.add(row.Key, err)
			continue
		}
		written = append(written, row)
	}

	if err := failed.err(); err != nil {
		log.Printf("Settings write on %s: %v", s.table, err)
		return written, err
	}
	return written, nil
}

func (s *SettingsStore) conditionalUpdate(ctx context.Context, ownerID string, row SettingInput, readAt, now time.Time) error {
	n, err := s.gate.ScopedUpdate(ctx, s.table, ownerID, types.Row{
		"value":      row.Value,
		"updated_at": now,
	}, []types.Filter{
		types.Eq("key", row.Key),
		types.Eq("updated_at", readAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return &types.DataError{
			Kind:   types.KindStaleWrite,
			Op:     "update",
			Table:  s.table,
			Entity: row.Key,
			Err:    errStaleSnapshot,
		}
	}
	return nil
}

func (s *SettingsStore) record(ctx context.Context, ownerID string, written []SettingInput) {
	if s.history == nil || len(written) == 0 {
		return
	}
	if err := s.history.Record(ctx, ownerID, s.table, written); err != nil {
		log.Printf("Failed to record write log for %s: %v", s.table, err)
	}
}

func keyValues(keys []string) []SettingValue {
	values := make([]SettingValue, len(keys))
	for i, k := range keys {
		values[i] = SettingValue{Key: k}
	}
	return values
}

// utcNow has microsecond precision, the finest all supported databases store
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SettingsTable reports whether table is one of the key-value tables
func SettingsTable(table string) bool {
	return slices.Contains(models.SettingsTables, table)
}
