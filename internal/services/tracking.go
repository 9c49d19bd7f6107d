package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/localnerve/basetrack/internal/models"
	"github.com/localnerve/basetrack/internal/types"
)

// FlagRow is one edited grid row
type FlagRow struct {
	Name       string `json:"name"`
	InProgress bool   `json:"inProgress"`
	QueuedNext bool   `json:"queuedNext"`
}

// NameSet is a set of entity names
type NameSet map[string]struct{}

// Has reports membership
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in ascending order
func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TrackingStore keeps the in-progress and queued-next flags of one trackable kind.
// Categorized stores key flags by (category, name).
type TrackingStore struct {
	gate        *AccessGate
	table       string
	categorized bool
	now         func() time.Time
}

// NewBuildingTracking tracks flat building flags
func NewBuildingTracking(gate *AccessGate) *TrackingStore {
	return &TrackingStore{gate: gate, table: models.TableBuildingTracking, now: utcNow}
}

// NewResearchTracking tracks research flags per category
func NewResearchTracking(gate *AccessGate) *TrackingStore {
	return &TrackingStore{gate: gate, table: models.TableResearchTracking, categorized: true, now: utcNow}
}

// Categorized reports whether calls need a category
func (s *TrackingStore) Categorized() bool {
	return s.categorized
}

// LoadFlagSets returns the names currently in progress and queued next
func (s *TrackingStore) LoadFlagSets(ctx context.Context, ownerID, category string) (inProgress, queued NameSet, err error) {
	q := types.Query{Columns: []string{"name", "in_progress", "queued_next"}}
	if s.categorized {
		if err := requireCategory("load", category); err != nil {
			return nil, nil, err
		}
		q.Filters = []types.Filter{types.Eq("category", category)}
	}

	rows, err := s.gate.ScopedSelect(ctx, s.table, ownerID, q)
	if err != nil {
		return nil, nil, err
	}

	inProgress, queued = NameSet{}, NameSet{}
	for _, r := range rows {
		name := r.String("name")
		if r.Bool("in_progress") {
			inProgress[name] = struct{}{}
		}
		if r.Bool("queued_next") {
			queued[name] = struct{}{}
		}
	}
	return inProgress, queued, nil
}

// SaveFromGrid upserts the submitted rows in one batch and returns how many were written.
// Rows with blank names are skipped; a repeated name keeps its last row.
// Flags of names not submitted are left as they are.
func (s *TrackingStore) SaveFromGrid(ctx context.Context, ownerID, category string, rows []FlagRow) (int, error) {
	conflict := []string{"name"}
	if s.categorized {
		if err := requireCategory("save", category); err != nil {
			return 0, err
		}
		conflict = []string{"category", "name"}
	}
	if err := requireOwner("save", s.table, ownerID); err != nil {
		return 0, err
	}

	latest := map[string]FlagRow{}
	var order []string
	for _, r := range rows {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		if _, seen := latest[name]; !seen {
			order = append(order, name)
		}
		r.Name = name
		latest[name] = r
	}
	if len(order) == 0 {
		return 0, nil
	}

	now := s.now()
	batch := make([]types.Row, 0, len(order))
	for _, name := range order {
		r := latest[name]
		row := types.Row{
			"name":        name,
			"in_progress": r.InProgress,
			"queued_next": r.QueuedNext,
			"updated_at":  now,
		}
		if s.categorized {
			row["category"] = category
		}
		batch = append(batch, row)
	}

	if err := s.gate.ScopedUpsert(ctx, s.table, ownerID, batch, conflict); err != nil {
		return 0, err
	}
	return len(batch), nil
}

func requireCategory(op, category string) error {
	if strings.TrimSpace(category) == "" {
		return types.NewValidationError(op, category, "category is required")
	}
	return nil
}
