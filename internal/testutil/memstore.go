// Package testutil holds fakes and fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/localnerve/basetrack/internal/types"
)

// Call records one store invocation
type Call struct {
	Op       string
	Table    string
	Filters  []types.Filter
	Rows     []types.Row
	Conflict []string
}

// Fault makes matching calls fail. An empty Op or Table matches anything.
// Times limits how many calls fail; 0 means every matching call.
type Fault struct {
	Op    string
	Table string
	Err   error
	Times int

	// Match, when set, limits the fault to calls it accepts
	Match func(Call) bool

	hits int
}

type memTable struct {
	columns []string
	unique  []string
	rows    []types.Row
}

// MemStore is an in-memory services.Store. Tables declare their columns,
// so writes or filters naming an unknown column fail as a schema mismatch
// the way a database would.
type MemStore struct {
	mu     sync.Mutex
	tables map[string]*memTable
	faults []*Fault
	calls  []Call
}

// NewMemStore returns an empty store
func NewMemStore() *MemStore {
	return &MemStore{tables: map[string]*memTable{}}
}

// CreateTable declares a table with its columns and unique key
func (m *MemStore) CreateTable(name string, columns []string, unique ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[name] = &memTable{columns: columns, unique: unique}
}

// Seed appends rows without validation or call recording
func (m *MemStore) Seed(table string, rows ...types.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.tables[table]
	for _, r := range rows {
		t.rows = append(t.rows, r.Clone())
	}
}

// Rows returns copies of a table's rows
func (m *MemStore) Rows(table string) []types.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[table]
	if !ok {
		return nil
	}
	out := make([]types.Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Clone()
	}
	return out
}

// Inject adds a fault
func (m *MemStore) Inject(f *Fault) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults = append(m.faults, f)
}

// Calls returns every recorded call
func (m *MemStore) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// CallCount counts recorded calls of op, or of every op when op is empty
func (m *MemStore) CallCount(op string) int {
	n := 0
	for _, c := range m.Calls() {
		if op == "" || c.Op == op {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log
func (m *MemStore) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MemStore) begin(c Call) (*memTable, error) {
	m.calls = append(m.calls, c)
	for _, f := range m.faults {
		if (f.Op != "" && f.Op != c.Op) || (f.Table != "" && f.Table != c.Table) {
			continue
		}
		if f.Match != nil && !f.Match(c) {
			continue
		}
		if f.Times > 0 && f.hits >= f.Times {
			continue
		}
		f.hits++
		return nil, f.Err
	}
	t, ok := m.tables[c.Table]
	if !ok {
		return nil, &types.DataError{Kind: types.KindUnknown, Op: c.Op, Table: c.Table,
			Err: fmt.Errorf("no such table: %s", c.Table)}
	}
	return t, nil
}

func (t *memTable) check(op, table string, cols ...string) error {
	for _, col := range cols {
		if !slices.Contains(t.columns, col) {
			return &types.DataError{
				Kind:   types.KindSchemaMismatch,
				Op:     op,
				Table:  table,
				Column: col,
				Err:    fmt.Errorf("column %q does not exist", col),
			}
		}
	}
	return nil
}

func filterColumns(filters []types.Filter) []string {
	cols := make([]string, len(filters))
	for i, f := range filters {
		cols[i] = f.Column
	}
	return cols
}

func rowColumns(rows []types.Row) []string {
	var cols []string
	for _, r := range rows {
		for k := range r {
			if !slices.Contains(cols, k) {
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

func matches(r types.Row, filters []types.Filter) bool {
	for _, f := range filters {
		switch f.Op {
		case types.OpIn:
			vals, _ := f.Value.([]any)
			if !slices.ContainsFunc(vals, func(v any) bool { return equal(r[f.Column], v) }) {
				return false
			}
		default:
			if !equal(r[f.Column], f.Value) {
				return false
			}
		}
	}
	return true
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// Select implements services.Store
func (m *MemStore) Select(_ context.Context, table string, q types.Query) ([]types.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.begin(Call{Op: "select", Table: table, Filters: q.Filters})
	if err != nil {
		return nil, err
	}
	if err := t.check("select", table, append(filterColumns(q.Filters), q.Columns...)...); err != nil {
		return nil, err
	}

	var out []types.Row
	for _, r := range t.rows {
		if !matches(r, q.Filters) {
			continue
		}
		c := types.Row{}
		if len(q.Columns) == 0 {
			c = r.Clone()
		}
		for _, col := range q.Columns {
			c[col] = r[col]
		}
		out = append(out, c)
	}

	if len(q.Order) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, o := range q.Order {
				if cmp := compare(out[i][o.Column], out[j][o.Column], o); cmp != 0 {
					return cmp < 0
				}
			}
			return false
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func compare(a, b any, o types.Order) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		if o.NullsLast {
			return 1
		}
		return -1
	case b == nil:
		if o.NullsLast {
			return -1
		}
		return 1
	}

	var cmp int
	fa, aNum := number(a)
	fb, bNum := number(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			cmp = -1
		case fa > fb:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
	if o.Desc {
		return -cmp
	}
	return cmp
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Insert implements services.Store
func (m *MemStore) Insert(_ context.Context, table string, rows []types.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.begin(Call{Op: "insert", Table: table, Rows: cloneRows(rows)})
	if err != nil {
		return err
	}
	if err := t.check("insert", table, rowColumns(rows)...); err != nil {
		return err
	}
	for _, r := range rows {
		if t.find(r) >= 0 {
			return &types.DataError{Kind: types.KindConflictViolation, Op: "insert", Table: table,
				Err: fmt.Errorf("UNIQUE constraint failed: %s", strings.Join(t.unique, ", "))}
		}
	}
	for _, r := range rows {
		t.rows = append(t.rows, t.complete(r))
	}
	return nil
}

// Upsert implements services.Store
func (m *MemStore) Upsert(_ context.Context, table string, rows []types.Row, conflictColumns []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.begin(Call{Op: "upsert", Table: table, Rows: cloneRows(rows), Conflict: slices.Clone(conflictColumns)})
	if err != nil {
		return err
	}
	if err := t.check("upsert", table, append(rowColumns(rows), conflictColumns...)...); err != nil {
		return err
	}
	if !sameSet(conflictColumns, t.unique) {
		return &types.DataError{Kind: types.KindConflictViolation, Op: "upsert", Table: table,
			Err: fmt.Errorf("ON CONFLICT clause does not match any PRIMARY KEY or UNIQUE constraint")}
	}
	for _, r := range rows {
		if i := t.find(r); i >= 0 {
			for k, v := range r {
				t.rows[i][k] = v
			}
			continue
		}
		t.rows = append(t.rows, t.complete(r))
	}
	return nil
}

// Update implements services.Store
func (m *MemStore) Update(_ context.Context, table string, values types.Row, filters []types.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.begin(Call{Op: "update", Table: table, Filters: filters, Rows: []types.Row{values.Clone()}})
	if err != nil {
		return 0, err
	}
	if err := t.check("update", table, append(filterColumns(filters), rowColumns([]types.Row{values})...)...); err != nil {
		return 0, err
	}
	var n int64
	for _, r := range t.rows {
		if !matches(r, filters) {
			continue
		}
		for k, v := range values {
			r[k] = v
		}
		n++
	}
	return n, nil
}

// Delete implements services.Store
func (m *MemStore) Delete(_ context.Context, table string, filters []types.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.begin(Call{Op: "delete", Table: table, Filters: filters})
	if err != nil {
		return 0, err
	}
	if err := t.check("delete", table, filterColumns(filters)...); err != nil {
		return 0, err
	}
	kept := t.rows[:0]
	var n int64
	for _, r := range t.rows {
		if matches(r, filters) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	t.rows = kept
	return n, nil
}

// find returns the index of the row sharing r's unique key, or -1
func (t *memTable) find(r types.Row) int {
	if len(t.unique) == 0 {
		return -1
	}
	for i, existing := range t.rows {
		same := true
		for _, col := range t.unique {
			if !equal(existing[col], r[col]) {
				same = false
				break
			}
		}
		if same {
			return i
		}
	}
	return -1
}

// complete sets absent declared columns to nil
func (t *memTable) complete(r types.Row) types.Row {
	c := r.Clone()
	for _, col := range t.columns {
		if _, ok := c[col]; !ok {
			c[col] = nil
		}
	}
	return c
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !slices.Contains(b, v) {
			return false
		}
	}
	return true
}

func cloneRows(rows []types.Row) []types.Row {
	out := make([]types.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
