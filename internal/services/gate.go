package services

import (
	"context"
	"log"
	"slices"

	"github.com/localnerve/basetrack/internal/types"
)

// DefaultOwnerColumn is the column holding the owning user's id
const DefaultOwnerColumn = "owner_id"

// Store is the persistence boundary. Implementations return *types.DataError
// so that schema mismatches can be told apart from other failures.
type Store interface {
	Select(ctx context.Context, table string, q types.Query) ([]types.Row, error)
	Insert(ctx context.Context, table string, rows []types.Row) error
	Upsert(ctx context.Context, table string, rows []types.Row, conflictColumns []string) error
	Update(ctx context.Context, table string, values types.Row, filters []types.Filter) (int64, error)
	Delete(ctx context.Context, table string, filters []types.Filter) (int64, error)
}

// AccessGate scopes every store call to one owner. Tables created before
// per-user isolation have no owner column; reads and writes against them
// are retried once without the owner. Deletes never are.
type AccessGate struct {
	store       Store
	ownerColumn string
}

// NewAccessGate builds a gate; an empty ownerColumn means DefaultOwnerColumn
func NewAccessGate(store Store, ownerColumn string) *AccessGate {
	if ownerColumn == "" {
		ownerColumn = DefaultOwnerColumn
	}
	return &AccessGate{store: store, ownerColumn: ownerColumn}
}

// OwnerColumn returns the configured owner column name
func (g *AccessGate) OwnerColumn() string {
	return g.ownerColumn
}

// ScopedSelect reads rows belonging to ownerID
func (g *AccessGate) ScopedSelect(ctx context.Context, table, ownerID string, q types.Query) ([]types.Row, error) {
	if err := requireOwner("select", table, ownerID); err != nil {
		return nil, err
	}
	rows, err := g.store.Select(ctx, table, q.WithFilter(types.Eq(g.ownerColumn, ownerID)))
	if !g.shouldFallBack(err) {
		return rows, err
	}
	g.logFallback("select", table, err)
	return g.store.Select(ctx, table, q)
}

// ScopedInsert stamps ownerID on copies of rows and inserts them
func (g *AccessGate) ScopedInsert(ctx context.Context, table, ownerID string, rows []types.Row) error {
	if err := requireOwner("insert", table, ownerID); err != nil {
		return err
	}
	err := g.store.Insert(ctx, table, g.stamp(rows, ownerID))
	if !g.shouldFallBack(err) {
		return err
	}
	g.logFallback("insert", table, err)
	return g.store.Insert(ctx, table, g.strip(rows))
}

// ScopedUpsert stamps ownerID on copies of rows and upserts on conflictColumns.
// The owner column is added to the conflict target when absent.
func (g *AccessGate) ScopedUpsert(ctx context.Context, table, ownerID string, rows []types.Row, conflictColumns []string) error {
	if err := requireOwner("upsert", table, ownerID); err != nil {
		return err
	}
	scoped := conflictColumns
	if !slices.Contains(scoped, g.ownerColumn) {
		scoped = append([]string{g.ownerColumn}, conflictColumns...)
	}
	err := g.store.Upsert(ctx, table, g.stamp(rows, ownerID), scoped)
	if !g.shouldFallBack(err) {
		return err
	}
	g.logFallback("upsert", table, err)
	legacy := slices.DeleteFunc(slices.Clone(scoped), func(c string) bool { return c == g.ownerColumn })
	return g.store.Upsert(ctx, table, g.strip(rows), legacy)
}

// ScopedUpdate sets values on ownerID's rows matching filters
func (g *AccessGate) ScopedUpdate(ctx context.Context, table, ownerID string, values types.Row, filters []types.Filter) (int64, error) {
	if err := requireOwner("update", table, ownerID); err != nil {
		return 0, err
	}
	scoped := append([]types.Filter{types.Eq(g.ownerColumn, ownerID)}, filters...)
	n, err := g.store.Update(ctx, table, values.Clone(), scoped)
	if !g.shouldFallBack(err) {
		return n, err
	}
	g.logFallback("update", table, err)
	unscoped := values.Clone()
	delete(unscoped, g.ownerColumn)
	return g.store.Update(ctx, table, unscoped, filters)
}

// ScopedDelete removes ownerID's rows matching filters. A schema mismatch
// propagates: an unscoped delete could remove other owners' rows.
func (g *AccessGate) ScopedDelete(ctx context.Context, table, ownerID string, filters []types.Filter) (int64, error) {
	if err := requireOwner("delete", table, ownerID); err != nil {
		return 0, err
	}
	scoped := append([]types.Filter{types.Eq(g.ownerColumn, ownerID)}, filters...)
	return g.store.Delete(ctx, table, scoped)
}

// SharedSelect reads a global reference table without owner filtering
func (g *AccessGate) SharedSelect(ctx context.Context, table string, q types.Query) ([]types.Row, error) {
	return g.store.Select(ctx, table, q)
}

// shouldFallBack is true only for a schema mismatch on the owner column,
// or one where the driver did not name the column
func (g *AccessGate) shouldFallBack(err error) bool {
	if !types.IsKind(err, types.KindSchemaMismatch) {
		return false
	}
	col := schemaColumn(err)
	return col == "" || col == g.ownerColumn
}

func (g *AccessGate) logFallback(op, table string, err error) {
	log.Printf("Owner column %s missing on %s, retrying %s without owner scope: %v", g.ownerColumn, table, op, err)
}

func (g *AccessGate) stamp(rows []types.Row, ownerID string) []types.Row {
	out := make([]types.Row, len(rows))
	for i, r := range rows {
		c := r.Clone()
		c[g.ownerColumn] = ownerID
		out[i] = c
	}
	return out
}

func (g *AccessGate) strip(rows []types.Row) []types.Row {
	out := make([]types.Row, len(rows))
	for i, r := range rows {
		c := r.Clone()
		delete(c, g.ownerColumn)
		out[i] = c
	}
	return out
}

func requireOwner(op, table, ownerID string) error {
	if ownerID == "" {
		return &types.DataError{
			Kind:  types.KindValidationFailure,
			Op:    op,
			Table: table,
			Err:   errMissingOwner,
		}
	}
	return nil
}
