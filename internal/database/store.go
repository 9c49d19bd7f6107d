// store.go
//
// A progress tracking data service for base buildings, hero rosters and research
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of basetrack.
// basetrack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// basetrack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with basetrack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/localnerve/basetrack/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/hints"
)

// Store executes row-level operations against one GORM connection.
// Every error it returns is a *types.DataError.
type Store struct {
	db *gorm.DB
}

// NewStore wraps a GORM connection
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return Classify(err, "ping", "")
	}
	return Classify(sqlDB.PingContext(ctx), "ping", "")
}

func (s *Store) session(ctx context.Context, op, table string) *gorm.DB {
	return s.db.Session(&gorm.Session{Logger: s.db.Logger.LogMode(logger.Silent)}).
		WithContext(ctx).
		Table(table).
		Clauses(hints.CommentBefore(op, "basetrack:"+op+" "+table))
}

// Select reads rows from a table
func (s *Store) Select(ctx context.Context, table string, q types.Query) ([]types.Row, error) {
	tx := s.session(ctx, "select", table)
	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}
	where, err := whereClause(q.Filters)
	if err != nil {
		return nil, Classify(err, "select", table)
	}
	if where != nil {
		tx = tx.Clauses(*where)
	}
	if order := orderClause(q.Order); order != nil {
		tx = tx.Clauses(*order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var found []map[string]interface{}
	if err := tx.Find(&found).Error; err != nil {
		return nil, Classify(err, "select", table)
	}

	rows := make([]types.Row, len(found))
	for i, m := range found {
		rows[i] = types.Row(m)
	}
	return rows, nil
}

// Insert writes new rows in one statement
func (s *Store) Insert(ctx context.Context, table string, rows []types.Row) error {
	if len(rows) == 0 {
		return nil
	}
	values := toMaps(rows)
	err := s.session(ctx, "insert", table).Create(&values).Error
	return Classify(ignoreUnsupported(err), "insert", table)
}

// Upsert inserts rows, updating every non-key column of rows that collide on conflictColumns
func (s *Store) Upsert(ctx context.Context, table string, rows []types.Row, conflictColumns []string) error {
	if len(rows) == 0 {
		return nil
	}
	if len(conflictColumns) == 0 {
		return Classify(errors.New("upsert requires conflict columns"), "upsert", table)
	}

	onConflict := clause.OnConflict{}
	for _, c := range conflictColumns {
		onConflict.Columns = append(onConflict.Columns, clause.Column{Name: c})
	}
	if update := updateColumns(rows, conflictColumns); len(update) > 0 {
		onConflict.DoUpdates = clause.AssignmentColumns(update)
	} else {
		onConflict.DoNothing = true
	}

	values := toMaps(rows)
	err := s.session(ctx, "insert", table).Clauses(onConflict).Create(&values).Error
	return Classify(ignoreUnsupported(err), "upsert", table)
}

// Update sets values on every row matching filters and returns the affected count
func (s *Store) Update(ctx context.Context, table string, values types.Row, filters []types.Filter) (int64, error) {
	where, err := whereClause(filters)
	if err != nil {
		return 0, Classify(err, "update", table)
	}
	if where == nil {
		return 0, Classify(gorm.ErrMissingWhereClause, "update", table)
	}
	result := s.session(ctx, "update", table).Clauses(*where).Updates(map[string]interface{}(values))
	if err := ignoreUnsupported(result.Error); err != nil {
		return 0, Classify(err, "update", table)
	}
	return result.RowsAffected, nil
}

// Delete removes every row matching filters and returns the affected count
func (s *Store) Delete(ctx context.Context, table string, filters []types.Filter) (int64, error) {
	where, err := whereClause(filters)
	if err != nil {
		return 0, Classify(err, "delete", table)
	}
	if where == nil {
		return 0, Classify(gorm.ErrMissingWhereClause, "delete", table)
	}
	result := s.session(ctx, "delete", table).Clauses(*where).Delete(map[string]interface{}{})
	if err := ignoreUnsupported(result.Error); err != nil {
		return 0, Classify(err, "delete", table)
	}
	return result.RowsAffected, nil
}

func whereClause(filters []types.Filter) (*clause.Where, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	exprs := make([]clause.Expression, 0, len(filters))
	for _, f := range filters {
		col := clause.Column{Name: f.Column}
		switch f.Op {
		case types.OpEq, "":
			exprs = append(exprs, clause.Eq{Column: col, Value: f.Value})
		case types.OpIn:
			vals, ok := f.Value.([]any)
			if !ok {
				return nil, fmt.Errorf("filter on %s: IN expects []any, got %T", f.Column, f.Value)
			}
			exprs = append(exprs, clause.IN{Column: col, Values: vals})
		default:
			return nil, fmt.Errorf("filter on %s: unsupported operator %q", f.Column, f.Op)
		}
	}
	return &clause.Where{Exprs: exprs}, nil
}

// orderClause renders the terms as one expression so that null placement
// works on every dialect
func orderClause(orders []types.Order) *clause.OrderBy {
	if len(orders) == 0 {
		return nil
	}
	var (
		parts []string
		vars  []interface{}
	)
	for _, o := range orders {
		col := clause.Column{Name: o.Column}
		if o.NullsLast {
			parts = append(parts, "CASE WHEN ? IS NULL THEN 1 ELSE 0 END")
			vars = append(vars, col)
		}
		if o.Desc {
			parts = append(parts, "? DESC")
		} else {
			parts = append(parts, "?")
		}
		vars = append(vars, col)
	}
	return &clause.OrderBy{Expression: clause.Expr{SQL: strings.Join(parts, ", "), Vars: vars}}
}

// updateColumns lists the columns to overwrite on conflict, sorted for stable SQL
func updateColumns(rows []types.Row, conflictColumns []string) []string {
	skip := map[string]bool{"id": true}
	for _, c := range conflictColumns {
		skip[c] = true
	}
	seen := map[string]bool{}
	var cols []string
	for _, r := range rows {
		for k := range r {
			if skip[k] || seen[k] {
				continue
			}
			seen[k] = true
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	return cols
}

func toMaps(rows []types.Row) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rows))
	for i, r := range rows {
		out[i] = map[string]interface{}(r)
	}
	return out
}

// ignoreUnsupported drops the error GORM reports when it cannot parse a map
// destination into a schema; the statement still runs against the named table
func ignoreUnsupported(err error) error {
	if errors.Is(err, schema.ErrUnsupportedDataType) {
		return nil
	}
	return err
}
