package database

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/localnerve/basetrack/internal/types"
	mssql "github.com/microsoft/go-mssqldb"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   types.Kind
		column string
	}{
		{"record not found", gorm.ErrRecordNotFound, types.KindNotFound, ""},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), types.KindTransportFailure, ""},
		{"canceled", context.Canceled, types.KindTransportFailure, ""},

		{"postgres column named", &pgconn.PgError{Code: "42703", ColumnName: "owner_id"}, types.KindSchemaMismatch, "owner_id"},
		{"postgres column in message", &pgconn.PgError{Code: "42703", Message: `column "owner_id" does not exist`}, types.KindSchemaMismatch, "owner_id"},
		{"postgres qualified column", &pgconn.PgError{Code: "42703", Message: `column building_levels.owner_id does not exist`}, types.KindSchemaMismatch, "owner_id"},
		{"postgres relation column", &pgconn.PgError{Code: "42703", Message: `column "owner_id" of relation "building_levels" does not exist`}, types.KindSchemaMismatch, "owner_id"},
		{"postgres on conflict", &pgconn.PgError{Code: "42P10"}, types.KindConflictViolation, ""},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, types.KindConflictViolation, ""},
		{"postgres admin shutdown", &pgconn.PgError{Code: "57P01"}, types.KindTransportFailure, ""},
		{"postgres connection", &pgconn.PgError{Code: "08006"}, types.KindTransportFailure, ""},
		{"postgres other", &pgconn.PgError{Code: "22P02"}, types.KindUnknown, ""},

		{"mysql column", &mysql.MySQLError{Number: 1054, Message: "Unknown column 'owner_id' in 'where clause'"}, types.KindSchemaMismatch, "owner_id"},
		{"mysql qualified column", &mysql.MySQLError{Number: 1054, Message: "Unknown column 'heroes.owner_id' in 'field list'"}, types.KindSchemaMismatch, "owner_id"},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, types.KindConflictViolation, ""},
		{"mysql gone away", &mysql.MySQLError{Number: 2006}, types.KindTransportFailure, ""},

		{"mssql column", mssql.Error{Number: 207, Message: "Invalid column name 'owner_id'."}, types.KindSchemaMismatch, "owner_id"},
		{"mssql unique", mssql.Error{Number: 2627}, types.KindConflictViolation, ""},

		{"sqlite select", errors.New("no such column: owner_id"), types.KindSchemaMismatch, "owner_id"},
		{"sqlite insert", errors.New("table building_levels has no column named owner_id"), types.KindSchemaMismatch, "owner_id"},
		{"sqlite conflict target", errors.New("ON CONFLICT clause does not match any PRIMARY KEY or UNIQUE constraint"), types.KindConflictViolation, ""},
		{"sqlite unique", errors.New("UNIQUE constraint failed: heroes.owner_id, heroes.name"), types.KindConflictViolation, ""},
		{"gateway column", errors.New("Could not find the 'owner_id' column of 'building_levels' in the schema cache"), types.KindSchemaMismatch, "owner_id"},
		{"refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), types.KindTransportFailure, ""},
		{"locked", errors.New("database is locked"), types.KindTransportFailure, ""},
		{"unknown", errors.New("something odd"), types.KindUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.err, "select", "building_levels")

			var de *types.DataError
			if !errors.As(err, &de) {
				t.Fatalf("Expected DataError, got %T", err)
			}
			if de.Kind != tt.kind {
				t.Errorf("Expected kind %s, got %s", tt.kind, de.Kind)
			}
			if de.Column != tt.column {
				t.Errorf("Expected column %q, got %q", tt.column, de.Column)
			}
			if de.Op != "select" || de.Table != "building_levels" {
				t.Errorf("Unexpected op/table %s/%s", de.Op, de.Table)
			}
			if !reflect.DeepEqual(de.Err, tt.err) {
				t.Errorf("Expected cause to be preserved, got %v", de.Err)
			}
		})
	}
}

func TestClassifyPassThrough(t *testing.T) {
	if Classify(nil, "select", "heroes") != nil {
		t.Errorf("Expected nil for nil")
	}

	original := &types.DataError{Kind: types.KindStaleWrite, Op: "update", Table: "heroes"}
	if got := Classify(fmt.Errorf("wrapped: %w", original), "select", "other"); !types.IsKind(got, types.KindStaleWrite) {
		t.Errorf("Expected existing kind kept, got %v", got)
	}
}

func TestIgnoreUnsupported(t *testing.T) {
	if err := ignoreUnsupported(fmt.Errorf("parse: %w", schema.ErrUnsupportedDataType)); err != nil {
		t.Errorf("Expected unsupported data type to be dropped, got %v", err)
	}
	other := errors.New("no such table: heroes")
	if err := ignoreUnsupported(other); err != other {
		t.Errorf("Expected other errors to pass through, got %v", err)
	}
}
