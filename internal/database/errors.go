// errors.go
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
	"database/sql/driver"
	"errors"
	"net"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/localnerve/basetrack/internal/types"
	mssql "github.com/microsoft/go-mssqldb"
	"gorm.io/gorm"
)

var (
	pgMissingColumn     = regexp.MustCompile(`column "?(?:\w+\.)?(\w+)"?(?: of relation "[^"]+")? does not exist`)
	mysqlMissingColumn  = regexp.MustCompile(`Unknown column '(?:[^'.]+\.)?([^'.]+)'`)
	mssqlMissingColumn  = regexp.MustCompile(`Invalid column name '([^']+)'`)
	sqliteMissingColumn = regexp.MustCompile(`(?:no such column|has no column named):? (?:\w+\.)?(\w+)`)
	restMissingColumn   = regexp.MustCompile(`Could not find the '([^']+)' column`)
)

var transportSignatures = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"i/o timeout",
	"no such host",
	"server closed",
	"bad connection",
	"database is locked",
	"timeout expired",
}

// Classify maps a driver error onto the data error taxonomy.
// A nil error stays nil and an existing DataError is returned unchanged.
func Classify(err error, op, table string) error {
	if err == nil {
		return nil
	}
	var de *types.DataError
	if errors.As(err, &de) {
		return err
	}

	kind, column := classify(err)
	return &types.DataError{
		Kind:   kind,
		Op:     op,
		Table:  table,
		Column: column,
		Err:    err,
	}
}

func classify(err error) (types.Kind, string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.KindNotFound, ""
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return types.KindTransportFailure, ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42703":
			column := pgErr.ColumnName
			if column == "" {
				column = match(pgMissingColumn, pgErr.Message)
			}
			return types.KindSchemaMismatch, column
		case pgErr.Code == "42P10" || pgErr.Code == "23505":
			return types.KindConflictViolation, ""
		case strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P"):
			return types.KindTransportFailure, ""
		}
		return types.KindUnknown, ""
	}
	if pgconn.Timeout(err) {
		return types.KindTransportFailure, ""
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1054:
			return types.KindSchemaMismatch, match(mysqlMissingColumn, myErr.Message)
		case 1062:
			return types.KindConflictViolation, ""
		case 2006, 2013:
			return types.KindTransportFailure, ""
		}
		return types.KindUnknown, ""
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		switch msErr.Number {
		case 207:
			return types.KindSchemaMismatch, match(mssqlMissingColumn, msErr.Message)
		case 2601, 2627:
			return types.KindConflictViolation, ""
		}
		return types.KindUnknown, ""
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return types.KindTransportFailure, ""
	}

	// sqlite drivers and PostgREST-style gateways only expose messages
	msg := err.Error()
	switch {
	case sqliteMissingColumn.MatchString(msg):
		return types.KindSchemaMismatch, match(sqliteMissingColumn, msg)
	case restMissingColumn.MatchString(msg):
		return types.KindSchemaMismatch, match(restMissingColumn, msg)
	case strings.Contains(msg, "does not exist") && strings.Contains(msg, "column"):
		return types.KindSchemaMismatch, match(pgMissingColumn, msg)
	case strings.Contains(msg, "ON CONFLICT clause does not match"),
		strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key"):
		return types.KindConflictViolation, ""
	}
	lower := strings.ToLower(msg)
	for _, sig := range transportSignatures {
		if strings.Contains(lower, sig) {
			return types.KindTransportFailure, ""
		}
	}
	return types.KindUnknown, ""
}

func match(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}
