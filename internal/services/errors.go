package services

import (
	"errors"

	"github.com/localnerve/basetrack/internal/types"
)

var errMissingOwner = errors.New("owner id is required")

// schemaColumn returns the column named by a schema mismatch, if any
func schemaColumn(err error) string {
	var de *types.DataError
	if errors.As(err, &de) {
		return de.Column
	}
	return ""
}

// bulkFailure collects per-entity failures of a bulk write
type bulkFailure struct {
	table    string
	attempts int
	failures []types.EntityFailure
}

func (b *bulkFailure) add(entity string, err error) {
	b.failures = append(b.failures, types.EntityFailure{Entity: entity, Err: err})
}

func (b *bulkFailure) err() error {
	if len(b.failures) == 0 {
		return nil
	}
	return &types.BulkWriteError{
		Table:    b.table,
		Attempts: b.attempts,
		Failures: b.failures,
	}
}

var errStaleSnapshot = errors.New("row changed since it was read")
