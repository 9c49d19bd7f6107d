package types

import (
	"errors"
	"fmt"
	"strings"
)

// CustomError is returned by middleware to carry an HTTP status and an error type
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Kind classifies data access failures
type Kind string

const (
	KindUnknown           Kind = "unknown"
	KindSchemaMismatch    Kind = "schema_mismatch"
	KindNotFound          Kind = "not_found"
	KindConflictViolation Kind = "conflict_violation"
	KindTransportFailure  Kind = "transport_failure"
	KindValidationFailure Kind = "validation_failure"
	KindStaleWrite        Kind = "stale_write"
)

// DataError is the typed error returned by every store and service operation.
// Column is set for schema mismatches when the driver names the offending column.
type DataError struct {
	Kind   Kind
	Op     string
	Table  string
	Column string
	Entity string
	Err    error
}

func (e *DataError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Table != "" {
		b.WriteString(" ")
		b.WriteString(e.Table)
	}
	if e.Entity != "" {
		fmt.Fprintf(&b, " %q", e.Entity)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Column != "" {
		fmt.Fprintf(&b, " (column %s)", e.Column)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first DataError in err's chain
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *DataError
	if errors.As(err, &de) {
		return de.Kind
	}
	var be *BulkWriteError
	if errors.As(err, &be) && len(be.Failures) > 0 {
		return KindOf(be.Failures[0].Err)
	}
	return KindUnknown
}

// IsKind reports whether err carries the given Kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// NewValidationError builds a validation failure raised before any store call
func NewValidationError(op, entity, message string) error {
	return &DataError{
		Kind:   KindValidationFailure,
		Op:     op,
		Entity: entity,
		Err:    errors.New(message),
	}
}

// NewNotFoundError builds a not-found failure for a named entity
func NewNotFoundError(op, table, entity string) error {
	return &DataError{
		Kind:   KindNotFound,
		Op:     op,
		Table:  table,
		Entity: entity,
		Err:    errors.New("no matching row"),
	}
}

// EntityFailure names one logical entity that failed inside a bulk write
type EntityFailure struct {
	Entity string
	Err    error
}

// BulkWriteError reports the failed entities of a partially applied bulk write.
// Entities not listed were written.
type BulkWriteError struct {
	Table    string
	Attempts int
	Failures []EntityFailure
}

func (e *BulkWriteError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s (%v)", f.Entity, f.Err))
	}
	return fmt.Sprintf("%s: %d of %d writes failed: %s",
		e.Table, len(e.Failures), e.Attempts, strings.Join(parts, "; "))
}

func (e *BulkWriteError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// FailedEntities lists the entity names in failure order
func (e *BulkWriteError) FailedEntities() []string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, f.Entity)
	}
	return names
}
