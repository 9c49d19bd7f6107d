package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/basetrack/internal/services"
	"github.com/localnerve/basetrack/internal/testutil"
	"github.com/localnerve/basetrack/internal/types"
)

const owner = "user-1"

func legacyStore(t *testing.T) *testutil.MemStore {
	t.Helper()
	store := testutil.NewSchemaStore()
	store.CreateLegacySettings("building_levels")
	return store
}

func TestScopedSelectFiltersByOwner(t *testing.T) {
	store := testutil.NewSchemaStore()
	store.Seed("building_levels",
		types.Row{"owner_id": owner, "key": "HQ", "value": "20"},
		types.Row{"owner_id": "user-2", "key": "HQ", "value": "9"},
	)
	gate := services.NewAccessGate(store, "")

	rows, err := gate.ScopedSelect(context.Background(), "building_levels", owner, types.Query{})
	if err != nil {
		t.Fatalf("ScopedSelect failed: %v", err)
	}
	if len(rows) != 1 || rows[0].String("value") != "20" {
		t.Errorf("Expected only the owner's row, got %v", rows)
	}
	if store.CallCount("") != 1 {
		t.Errorf("Expected one store call, got %d", store.CallCount(""))
	}
}

func TestScopedSelectFallsBackOnceForLegacyTable(t *testing.T) {
	store := legacyStore(t)
	store.Seed("building_levels", types.Row{"key": "HQ", "value": "12"})
	gate := services.NewAccessGate(store, "owner_id")

	rows, err := gate.ScopedSelect(context.Background(), "building_levels", owner, types.Query{
		Filters: []types.Filter{types.Eq("key", "HQ")},
	})
	if err != nil {
		t.Fatalf("ScopedSelect failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}

	calls := store.Calls()
	if len(calls) != 2 {
		t.Fatalf("Expected exactly one retry, got %d calls", len(calls))
	}
	for _, f := range calls[1].Filters {
		if f.Column == "owner_id" {
			t.Errorf("Retry should not filter on owner_id")
		}
	}
}

func TestScopedSelectDoesNotRetryOtherFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"transport", &types.DataError{Kind: types.KindTransportFailure, Err: context.DeadlineExceeded}},
		{"other column", &types.DataError{Kind: types.KindSchemaMismatch, Column: "value"}},
		{"unknown", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewSchemaStore()
			store.Inject(&testutil.Fault{Op: "select", Err: tt.err})
			gate := services.NewAccessGate(store, "")

			_, err := gate.ScopedSelect(context.Background(), "building_levels", owner, types.Query{})
			if !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
			if n := store.CallCount(""); n != 1 {
				t.Errorf("Expected no retry, got %d calls", n)
			}
		})
	}
}

func TestScopedSelectFallsBackWhenColumnUnnamed(t *testing.T) {
	store := testutil.NewSchemaStore()
	store.Inject(&testutil.Fault{
		Op:    "select",
		Times: 1,
		Err:   &types.DataError{Kind: types.KindSchemaMismatch, Err: errors.New("no such column")},
	})
	gate := services.NewAccessGate(store, "")

	if _, err := gate.ScopedSelect(context.Background(), "building_levels", owner, types.Query{}); err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}
	if n := store.CallCount("select"); n != 2 {
		t.Errorf("Expected 2 selects, got %d", n)
	}
}

func TestScopedUpsertAddsOwnerToConflictTarget(t *testing.T) {
	store := testutil.NewSchemaStore()
	gate := services.NewAccessGate(store, "")

	err := gate.ScopedUpsert(context.Background(), "building_levels", owner,
		[]types.Row{{"key": "HQ", "value": "5"}}, []string{"key"})
	if err != nil {
		t.Fatalf("ScopedUpsert failed: %v", err)
	}
	calls := store.Calls()
	if len(calls) != 1 {
		t.Fatalf("Expected 1 call, got %d", len(calls))
	}
	if got := calls[0].Conflict; len(got) != 2 || got[0] != "owner_id" || got[1] != "key" {
		t.Errorf("Unexpected conflict columns %v", got)
	}
	if calls[0].Rows[0]["owner_id"] != owner {
		t.Errorf("Row was not stamped with the owner")
	}
}

func TestScopedUpsertLegacyFallback(t *testing.T) {
	store := legacyStore(t)
	gate := services.NewAccessGate(store, "")
	input := []types.Row{{"key": "HQ", "value": "5"}}

	err := gate.ScopedUpsert(context.Background(), "building_levels", owner, input, []string{"key"})
	if err != nil {
		t.Fatalf("ScopedUpsert failed: %v", err)
	}

	calls := store.Calls()
	if len(calls) != 2 {
		t.Fatalf("Expected 2 calls, got %d", len(calls))
	}
	if got := calls[1].Conflict; len(got) != 1 || got[0] != "key" {
		t.Errorf("Retry conflict columns should drop owner, got %v", got)
	}
	if _, ok := calls[1].Rows[0]["owner_id"]; ok {
		t.Errorf("Retry row should not carry owner_id")
	}
	if _, ok := input[0]["owner_id"]; ok {
		t.Errorf("Caller's row was modified")
	}
	if rows := store.Rows("building_levels"); len(rows) != 1 || rows[0]["value"] != "5" {
		t.Errorf("Unexpected rows %v", rows)
	}
}

func TestScopedInsertLegacyFallback(t *testing.T) {
	store := legacyStore(t)
	gate := services.NewAccessGate(store, "")

	err := gate.ScopedInsert(context.Background(), "building_levels", owner, []types.Row{{"key": "Wall", "value": "3"}})
	if err != nil {
		t.Fatalf("ScopedInsert failed: %v", err)
	}
	if n := store.CallCount("insert"); n != 2 {
		t.Errorf("Expected 2 inserts, got %d", n)
	}
}

func TestScopedUpdateLegacyFallback(t *testing.T) {
	store := legacyStore(t)
	store.Seed("building_levels", types.Row{"key": "HQ", "value": "1"})
	gate := services.NewAccessGate(store, "")

	n, err := gate.ScopedUpdate(context.Background(), "building_levels", owner,
		types.Row{"value": "2"}, []types.Filter{types.Eq("key", "HQ")})
	if err != nil {
		t.Fatalf("ScopedUpdate failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 row updated, got %d", n)
	}
	if store.Rows("building_levels")[0]["value"] != "2" {
		t.Errorf("Row not updated")
	}
}

func TestScopedDeleteNeverFallsBack(t *testing.T) {
	store := legacyStore(t)
	store.Seed("building_levels", types.Row{"key": "HQ", "value": "1"})
	gate := services.NewAccessGate(store, "")

	_, err := gate.ScopedDelete(context.Background(), "building_levels", owner, []types.Filter{types.Eq("key", "HQ")})
	if !types.IsKind(err, types.KindSchemaMismatch) {
		t.Fatalf("Expected schema mismatch, got %v", err)
	}
	if n := store.CallCount("delete"); n != 1 {
		t.Errorf("Expected a single delete attempt, got %d", n)
	}
	if len(store.Rows("building_levels")) != 1 {
		t.Errorf("Legacy row was deleted")
	}
}

func TestScopedOperationsRequireOwner(t *testing.T) {
	store := testutil.NewSchemaStore()
	gate := services.NewAccessGate(store, "")
	ctx := context.Background()

	if _, err := gate.ScopedSelect(ctx, "heroes", "", types.Query{}); !types.IsKind(err, types.KindValidationFailure) {
		t.Errorf("select: expected validation failure, got %v", err)
	}
	if err := gate.ScopedInsert(ctx, "heroes", "", nil); !types.IsKind(err, types.KindValidationFailure) {
		t.Errorf("insert: expected validation failure, got %v", err)
	}
	if err := gate.ScopedUpsert(ctx, "heroes", "", nil, []string{"name"}); !types.IsKind(err, types.KindValidationFailure) {
		t.Errorf("upsert: expected validation failure, got %v", err)
	}
	if _, err := gate.ScopedUpdate(ctx, "heroes", "", types.Row{}, nil); !types.IsKind(err, types.KindValidationFailure) {
		t.Errorf("update: expected validation failure, got %v", err)
	}
	if _, err := gate.ScopedDelete(ctx, "heroes", "", nil); !types.IsKind(err, types.KindValidationFailure) {
		t.Errorf("delete: expected validation failure, got %v", err)
	}
	if n := store.CallCount(""); n != 0 {
		t.Errorf("Expected no store calls, got %d", n)
	}
}

func TestCustomOwnerColumn(t *testing.T) {
	store := testutil.NewMemStore()
	store.CreateTable("notes", []string{"account", "key", "value"}, "account", "key")
	gate := services.NewAccessGate(store, "account")

	if gate.OwnerColumn() != "account" {
		t.Fatalf("Expected owner column account, got %s", gate.OwnerColumn())
	}
	if err := gate.ScopedUpsert(context.Background(), "notes", owner, []types.Row{{"key": "a", "value": "b"}}, []string{"key"}); err != nil {
		t.Fatalf("ScopedUpsert failed: %v", err)
	}
	if store.Rows("notes")[0]["account"] != owner {
		t.Errorf("Expected row owned through the account column")
	}
}

func TestFallbackReturnsSecondError(t *testing.T) {
	ownerMissing := &types.DataError{Kind: types.KindSchemaMismatch, Column: "owner_id"}
	second := &types.DataError{Kind: types.KindTransportFailure, Err: errors.New("connection reset")}

	tests := []struct {
		name string
		op   string
		call func(gate *services.AccessGate) error
	}{
		{"select", "select", func(gate *services.AccessGate) error {
			_, err := gate.ScopedSelect(context.Background(), "building_levels", owner, types.Query{})
			return err
		}},
		{"upsert", "upsert", func(gate *services.AccessGate) error {
			return gate.ScopedUpsert(context.Background(), "building_levels", owner,
				[]types.Row{{"key": "HQ", "value": "3"}}, []string{"key"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewSchemaStore()
			store.Inject(&testutil.Fault{Op: tt.op, Err: ownerMissing, Times: 1})
			store.Inject(&testutil.Fault{Op: tt.op, Err: second})

			err := tt.call(services.NewAccessGate(store, "owner_id"))
			if !errors.Is(err, second) {
				t.Errorf("Expected the fallback's error, got %v", err)
			}
			if errors.Is(err, ownerMissing) {
				t.Errorf("First error should not be returned")
			}
			if n := store.CallCount(tt.op); n != 2 {
				t.Errorf("Expected 2 store calls, got %d", n)
			}
		})
	}
}
