package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/basetrack/internal/services"
	"github.com/localnerve/basetrack/internal/testutil"
	"github.com/localnerve/basetrack/internal/types"
)

func newRoster(t *testing.T) (*services.RosterRepository, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewSchemaStore()
	store.Seed("hero_catalog",
		types.Row{"name": "Aria", "type": "Support", "role": "Defense"},
		types.Row{"name": "Kane", "type": "Tank", "role": "Attack"},
	)
	return services.NewRosterRepository(services.NewAccessGate(store, "")), store
}

func intField(n int) *types.FlexInt {
	v := types.FlexInt(n)
	return &v
}

func floatField(f float64) *types.FlexFloat {
	v := types.FlexFloat(f)
	return &v
}

func TestUpsertByNameBackfillsFromCatalog(t *testing.T) {
	roster, _ := newRoster(t)

	hero, err := roster.UpsertByName(context.Background(), owner, "Aria", services.HeroFields{Level: intField(30)})
	if err != nil {
		t.Fatalf("UpsertByName failed: %v", err)
	}
	if hero.Type != "Support" || hero.Role != "Defense" {
		t.Errorf("Expected catalog defaults, got type=%q role=%q", hero.Type, hero.Role)
	}
	if hero.Level != 30 {
		t.Errorf("Expected level 30, got %d", hero.Level)
	}
	if hero.ID == "" {
		t.Errorf("Expected an id")
	}
}

func TestUpsertByNameBlankTypeUsesCatalog(t *testing.T) {
	roster, _ := newRoster(t)
	blank := "  "

	hero, err := roster.UpsertByName(context.Background(), owner, "Aria", services.HeroFields{Type: &blank})
	if err != nil {
		t.Fatalf("UpsertByName failed: %v", err)
	}
	if hero.Type != "Support" {
		t.Errorf("Expected Support, got %q", hero.Type)
	}
}

func TestUpsertByNameKeepsCallerType(t *testing.T) {
	roster, _ := newRoster(t)
	tank := "Tank"

	hero, err := roster.UpsertByName(context.Background(), owner, "Aria", services.HeroFields{Type: &tank})
	if err != nil {
		t.Fatalf("UpsertByName failed: %v", err)
	}
	if hero.Type != "Tank" || hero.Role != "Defense" {
		t.Errorf("Expected Tank/Defense, got %q/%q", hero.Type, hero.Role)
	}
}

func TestUpsertByNameUpdatesExisting(t *testing.T) {
	roster, store := newRoster(t)
	ctx := context.Background()

	first, err := roster.UpsertByName(ctx, owner, "Kane", services.HeroFields{Level: intField(10), Power: floatField(1000)})
	if err != nil {
		t.Fatalf("UpsertByName failed: %v", err)
	}
	second, err := roster.UpsertByName(ctx, owner, "Kane", services.HeroFields{Power: floatField(2500.5)})
	if err != nil {
		t.Fatalf("UpsertByName failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("Expected the same hero, got %s and %s", first.ID, second.ID)
	}
	if second.Level != 10 || second.Power != 2500.5 {
		t.Errorf("Expected level kept and power updated, got %d/%v", second.Level, second.Power)
	}
	if n := len(store.Rows("heroes")); n != 1 {
		t.Errorf("Expected 1 hero row, got %d", n)
	}
}

func TestUpsertByNameCatalogFailureStillSaves(t *testing.T) {
	roster, store := newRoster(t)
	store.Inject(&testutil.Fault{Op: "select", Table: "hero_catalog", Err: errors.New("catalog offline")})

	hero, err := roster.UpsertByName(context.Background(), owner, "Aria", services.HeroFields{})
	if err != nil {
		t.Fatalf("UpsertByName failed: %v", err)
	}
	if hero.Type != "" {
		t.Errorf("Expected no type without the catalog, got %q", hero.Type)
	}
}

func TestUpsertByNameValidation(t *testing.T) {
	roster, store := newRoster(t)
	ctx := context.Background()

	if _, err := roster.UpsertByName(ctx, owner, "   ", services.HeroFields{}); !types.IsKind(err, types.KindValidationFailure) {
		t.Errorf("Expected validation failure for blank name, got %v", err)
	}
	if _, err := roster.UpsertByName(ctx, "", "Aria", services.HeroFields{}); !types.IsKind(err, types.KindValidationFailure) {
		t.Errorf("Expected validation failure for missing owner, got %v", err)
	}
	if n := store.CallCount(""); n != 0 {
		t.Errorf("Expected no store calls, got %d", n)
	}
}

func TestFindByNameNotFound(t *testing.T) {
	roster, _ := newRoster(t)

	_, err := roster.FindByName(context.Background(), owner, "Nobody")
	if !types.IsKind(err, types.KindNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestListForOwnerOrders(t *testing.T) {
	roster, store := newRoster(t)
	store.Seed("heroes",
		types.Row{"id": "1", "owner_id": owner, "name": "Cid", "level": int64(5), "power": 300.0},
		types.Row{"id": "2", "owner_id": owner, "name": "Aria", "level": int64(9), "power": nil},
		types.Row{"id": "3", "owner_id": owner, "name": "Bo", "level": int64(7), "power": 900.0},
		types.Row{"id": "4", "owner_id": "user-2", "name": "Zed", "level": int64(99), "power": 99999.0},
	)
	ctx := context.Background()

	tests := []struct {
		order string
		want  []string
	}{
		{services.OrderPower, []string{"Bo", "Cid", "Aria"}},
		{services.OrderLevel, []string{"Aria", "Bo", "Cid"}},
		{services.OrderName, []string{"Aria", "Bo", "Cid"}},
	}
	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			heroes, err := roster.ListForOwner(ctx, owner, tt.order)
			if err != nil {
				t.Fatalf("ListForOwner failed: %v", err)
			}
			if len(heroes) != len(tt.want) {
				t.Fatalf("Expected %d heroes, got %d", len(tt.want), len(heroes))
			}
			for i, name := range tt.want {
				if heroes[i].Name != name {
					t.Errorf("Position %d: expected %s, got %s", i, name, heroes[i].Name)
				}
			}
		})
	}

	if _, err := roster.ListForOwner(ctx, owner, "speed"); !types.IsKind(err, types.KindValidationFailure) {
		t.Errorf("Expected validation failure for unknown order, got %v", err)
	}
}

func TestDeleteByID(t *testing.T) {
	roster, store := newRoster(t)
	store.Seed("heroes",
		types.Row{"id": "h1", "owner_id": owner, "name": "Aria"},
		types.Row{"id": "h2", "owner_id": "user-2", "name": "Aria"},
	)
	ctx := context.Background()

	if err := roster.DeleteByID(ctx, owner, "h2"); !types.IsKind(err, types.KindNotFound) {
		t.Errorf("Expected another owner's hero to be not found, got %v", err)
	}
	if err := roster.DeleteByID(ctx, owner, "h1"); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	if err := roster.DeleteByID(ctx, owner, "h1"); !types.IsKind(err, types.KindNotFound) {
		t.Errorf("Expected not found on second delete, got %v", err)
	}
	if n := len(store.Rows("heroes")); n != 1 {
		t.Errorf("Expected the other owner's hero to remain, got %d rows", n)
	}
}
