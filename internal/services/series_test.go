package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/basetrack/internal/progress"
	"github.com/localnerve/basetrack/internal/services"
	"github.com/localnerve/basetrack/internal/testutil"
	"github.com/localnerve/basetrack/internal/types"
)

func TestSeriesResolver(t *testing.T) {
	store := testutil.NewSchemaStore()
	store.Seed("building_levels",
		types.Row{"owner_id": owner, "key": "Hospital 1", "value": "25"},
		types.Row{"owner_id": owner, "key": "Hospital 2", "value": "10"},
		types.Row{"owner_id": owner, "key": "Hospital 3", "value": "n/a"},
	)
	levels := services.NewSettingsStore(services.NewAccessGate(store, ""), "building_levels")
	resolver := services.NewSeriesResolver(levels, progress.NewAliases(map[string]string{"Hospitals": "Hospital"}))
	ctx := context.Background()

	if got := resolver.Resolve(" hospitals "); got != "Hospital" {
		t.Errorf("Expected alias to resolve, got %q", got)
	}

	maxLevel, err := resolver.MaxOfSeries(ctx, owner, "Hospitals", []int{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("MaxOfSeries failed: %v", err)
	}
	if maxLevel != 25 {
		t.Errorf("Expected max 25, got %d", maxLevel)
	}

	sum, err := resolver.SumOfSeries(ctx, owner, "Hospital", []int{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("SumOfSeries failed: %v", err)
	}
	if sum != 35 {
		t.Errorf("Expected sum 35, got %d", sum)
	}

	empty, err := resolver.MaxOfSeries(ctx, owner, "Hospital", nil)
	if err != nil || empty != 0 {
		t.Errorf("Expected 0 for no suffixes, got %d, %v", empty, err)
	}
	if n := store.CallCount("select"); n != 2 {
		t.Errorf("Expected one read per aggregate, got %d", n)
	}
}
