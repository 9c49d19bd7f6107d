package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/catalog"
	"github.com/localnerve/basetrack/internal/handlers"
	"github.com/localnerve/basetrack/internal/middleware"
	"github.com/localnerve/basetrack/internal/models"
	"github.com/localnerve/basetrack/internal/services"
	"github.com/localnerve/basetrack/internal/testutil"
	"github.com/localnerve/basetrack/internal/types"
	"github.com/localnerve/basetrack/internal/utils"
)

const owner = "user-1"

// setupApp wires every handler over an in-memory store, with auth
// replaced by a fixed owner
func setupApp(t *testing.T) (*fiber.App, *testutil.MemStore) {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	store := testutil.NewSchemaStore()
	gate := services.NewAccessGate(store, "")
	history := services.NewHistory(gate)
	buildings := services.NewSettingsStore(gate, models.TableBuildingLevels, services.WithHistory(history))
	teams := services.NewSettingsStore(gate, models.TableTeamSettings, services.WithHistory(history))
	research := services.NewSettingsStore(gate, models.TableResearchLevels, services.WithHistory(history))
	roster := services.NewRosterRepository(gate)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	auth := func(c *fiber.Ctx) error {
		c.Locals(middleware.OwnerIDKey, owner)
		return c.Next()
	}
	handlers.Register(app.Group("/api"), auth, handlers.Set{
		Settings: handlers.NewSettingsHandler(buildings, teams, research),
		Roster:   &handlers.RosterHandler{Roster: roster},
		Tracking: &handlers.TrackingHandler{
			Buildings: services.NewBuildingTracking(gate),
			Research:  services.NewResearchTracking(gate),
		},
		Progress: &handlers.ProgressHandler{
			Dashboard: services.NewDashboard(c, roster, buildings, teams, research),
			Series:    services.NewSeriesResolver(buildings, c.AliasTable()),
			Catalog:   c,
		},
		History: &handlers.HistoryHandler{History: history},
	})
	app.Use(handlers.NotFound)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

func TestSettingsRoundTrip(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/settings/building_levels", map[string]interface{}{
		"rows": []map[string]string{{"key": "HQ", "value": "20"}, {"key": "Wall", "value": "19"}},
	})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var ok utils.SuccessResponseStruct
	testutil.ParseJSON(t, resp, &ok)
	if ok.AffectedRows != 2 {
		t.Errorf("Expected 2 affected rows, got %d", ok.AffectedRows)
	}

	resp = doJSON(t, app, "GET", "/api/settings/building_levels?keys=Wall,Farm%201&keys=HQ", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var values []services.SettingValue
	testutil.ParseJSON(t, resp, &values)
	if len(values) != 3 {
		t.Fatalf("Expected 3 values, got %d", len(values))
	}
	if values[0].Key != "Wall" || values[1].Key != "Farm 1" || values[2].Key != "HQ" {
		t.Errorf("Expected request order, got %v", values)
	}
	if values[1].Value != nil {
		t.Errorf("Expected null for a missing key")
	}
	if values[2].Value == nil || *values[2].Value != "20" {
		t.Errorf("Expected HQ 20")
	}
}

func TestSettingsDiffWrite(t *testing.T) {
	app, store := setupApp(t)
	store.Seed(models.TableBuildingLevels, types.Row{"owner_id": owner, "key": "HQ", "value": "20"})

	resp := doJSON(t, app, "POST", "/api/settings/building_levels", map[string]interface{}{
		"rows":     []map[string]string{{"key": "HQ", "value": "20"}},
		"snapshot": []map[string]string{{"key": "HQ", "value": "20"}},
	})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var ok utils.SuccessResponseStruct
	testutil.ParseJSON(t, resp, &ok)
	if ok.AffectedRows != 0 {
		t.Errorf("Expected no writes, got %d", ok.AffectedRows)
	}
	if n := store.CallCount(""); n != 0 {
		t.Errorf("Expected no store calls, got %d", n)
	}
}

func TestSettingsUnknownTable(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, "GET", "/api/settings/heroes?keys=a", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestSettingsBulkFailureNamesEntity(t *testing.T) {
	app, store := setupApp(t)
	store.Inject(&testutil.Fault{
		Op:  "upsert",
		Err: &types.DataError{Kind: types.KindTransportFailure, Op: "upsert"},
		Match: func(c testutil.Call) bool {
			return c.Rows[0]["key"] == "Wall"
		},
	})

	resp := doJSON(t, app, "POST", "/api/settings/building_levels", map[string]interface{}{
		"rows": []map[string]string{{"key": "HQ", "value": "20"}, {"key": "Wall", "value": "19"}},
	})
	testutil.AssertStatus(t, resp, fiber.StatusServiceUnavailable)
	var body utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &body)
	if len(body.Failed) != 1 || body.Failed[0] != "Wall" {
		t.Errorf("Expected Wall named as failed, got %v", body.Failed)
	}
	if body.Type != string(types.KindTransportFailure) {
		t.Errorf("Expected transport type, got %s", body.Type)
	}
}

func TestHeroRoutes(t *testing.T) {
	app, store := setupApp(t)
	store.Seed(models.TableHeroCatalog, types.Row{"name": "Aria", "type": "Support", "role": "Defense"})

	resp := doJSON(t, app, "POST", "/api/heroes", map[string]interface{}{
		"name":  "Aria",
		"level": "30",
		"power": "1,250,000",
		"team":  "1",
	})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var hero models.Hero
	testutil.ParseJSON(t, resp, &hero)
	if hero.Level != 30 || hero.Power != 1250000 || hero.Type != "Support" {
		t.Errorf("Unexpected hero %+v", hero)
	}

	resp = doJSON(t, app, "GET", "/api/heroes/Aria", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = doJSON(t, app, "GET", "/api/heroes?order=power", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var heroes []models.Hero
	testutil.ParseJSON(t, resp, &heroes)
	if len(heroes) != 1 {
		t.Errorf("Expected 1 hero, got %d", len(heroes))
	}

	resp = doJSON(t, app, "GET", "/api/heroes?order=speed", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = doJSON(t, app, "DELETE", "/api/heroes/"+hero.ID, nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = doJSON(t, app, "DELETE", "/api/heroes/"+hero.ID, nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
	var body utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &body)
	if len(body.Failed) != 1 || body.Failed[0] != hero.ID {
		t.Errorf("Expected the hero id named, got %v", body.Failed)
	}
}

func TestHeroBlankName(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/heroes", map[string]interface{}{"name": " "})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestTrackingRoutes(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/tracking/research", map[string]interface{}{
		"category": "Economy",
		"rows":     []map[string]interface{}{{"name": "Oil Production", "inProgress": true}},
	})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = doJSON(t, app, "GET", "/api/tracking/research?category=Economy", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var flags handlers.FlagSets
	testutil.ParseJSON(t, resp, &flags)
	if len(flags.InProgress) != 1 || flags.InProgress[0] != "Oil Production" {
		t.Errorf("Unexpected flags %+v", flags)
	}

	resp = doJSON(t, app, "GET", "/api/tracking/research", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = doJSON(t, app, "GET", "/api/tracking/vehicles", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestTrackingSingleRowObject(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/tracking/buildings", map[string]interface{}{
		"rows": map[string]interface{}{"name": "Wall", "queuedNext": true},
	})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = doJSON(t, app, "GET", "/api/tracking/buildings", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var flags handlers.FlagSets
	testutil.ParseJSON(t, resp, &flags)
	if len(flags.QueuedNext) != 1 || flags.QueuedNext[0] != "Wall" {
		t.Errorf("Unexpected flags %+v", flags)
	}
}

func TestProgressRoutes(t *testing.T) {
	app, store := setupApp(t)
	store.Seed(models.TableBuildingLevels,
		types.Row{"owner_id": owner, "key": "HQ", "value": "20"},
		types.Row{"owner_id": owner, "key": "Tech Center 1", "value": "18"},
	)

	resp := doJSON(t, app, "GET", "/api/progress/base", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var base services.BaseOverview
	testutil.ParseJSON(t, resp, &base)
	if base.HQ != 20 {
		t.Errorf("Expected HQ 20, got %d", base.HQ)
	}

	resp = doJSON(t, app, "GET", "/api/progress/research", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = doJSON(t, app, "PUT", "/api/teams/1/type", map[string]string{"type": "Air"})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = doJSON(t, app, "PUT", "/api/teams/9/type", map[string]string{"type": "Air"})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = doJSON(t, app, "GET", "/api/progress/teams", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var teams services.TeamOverview
	testutil.ParseJSON(t, resp, &teams)
	if len(teams.Teams) != 4 || teams.Teams[0].Type != "Air" {
		t.Errorf("Unexpected team overview %+v", teams)
	}
}

func TestSeriesRoutes(t *testing.T) {
	app, store := setupApp(t)
	store.Seed(models.TableBuildingLevels,
		types.Row{"owner_id": owner, "key": "Tech Center 1", "value": "18"},
		types.Row{"owner_id": owner, "key": "Tech Center 3", "value": "20"},
	)

	resp := doJSON(t, app, "GET", "/api/series/expand?names=Tech%20Center%201-3,Foo%201-x", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var expanded handlers.ExpandedNames
	testutil.ParseJSON(t, resp, &expanded)
	want := []string{"Tech Center 1", "Tech Center 2", "Tech Center 3", "Foo 1-x"}
	if len(expanded.Names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, expanded.Names)
	}
	for i := range want {
		if expanded.Names[i] != want[i] {
			t.Errorf("Name %d: expected %q, got %q", i, want[i], expanded.Names[i])
		}
	}

	resp = doJSON(t, app, "GET", "/api/series/expand?names=A%201-2,A%201-2&names=Wall", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	testutil.ParseJSON(t, resp, &expanded)
	want = []string{"A 1", "A 2", "A 1", "A 2", "Wall"}
	if len(expanded.Names) != len(want) {
		t.Fatalf("Expected repeats kept %v, got %v", want, expanded.Names)
	}
	for i := range want {
		if expanded.Names[i] != want[i] {
			t.Errorf("Name %d: expected %q, got %q", i, want[i], expanded.Names[i])
		}
	}

	resp = doJSON(t, app, "GET", "/api/series/expand?names=X%200-9223372036854775807", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	testutil.ParseJSON(t, resp, &expanded)
	if len(expanded.Names) != 1 || expanded.Names[0] != "X 0-9223372036854775807" {
		t.Errorf("Expected oversized range unchanged, got %d names", len(expanded.Names))
	}

	resp = doJSON(t, app, "GET", "/api/series/Tech", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var series handlers.SeriesLevels
	testutil.ParseJSON(t, resp, &series)
	if series.Base != "Tech Center" || series.Max != 20 || series.Sum != 38 || len(series.Levels) != 3 {
		t.Errorf("Unexpected series %+v", series)
	}

	resp = doJSON(t, app, "GET", "/api/series/Tech%20Center?suffixes=1,2", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	testutil.ParseJSON(t, resp, &series)
	if series.Sum != 18 {
		t.Errorf("Expected sum 18, got %d", series.Sum)
	}

	resp = doJSON(t, app, "GET", "/api/series/Nowhere", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)

	resp = doJSON(t, app, "GET", "/api/series/Farm?suffixes=one", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestHistoryRoute(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/settings/research_levels", map[string]interface{}{
		"rows": []map[string]string{{"key": "Economy/Oil Production", "value": "4"}},
	})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = doJSON(t, app, "GET", "/api/history?limit=5", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var entries []services.HistoryEntry
	testutil.ParseJSON(t, resp, &entries)
	if len(entries) != 1 || entries[0].Table != models.TableResearchLevels {
		t.Errorf("Unexpected history %+v", entries)
	}
}

func TestUnknownRoute(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, "GET", "/api/nothing", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (string, error) {
	if token == "good" {
		return owner, nil
	}
	return "", fiber.ErrUnauthorized
}

func TestRoutesRequireAuth(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/api/history", middleware.AuthUser(stubVerifier{}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/api/history", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	testutil.AssertStatus(t, resp, fiber.StatusForbidden)
	var body map[string]interface{}
	testutil.ParseJSON(t, resp, &body)
	if body["type"] != "data.authorization.user" {
		t.Errorf("Expected authorization error type, got %v", body["type"])
	}

	req = httptest.NewRequest("GET", "/api/history", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)
}
