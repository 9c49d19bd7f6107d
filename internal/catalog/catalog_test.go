package catalog

import (
	"reflect"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Failed to load embedded catalog: %v", err)
	}

	keys := c.BuildingKeys()
	if keys[0] != "HQ" {
		t.Errorf("Expected first building key HQ, got %q", keys[0])
	}
	want := []string{"Tech Center 1", "Tech Center 2", "Tech Center 3"}
	if got := keys[2:5]; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if c.Teams.Count != 4 || c.Teams.Top != 5 {
		t.Errorf("Unexpected team layout: %+v", c.Teams)
	}
	if !c.ValidTeamType("Missile") || c.ValidTeamType("Boat") {
		t.Error("Team type validation mismatch")
	}
}

func TestHeroDefaults(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Failed to load embedded catalog: %v", err)
	}

	aria, ok := c.HeroDefaults(" aria ")
	if !ok {
		t.Fatal("Expected Aria in catalog")
	}
	if aria.Type != "Support" || aria.Role != "Defense" {
		t.Errorf("Unexpected Aria defaults: %+v", aria)
	}
	if _, ok := c.HeroDefaults("Nobody"); ok {
		t.Error("Expected no defaults for unknown hero")
	}
}

func TestAliasesAndSeries(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Failed to load embedded catalog: %v", err)
	}

	aliases := c.AliasTable()
	if got := aliases.Resolve("tech centre"); got != "Tech Center" {
		t.Errorf("Expected Tech Center, got %q", got)
	}
	s, ok := c.SeriesFor("hospital")
	if !ok || !reflect.DeepEqual(s.Suffixes, []int{1, 2, 3, 4}) {
		t.Errorf("Unexpected Hospital series: %+v %v", s, ok)
	}
}

func TestResearchKeys(t *testing.T) {
	c, err := Parse([]byte(`
buildings: [HQ]
research:
  - category: Hero
    items:
      - { name: Hero HP, max: 10 }
      - { name: Hero Attack, max: 5 }
teams: { count: 1, top: 1, types: [Tank] }
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"Hero/Hero HP", "Hero/Hero Attack"}
	if got := c.ResearchKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if !c.HasResearchCategory("Hero") || c.HasResearchCategory("Units") {
		t.Error("Research category lookup mismatch")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"no buildings": `teams: { count: 1, top: 1 }`,
		"no teams":     `buildings: [HQ]`,
		"bad yaml":     `buildings: [HQ`,
		"slash":        "buildings: [HQ]\nteams: { count: 1, top: 1 }\nresearch: [{category: a/b}]",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
