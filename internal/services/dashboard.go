package services

import (
	"context"
	"strconv"

	"github.com/localnerve/basetrack/internal/catalog"
	"github.com/localnerve/basetrack/internal/progress"
	"github.com/localnerve/basetrack/internal/types"
)

// HeroSummary is one row of a team's top list
type HeroSummary struct {
	Name  string  `json:"name"`
	Level int     `json:"level"`
	Power float64 `json:"power"`
}

// TeamSummary describes one team slot. Top always holds the catalog's
// teams.top entries, padded with blank rows.
type TeamSummary struct {
	Team  int           `json:"team"`
	Type  string        `json:"type"`
	Power float64       `json:"power"`
	Top   []HeroSummary `json:"top"`
}

// TeamOverview is the roster dashboard
type TeamOverview struct {
	TotalPower float64       `json:"totalPower"`
	Teams      []TeamSummary `json:"teams"`
}

// BuildingProgress is a building's level against the HQ
type BuildingProgress struct {
	Key     string `json:"key"`
	Level   int    `json:"level"`
	Percent int    `json:"percent"`
}

// SeriesProgress aggregates one building series against the HQ
type SeriesProgress struct {
	Base    string `json:"base"`
	Max     int    `json:"max"`
	Sum     int    `json:"sum"`
	Percent int    `json:"percent"`
}

// BaseOverview is the building dashboard
type BaseOverview struct {
	HQ        int                `json:"hq"`
	Buildings []BuildingProgress `json:"buildings"`
	Series    []SeriesProgress   `json:"series"`
	Overall   float64            `json:"overall"`
}

// CategoryProgress is one research category's completion
type CategoryProgress struct {
	Category string              `json:"category"`
	Percent  float64             `json:"percent"`
	Items    []progress.LevelCap `json:"items"`
}

// ResearchOverview is the research dashboard
type ResearchOverview struct {
	Categories []CategoryProgress `json:"categories"`
	Overall    float64            `json:"overall"`
}

// Dashboard derives the overview pages from stored settings and the roster
type Dashboard struct {
	catalog   *catalog.Catalog
	roster    *RosterRepository
	buildings *SettingsStore
	teams     *SettingsStore
	research  *SettingsStore
}

// NewDashboard wires the dashboard's sources
func NewDashboard(c *catalog.Catalog, roster *RosterRepository, buildings, teams, research *SettingsStore) *Dashboard {
	return &Dashboard{
		catalog:   c,
		roster:    roster,
		buildings: buildings,
		teams:     teams,
		research:  research,
	}
}

// TeamOverview sums roster power overall and per team, listing each team's strongest heroes
func (d *Dashboard) TeamOverview(ctx context.Context, ownerID string) (*TeamOverview, error) {
	heroes, err := d.roster.ListForOwner(ctx, ownerID, OrderPower)
	if err != nil {
		return nil, err
	}

	keys := make([]string, d.catalog.Teams.Count)
	for i := range keys {
		keys[i] = catalog.TeamTypeKey(i + 1)
	}
	teamTypes, err := d.teams.BulkRead(ctx, ownerID, keys)
	if err != nil {
		return nil, err
	}

	overview := &TeamOverview{Teams: make([]TeamSummary, 0, len(keys))}
	for _, h := range heroes {
		overview.TotalPower += h.Power
	}
	for i, key := range keys {
		team := TeamSummary{Team: i + 1, Type: teamTypes.Text(key), Top: []HeroSummary{}}
		label := strconv.Itoa(team.Team)
		for _, h := range heroes {
			if h.Team != label {
				continue
			}
			team.Power += h.Power
			if len(team.Top) < d.catalog.Teams.Top {
				team.Top = append(team.Top, HeroSummary{Name: h.Name, Level: h.Level, Power: h.Power})
			}
		}
		for len(team.Top) < d.catalog.Teams.Top {
			team.Top = append(team.Top, HeroSummary{})
		}
		overview.Teams = append(overview.Teams, team)
	}
	return overview, nil
}

// SetTeamType stores a team's type after checking both against the catalog
func (d *Dashboard) SetTeamType(ctx context.Context, ownerID string, team int, teamType string) error {
	if team < 1 || team > d.catalog.Teams.Count {
		return types.NewValidationError("set team type", strconv.Itoa(team), "team out of range")
	}
	if !d.catalog.ValidTeamType(teamType) {
		return types.NewValidationError("set team type", teamType, "unknown team type")
	}
	return d.teams.Set(ctx, ownerID, catalog.TeamTypeKey(team), teamType)
}

// BaseOverview rates every building and series against the HQ level
func (d *Dashboard) BaseOverview(ctx context.Context, ownerID string) (*BaseOverview, error) {
	keys := d.catalog.BuildingKeys()
	snap, err := d.buildings.BulkRead(ctx, ownerID, keys)
	if err != nil {
		return nil, err
	}
	level := func(key string) int {
		v, _ := snap.Lookup(key)
		return progress.ParseLevel(v.Value)
	}

	hq := level("HQ")
	overview := &BaseOverview{HQ: hq}
	percents := make([]float64, 0, len(keys))
	for _, key := range keys {
		if key == "HQ" {
			continue
		}
		b := BuildingProgress{Key: key, Level: level(key)}
		b.Percent = progress.PercentOfBaseline(float64(b.Level), float64(hq), progress.SingleCeiling)
		overview.Buildings = append(overview.Buildings, b)
		percents = append(percents, float64(b.Percent))
	}

	for _, s := range d.catalog.Series {
		levels := make([]int, len(s.Suffixes))
		for i, key := range progress.SeriesKeys(s.Base, s.Suffixes) {
			levels[i] = level(key)
		}
		sp := SeriesProgress{Base: s.Base, Max: progress.Max(levels), Sum: progress.Sum(levels)}
		if len(levels) > 0 {
			mean := float64(sp.Sum) / float64(len(levels))
			sp.Percent = progress.PercentOfBaseline(mean, float64(hq), progress.GroupedCeiling)
		}
		overview.Series = append(overview.Series, sp)
	}

	overview.Overall = progress.MeanPercent(percents)
	return overview, nil
}

// ResearchOverview rolls research levels up per category and across categories
func (d *Dashboard) ResearchOverview(ctx context.Context, ownerID string) (*ResearchOverview, error) {
	snap, err := d.research.BulkRead(ctx, ownerID, d.catalog.ResearchKeys())
	if err != nil {
		return nil, err
	}

	overview := &ResearchOverview{}
	percents := make([]float64, 0, len(d.catalog.Research))
	for _, cat := range d.catalog.Research {
		cp := CategoryProgress{Category: cat.Category}
		for _, item := range cat.Items {
			v, _ := snap.Lookup(catalog.ResearchKey(cat.Category, item.Name))
			cp.Items = append(cp.Items, progress.LevelCap{
				Name:  item.Name,
				Level: progress.ParseLevel(v.Value),
				Cap:   item.Max,
			})
		}
		cp.Percent = progress.GroupCompletion(cp.Items)
		overview.Categories = append(overview.Categories, cp)
		percents = append(percents, cp.Percent)
	}
	overview.Overall = progress.MeanPercent(percents)
	return overview, nil
}
