// catalog.go
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

package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/localnerve/basetrack/data"
	"github.com/localnerve/basetrack/internal/progress"
	"gopkg.in/yaml.v3"
)

// Series is a named group of buildings sharing a base name
type Series struct {
	Base     string `yaml:"base" json:"base"`
	Suffixes []int  `yaml:"suffixes" json:"suffixes"`
}

// ResearchItem is one research node and its maximum level
type ResearchItem struct {
	Name string `yaml:"name" json:"name"`
	Max  int    `yaml:"max" json:"max"`
}

// ResearchCategory groups research items
type ResearchCategory struct {
	Category string         `yaml:"category" json:"category"`
	Items    []ResearchItem `yaml:"items" json:"items"`
}

// Hero is a catalog default for a roster member
type Hero struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
	Role string `yaml:"role" json:"role"`
}

// RosterFields names the fixed roster stat and star fields
type RosterFields struct {
	Stats []string `yaml:"stats" json:"stats"`
	Stars []string `yaml:"stars" json:"stars"`
}

// Teams describes the team slots on the dashboard
type Teams struct {
	Count int      `yaml:"count" json:"count"`
	Top   int      `yaml:"top" json:"top"`
	Types []string `yaml:"types" json:"types"`
}

// Catalog is the static game data: trackable buildings, series, aliases,
// the research tree, hero defaults and team layout
type Catalog struct {
	Buildings []string           `yaml:"buildings" json:"buildings"`
	Series    []Series           `yaml:"series" json:"series"`
	Aliases   map[string]string  `yaml:"aliases" json:"aliases"`
	Research  []ResearchCategory `yaml:"research" json:"research"`
	Heroes    []Hero             `yaml:"heroes" json:"heroes"`
	Roster    RosterFields       `yaml:"roster" json:"roster"`
	Teams     Teams              `yaml:"teams" json:"teams"`
}

// Default loads the embedded catalog
func Default() (*Catalog, error) {
	return Parse(data.CatalogYAML)
}

// Parse decodes and validates a catalog document
func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Buildings) == 0 {
		return errors.New("no buildings")
	}
	if c.Teams.Count < 1 {
		return errors.New("teams.count must be positive")
	}
	if c.Teams.Top < 1 {
		return errors.New("teams.top must be positive")
	}
	for _, s := range c.Series {
		if strings.TrimSpace(s.Base) == "" {
			return errors.New("series with empty base")
		}
	}
	for _, r := range c.Research {
		if strings.Contains(r.Category, "/") {
			return fmt.Errorf("research category %q contains '/'", r.Category)
		}
	}
	return nil
}

// BuildingKeys returns the expanded building setting keys in catalog order
func (c *Catalog) BuildingKeys() []string {
	return progress.ExpandRange(c.Buildings...)
}

// AliasTable returns the alias resolver for building names
func (c *Catalog) AliasTable() progress.Aliases {
	return progress.NewAliases(c.Aliases)
}

// SeriesFor finds a series by its canonical base name
func (c *Catalog) SeriesFor(base string) (Series, bool) {
	for _, s := range c.Series {
		if strings.EqualFold(s.Base, base) {
			return s, true
		}
	}
	return Series{}, false
}

// ResearchKey builds the research_levels key for an item
func ResearchKey(category, item string) string {
	return category + "/" + item
}

// ResearchKeys returns every research key in catalog order
func (c *Catalog) ResearchKeys() []string {
	var keys []string
	for _, r := range c.Research {
		for _, item := range r.Items {
			keys = append(keys, ResearchKey(r.Category, item.Name))
		}
	}
	return keys
}

// HasResearchCategory reports whether category names a catalog category
func (c *Catalog) HasResearchCategory(category string) bool {
	return slices.ContainsFunc(c.Research, func(r ResearchCategory) bool {
		return r.Category == category
	})
}

// HeroDefaults finds a hero's catalog defaults by case-insensitive name
func (c *Catalog) HeroDefaults(name string) (Hero, bool) {
	name = strings.TrimSpace(name)
	for _, h := range c.Heroes {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return Hero{}, false
}

// ValidTeamType reports whether t is one of the configured team types
func (c *Catalog) ValidTeamType(t string) bool {
	return slices.Contains(c.Teams.Types, t)
}

// TeamTypeKey is the team_settings key holding a team's type
func TeamTypeKey(team int) string {
	return fmt.Sprintf("team_type_%d", team)
}
