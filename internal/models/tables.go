package models

// Table names used by the services
const (
	TableBuildingLevels   = "building_levels"
	TableTeamSettings     = "team_settings"
	TableResearchLevels   = "research_levels"
	TableHeroes           = "heroes"
	TableHeroCatalog      = "hero_catalog"
	TableBuildingTracking = "building_tracking"
	TableResearchTracking = "research_tracking"
	TableWriteLog         = "write_log"
)

// SettingsTables are the key-value tables exposed over the API
var SettingsTables = []string{
	TableBuildingLevels,
	TableTeamSettings,
	TableResearchLevels,
}

// All returns a pointer to every model, in migration order
func All() []interface{} {
	return []interface{}{
		&BuildingLevel{},
		&TeamSetting{},
		&ResearchLevel{},
		&Hero{},
		&CatalogHero{},
		&BuildingFlag{},
		&ResearchFlag{},
		&WriteLog{},
	}
}
