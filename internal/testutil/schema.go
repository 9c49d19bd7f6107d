package testutil

import "github.com/localnerve/basetrack/internal/models"

// Column sets of the migrated tables
var (
	SettingColumns  = []string{"id", "owner_id", "key", "value", "updated_at"}
	HeroColumns     = []string{"id", "owner_id", "name", "level", "weapon_level", "armor_level", "chip_level", "radar_level", "power", "stars", "weapon_stars", "type", "role", "team", "updated_at"}
	CatalogColumns  = []string{"name", "type", "role"}
	BuildingFlags   = []string{"id", "owner_id", "name", "in_progress", "queued_next", "updated_at"}
	ResearchFlags   = []string{"id", "owner_id", "category", "name", "in_progress", "queued_next", "updated_at"}
	WriteLogColumns = []string{"id", "owner_id", "target_table", "changes", "created_at"}
)

// NewSchemaStore returns a MemStore with every table declared as migrated
func NewSchemaStore() *MemStore {
	m := NewMemStore()
	for _, table := range models.SettingsTables {
		m.CreateTable(table, SettingColumns, "owner_id", "key")
	}
	m.CreateTable(models.TableHeroes, HeroColumns, "owner_id", "name")
	m.CreateTable(models.TableHeroCatalog, CatalogColumns, "name")
	m.CreateTable(models.TableBuildingTracking, BuildingFlags, "owner_id", "name")
	m.CreateTable(models.TableResearchTracking, ResearchFlags, "owner_id", "category", "name")
	m.CreateTable(models.TableWriteLog, WriteLogColumns)
	return m
}

// CreateLegacySettings replaces a settings table with the pre-ownership layout
func (m *MemStore) CreateLegacySettings(table string) {
	m.CreateTable(table, []string{"id", "key", "value", "updated_at"}, "key")
}
