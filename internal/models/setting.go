package models

import "time"

// Setting is one owner-scoped key-value row
type Setting struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	OwnerID   string    `gorm:"size:64;not null;index:,unique,composite:owner_key" json:"-"`
	Key       string    `gorm:"size:255;not null;index:,unique,composite:owner_key" json:"key"`
	Value     *string   `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BuildingLevel stores a building level per building key
type BuildingLevel struct {
	Setting
}

// TeamSetting stores team configuration
type TeamSetting struct {
	Setting
}

// ResearchLevel stores a research level per "<Category>/<Item>" key
type ResearchLevel struct {
	Setting
}

// TableName overrides the table name for BuildingLevel
func (BuildingLevel) TableName() string {
	return TableBuildingLevels
}

// TableName overrides the table name for TeamSetting
func (TeamSetting) TableName() string {
	return TableTeamSettings
}

// TableName overrides the table name for ResearchLevel
func (ResearchLevel) TableName() string {
	return TableResearchLevels
}
