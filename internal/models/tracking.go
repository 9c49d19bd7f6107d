package models

import "time"

// BuildingFlag marks a building as in progress or queued next
type BuildingFlag struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	OwnerID    string    `gorm:"size:64;not null;index:,unique,composite:owner_name" json:"-"`
	Name       string    `gorm:"size:255;not null;index:,unique,composite:owner_name" json:"name"`
	InProgress bool      `gorm:"not null" json:"inProgress"`
	QueuedNext bool      `gorm:"not null" json:"queuedNext"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ResearchFlag marks a research item within a category
type ResearchFlag struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	OwnerID    string    `gorm:"size:64;not null;index:,unique,composite:owner_category_name" json:"-"`
	Category   string    `gorm:"size:255;not null;index:,unique,composite:owner_category_name" json:"category"`
	Name       string    `gorm:"size:255;not null;index:,unique,composite:owner_category_name" json:"name"`
	InProgress bool      `gorm:"not null" json:"inProgress"`
	QueuedNext bool      `gorm:"not null" json:"queuedNext"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName overrides the table name for BuildingFlag
func (BuildingFlag) TableName() string {
	return TableBuildingTracking
}

// TableName overrides the table name for ResearchFlag
func (ResearchFlag) TableName() string {
	return TableResearchTracking
}
