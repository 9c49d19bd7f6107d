package models

import "time"

// Hero is one roster member owned by a user
type Hero struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string    `gorm:"size:64;not null;index:,unique,composite:owner_name" json:"-"`
	Name        string    `gorm:"size:255;not null;index:,unique,composite:owner_name" json:"name"`
	Level       int       `gorm:"not null;default:0" json:"level"`
	WeaponLevel int       `gorm:"not null;default:0" json:"weaponLevel"`
	ArmorLevel  int       `gorm:"not null;default:0" json:"armorLevel"`
	ChipLevel   int       `gorm:"not null;default:0" json:"chipLevel"`
	RadarLevel  int       `gorm:"not null;default:0" json:"radarLevel"`
	Power       float64   `gorm:"not null;default:0" json:"power"`
	Stars       string    `gorm:"size:16" json:"stars"`
	WeaponStars string    `gorm:"size:16" json:"weaponStars"`
	Type        string    `gorm:"size:32" json:"type"`
	Role        string    `gorm:"size:32" json:"role"`
	Team        string    `gorm:"size:8" json:"team"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CatalogHero is the read-only default type and role for a hero name
type CatalogHero struct {
	Name string `gorm:"primaryKey;size:255" json:"name"`
	Type string `gorm:"size:32" json:"type"`
	Role string `gorm:"size:32" json:"role"`
}

// TableName overrides the table name for Hero
func (Hero) TableName() string {
	return TableHeroes
}

// TableName overrides the table name for CatalogHero
func (CatalogHero) TableName() string {
	return TableHeroCatalog
}
