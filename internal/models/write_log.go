package models

import "time"

// WriteLog records one settings write batch. Rows are append-only.
type WriteLog struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID     string    `gorm:"size:64;not null;index" json:"-"`
	TargetTable string    `gorm:"size:64;not null" json:"table"`
	Changes     JSON      `json:"changes"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

// TableName overrides the table name for WriteLog
func (WriteLog) TableName() string {
	return TableWriteLog
}
