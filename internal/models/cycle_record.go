package models

import (
	"time"

	"gorm.io/datatypes"
)

type CycleRecord struct {
	ID        uint                        `gorm:"primaryKey" json:"-"`
	PublicID  string                      `gorm:"not null;uniqueIndex" json:"id"`
	UserID    uint                        `gorm:"not null;index:idx_cycle_records_user_start" json:"-"`
	StartDate string                      `gorm:"type:text;not null;index:idx_cycle_records_user_start" json:"startDate"`
	Symptoms  datatypes.JSONSlice[string] `json:"symptoms,omitempty"`
	Notes     string                      `json:"notes,omitempty"`
	CreatedAt time.Time                   `json:"createdAt"`
}
