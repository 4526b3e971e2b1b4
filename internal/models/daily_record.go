package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	FlowNone     = "none"
	FlowSpotting = "spotting"
	FlowLight    = "light"
	FlowMedium   = "medium"
	FlowHeavy    = "heavy"
)

const (
	MoodGreat     = "great"
	MoodGood      = "good"
	MoodOkay      = "okay"
	MoodLow       = "low"
	MoodIrritable = "irritable"
)

const (
	EnergyHigh   = "high"
	EnergyMedium = "medium"
	EnergyLow    = "low"
)

// DailyRecord is one tracked calendar day. Empty strings and a nil Sleep mean
// the field was not recorded.
type DailyRecord struct {
	ID        uint                        `gorm:"primaryKey" json:"-"`
	UserID    uint                        `gorm:"not null;uniqueIndex:uidx_daily_records_user_date" json:"-"`
	Date      string                      `gorm:"type:text;not null;uniqueIndex:uidx_daily_records_user_date" json:"date"`
	Flow      string                      `gorm:"not null;default:''" json:"flow,omitempty"`
	Mood      string                      `gorm:"not null;default:''" json:"mood,omitempty"`
	Energy    string                      `gorm:"not null;default:''" json:"energy,omitempty"`
	Sleep     *float64                    `json:"sleep,omitempty"`
	Symptoms  datatypes.JSONSlice[string] `json:"symptoms,omitempty"`
	Notes     string                      `json:"notes,omitempty"`
	IsPeriod  bool                        `gorm:"not null;default:false" json:"isPeriod"`
	CreatedAt time.Time                   `json:"-"`
	UpdatedAt time.Time                   `json:"-"`
}

func IsValidFlow(value string) bool {
	switch value {
	case "", FlowNone, FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}

func IsValidMood(value string) bool {
	switch value {
	case "", MoodGreat, MoodGood, MoodOkay, MoodLow, MoodIrritable:
		return true
	default:
		return false
	}
}

func IsValidEnergy(value string) bool {
	switch value {
	case "", EnergyHigh, EnergyMedium, EnergyLow:
		return true
	default:
		return false
	}
}

// FlowIsPeriod reports whether a recorded flow marks a period day.
func FlowIsPeriod(flow string) bool {
	return flow != "" && flow != FlowNone
}
