package entity

import (
	"gorm.io/gorm"
)

// GlobalConfig is a single-row table holding the emergency ordering settings.
// Order creation reads it explicitly when snapshotting the surcharge; it is
// never cached in process.
type GlobalConfig struct {
	gorm.Model
	EmergencyExtraCost *float64 `json:"extraCost"`
	EmergencyHours     *string  `json:"hours"` // "HH:MM-HH:MM"
	EmergencyDays      *string  `json:"days"`
}
