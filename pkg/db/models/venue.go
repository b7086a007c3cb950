package models

import (
	"time"

	"gorm.io/datatypes"
)

// Venue is a bookable location. Document keeps the canonical record as ingested.
type Venue struct {
	ID        string `gorm:"primaryKey"`
	Name      *string
	Location  *string
	Document  datatypes.JSON
	UpdatedAt time.Time
}
