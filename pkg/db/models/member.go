package models

import (
	"time"

	"gorm.io/datatypes"
)

// Member flags are nil unless the ingested value was a real boolean.
type Member struct {
	ID                 string `gorm:"primaryKey"`
	Name               *string
	Status             *string
	IsTrialUser        *bool
	ConvertedFromTrial *bool
	JoinDate           *time.Time `gorm:"index"`
	Document           datatypes.JSON
	UpdatedAt          time.Time
}
