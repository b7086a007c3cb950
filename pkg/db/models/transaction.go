package models

import (
	"time"

	"gorm.io/datatypes"
)

type Transaction struct {
	ID              string  `gorm:"primaryKey"`
	BookingID       *string `gorm:"index"`
	Type            *string
	Status          *string    `gorm:"index:idx_transactions_status_date,priority:1"`
	Amount          *float64
	TransactionDate *time.Time `gorm:"index:idx_transactions_status_date,priority:2"`
	Document        datatypes.JSON
	UpdatedAt       time.Time
}
