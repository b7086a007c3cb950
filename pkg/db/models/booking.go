package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking references are loose: member, venue and sport ids may point at
// nothing.
type Booking struct {
	ID          string     `gorm:"primaryKey"`
	MemberID    *string    `gorm:"index"`
	VenueID     *string    `gorm:"index"`
	SportID     *string    `gorm:"index"`
	BookingDate *time.Time `gorm:"index"`
	Amount      *float64
	Status      *string `gorm:"index"`
	CouponCode  *string
	Document    datatypes.JSON
	UpdatedAt   time.Time
}
