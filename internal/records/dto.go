package records

import "time"

// BookingItem is a booking with its member and venue names resolved. Names
// are null when the referenced row is missing.
type BookingItem struct {
	ID          string     `json:"_id"`
	BookingDate *time.Time `json:"booking_date"`
	Amount      *float64   `json:"amount"`
	Status      *string    `json:"status"`
	CouponCode  *string    `json:"coupon_code"`
	MemberName  *string    `json:"member_name"`
	VenueName   *string    `json:"venue_name"`
}

type MemberItem struct {
	ID                 string     `json:"_id"`
	Name               *string    `json:"name"`
	Status             *string    `json:"status"`
	IsTrialUser        *bool      `json:"is_trial_user"`
	ConvertedFromTrial *bool      `json:"converted_from_trial"`
	JoinDate           *time.Time `json:"join_date"`
}

// TransactionItem carries the venue name reached through the booking.
type TransactionItem struct {
	ID              string     `json:"_id"`
	Type            *string    `json:"type"`
	Amount          *float64   `json:"amount"`
	Status          *string    `json:"status"`
	TransactionDate *time.Time `json:"transaction_date"`
	VenueName       *string    `json:"venue_name"`
}

type VenueItem struct {
	ID       string  `json:"_id"`
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

// SportItem is a distinct sport id observed on bookings.
type SportItem struct {
	SportID string `json:"sport_id"`
	Count   int64  `json:"count"`
}
