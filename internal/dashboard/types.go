package dashboard

// FilterEcho reports the filters that were actually applied. A dropped or
// absent filter is null.
type FilterEcho struct {
	VenueID *string `json:"venue_id"`
	SportID *string `json:"sport_id"`
	Month   *string `json:"month"`
}

type MemberSplit struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// VenueRevenue is one row of the per-venue series. VenueID is null for
// bookings without a venue and VenueName is null when the venue is missing.
type VenueRevenue struct {
	VenueID   *string `json:"venue_id"`
	VenueName *string `json:"venue_name"`
	Revenue   float64 `json:"revenue"`
}

// MonthRevenue is one point of the monthly series. Month names the UTC
// calendar month as YYYY-MM, the same form the month filter accepts, and is
// null for transactions without a usable date.
type MonthRevenue struct {
	Month *string `json:"month"`
	Total float64 `json:"total"`
}

type Revenue struct {
	Total    float64        `json:"total"`
	PerVenue []VenueRevenue `json:"perVenue"`
	Monthly  []MonthRevenue `json:"monthly"`
}

type Bookings struct {
	Count                  int64   `json:"count"`
	Revenue                float64 `json:"revenue"`
	CouponRedemption       int64   `json:"couponRedemption"`
	Cancelled              int64   `json:"cancelled"`
	Refunded               int64   `json:"refunded"`
	TotalCancelledRefunded int64   `json:"totalCancelledRefunded"`
	RepeatBookingRate      float64 `json:"repeatBookingRate"`
}

type Trials struct {
	Trials              int64   `json:"trials"`
	Converted           int64   `json:"converted"`
	TrialConversionRate float64 `json:"trialConversionRate"`
}

// Snapshot is the merged dashboard for one filter.
type Snapshot struct {
	Filters  FilterEcho  `json:"filters"`
	Members  MemberSplit `json:"members"`
	Revenue  Revenue     `json:"revenue"`
	Bookings Bookings    `json:"bookings"`
	Trials   Trials      `json:"trials"`
	// SlotsUtilization is not computed yet and is always zero.
	SlotsUtilization float64 `json:"slotsUtilization"`
}

// BookingSummary aggregates the bookings matching every filter.
type BookingSummary struct {
	Count   int64
	Revenue float64
	Coupons int64
}

type CancellationCounts struct {
	Cancelled int64
	Refunded  int64
}

type TrialCounts struct {
	Trials    int64
	Converted int64
}

type RepeatCounts struct {
	MembersWithBookings int64
	RepeatMembers       int64
}
