package dashboard

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// percentage returns part/whole as a percentage rounded to two places, or 0
// when whole is not positive.
func percentage(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Div(decimal.NewFromInt(whole)).
		Mul(hundred).
		Round(2).
		InexactFloat64()
}

func trialConversionRate(c TrialCounts) float64 {
	return percentage(c.Converted, c.Trials+c.Converted)
}

func repeatBookingRate(c RepeatCounts) float64 {
	return percentage(c.RepeatMembers, c.MembersWithBookings)
}
