package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	cases := []struct {
		part, whole int64
		want        float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 7, 0},
		{1, 2, 50},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 8, 12.5},
		{4, 4, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, percentage(tc.part, tc.whole), "%d/%d", tc.part, tc.whole)
	}
}

func TestTrialConversionRate(t *testing.T) {
	assert.Equal(t, 25.0, trialConversionRate(TrialCounts{Trials: 3, Converted: 1}))
	assert.Equal(t, 0.0, trialConversionRate(TrialCounts{}))
}

func TestRepeatBookingRate(t *testing.T) {
	assert.Equal(t, 50.0, repeatBookingRate(RepeatCounts{MembersWithBookings: 2, RepeatMembers: 1}))
	assert.Equal(t, 0.0, repeatBookingRate(RepeatCounts{}))
}
