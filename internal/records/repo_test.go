package records

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/sportomic-backend/pkg/db"
	"github.com/angelmondragon/sportomic-backend/pkg/db/dbtest"
	"github.com/angelmondragon/sportomic-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func at(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 9, 30, 0, 0, time.UTC)
	return &t
}

func seededService(t *testing.T) Service {
	t.Helper()
	conn := dbtest.Open(t)
	rows := []any{
		&models.Venue{ID: "V2", Name: ptr("Zen Courts"), Location: ptr("South")},
		&models.Venue{ID: "V1", Name: ptr("Arena"), Location: ptr("North")},
		&models.Venue{ID: "V3"},

		&models.Member{ID: "M1", Name: ptr("Asha"), Status: ptr("active"), IsTrialUser: ptr(true), JoinDate: at(2024, 1, 10)},
		&models.Member{ID: "M2", Name: ptr("Ravi"), Status: ptr("inactive"), ConvertedFromTrial: ptr(false), JoinDate: at(2024, 2, 1)},
		&models.Member{ID: "M3", Name: ptr("Undated")},

		&models.Booking{ID: "B1", MemberID: ptr("M1"), VenueID: ptr("V1"), SportID: ptr("S1"), BookingDate: at(2024, 3, 1), Amount: ptr(500.0), Status: ptr("confirmed"), CouponCode: ptr("SAVE10")},
		&models.Booking{ID: "B2", MemberID: ptr("ghost"), VenueID: ptr("V9"), SportID: ptr("S2"), BookingDate: at(2024, 3, 9), Amount: ptr(250.0), Status: ptr("cancelled")},
		&models.Booking{ID: "B3", MemberID: ptr("M2"), VenueID: ptr("V2"), SportID: ptr("S1")},
		&models.Booking{ID: "B4", MemberID: ptr("M2"), VenueID: ptr("V2"), BookingDate: at(2024, 2, 2)},

		&models.Transaction{ID: "T1", BookingID: ptr("B1"), Type: ptr("booking"), Amount: ptr(500.0), Status: ptr("success"), TransactionDate: at(2024, 3, 1)},
		&models.Transaction{ID: "T2", BookingID: ptr("nope"), Type: ptr("refund"), Amount: ptr(20.0), Status: ptr("success"), TransactionDate: at(2024, 3, 5)},
		&models.Transaction{ID: "T3", BookingID: ptr("B4"), Type: ptr("booking"), Status: ptr("pending")},
	}
	for _, row := range rows {
		require.NoError(t, conn.Create(row).Error)
	}
	svc, err := NewService(NewRepository(db.Static(conn)))
	require.NoError(t, err)
	return svc
}

func TestBookingsNewestFirstWithNames(t *testing.T) {
	svc := seededService(t)

	items, err := svc.Bookings(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, items, 4)

	ids := []string{items[0].ID, items[1].ID, items[2].ID, items[3].ID}
	assert.Equal(t, []string{"B2", "B1", "B4", "B3"}, ids)

	assert.Nil(t, items[0].MemberName)
	assert.Nil(t, items[0].VenueName)
	assert.Equal(t, "Asha", *items[1].MemberName)
	assert.Equal(t, "Arena", *items[1].VenueName)
	assert.Equal(t, "SAVE10", *items[1].CouponCode)
	assert.True(t, items[1].BookingDate.Equal(*at(2024, 3, 1)))
	assert.Nil(t, items[3].BookingDate)
}

func TestBookingsLimitIsClamped(t *testing.T) {
	svc := seededService(t)

	items, err := svc.Bookings(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = svc.Bookings(context.Background(), 1000)
	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestMembersByJoinDate(t *testing.T) {
	svc := seededService(t)

	items, err := svc.Members(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "M2", items[0].ID)
	assert.Equal(t, "M1", items[1].ID)
	require.NotNil(t, items[0].ConvertedFromTrial)
	assert.False(t, *items[0].ConvertedFromTrial)
	require.NotNil(t, items[1].IsTrialUser)
	assert.True(t, *items[1].IsTrialUser)
	assert.Nil(t, items[1].ConvertedFromTrial)
}

func TestTransactionsResolveVenueThroughBooking(t *testing.T) {
	svc := seededService(t)

	items, err := svc.Transactions(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "T2", items[0].ID)
	assert.Nil(t, items[0].VenueName)
	assert.Equal(t, "T1", items[1].ID)
	assert.Equal(t, "Arena", *items[1].VenueName)
	assert.Equal(t, "T3", items[2].ID)
	assert.Equal(t, "Zen Courts", *items[2].VenueName)
	assert.Nil(t, items[2].Amount)
}

func TestVenuesByName(t *testing.T) {
	svc := seededService(t)

	items, err := svc.Venues(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, VenueItem{ID: "V1", Name: ptr("Arena"), Location: ptr("North")}, items[0])
	assert.Equal(t, "V2", items[1].ID)
	assert.Equal(t, VenueItem{ID: "V3"}, items[2])
}

func TestSportsByBookingCount(t *testing.T) {
	svc := seededService(t)

	items, err := svc.Sports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []SportItem{
		{SportID: "S1", Count: 2},
		{SportID: "S2", Count: 1},
	}, items)
}

func TestEmptyListsAreNotNil(t *testing.T) {
	svc, err := NewService(NewRepository(db.Static(dbtest.Open(t))))
	require.NoError(t, err)

	venues, err := svc.Venues(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, venues)
	assert.Empty(t, venues)
}

func TestNewServiceRequiresRepository(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}
