package dashboard

import (
	"testing"
	"time"

	"github.com/angelmondragon/sportomic-backend/pkg/db"
	"github.com/angelmondragon/sportomic-backend/pkg/db/dbtest"
	"github.com/angelmondragon/sportomic-backend/pkg/db/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	venueArena   = "aaaaaaaaaaaaaaaaaaaaaaaa"
	venueCourt   = "bbbbbbbbbbbbbbbbbbbbbbbb"
	venueMissing = "dddddddddddddddddddddddd"
	sportPadel   = "cccccccccccccccccccccccc"
)

func ptr[T any](v T) *T { return &v }

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 10, 0, 0, 0, time.UTC)
	return &t
}

// seedLedger loads a small but complete business:
//
//	M1 books four times, M2 and M3 once each.
//	Successful transactions total 1000, one is undated and one has no booking.
func seedLedger(t *testing.T) *gorm.DB {
	t.Helper()
	conn := dbtest.Open(t)

	rows := []any{
		&models.Venue{ID: venueArena, Name: ptr("Arena")},
		&models.Venue{ID: venueCourt, Name: ptr("Court")},

		&models.Member{ID: "M1", Status: ptr("active"), IsTrialUser: ptr(true)},
		&models.Member{ID: "M2", Status: ptr("active"), IsTrialUser: ptr(true)},
		&models.Member{ID: "M3", Status: ptr("inactive"), IsTrialUser: ptr(true)},
		&models.Member{ID: "M4", ConvertedFromTrial: ptr(true)},

		&models.Booking{ID: "B1", MemberID: ptr("M1"), VenueID: ptr(venueArena), SportID: ptr(sportPadel), BookingDate: day(2024, 3, 5), Amount: ptr(500.0), Status: ptr("confirmed"), CouponCode: ptr("SAVE10")},
		&models.Booking{ID: "B2", MemberID: ptr("M1"), VenueID: ptr(venueArena), SportID: ptr(sportPadel), BookingDate: day(2024, 3, 20), Amount: ptr(300.0), Status: ptr("cancelled"), CouponCode: ptr("")},
		&models.Booking{ID: "B3", MemberID: ptr("M1"), VenueID: ptr(venueCourt), BookingDate: day(2024, 4, 2), Amount: ptr(200.0), Status: ptr("refunded")},
		&models.Booking{ID: "B4", MemberID: ptr("M1"), VenueID: ptr(venueArena), SportID: ptr(sportPadel), BookingDate: day(2024, 2, 10), Amount: ptr(100.0), Status: ptr("confirmed")},
		&models.Booking{ID: "B5", MemberID: ptr("M2"), VenueID: ptr(venueCourt), BookingDate: day(2024, 3, 7), Amount: ptr(150.0), Status: ptr("confirmed")},
		&models.Booking{ID: "B6", MemberID: ptr("M3"), VenueID: ptr(venueMissing), BookingDate: day(2024, 5, 1), Amount: ptr(50.0), Status: ptr("confirmed")},

		&models.Transaction{ID: "T1", BookingID: ptr("B1"), Status: ptr("success"), Amount: ptr(500.0), TransactionDate: day(2024, 3, 5)},
		&models.Transaction{ID: "T2", BookingID: ptr("B5"), Status: ptr("success"), Amount: ptr(150.0), TransactionDate: day(2024, 3, 8)},
		&models.Transaction{ID: "T3", BookingID: ptr("B4"), Status: ptr("success"), Amount: ptr(100.0), TransactionDate: day(2024, 2, 11)},
		&models.Transaction{ID: "T4", BookingID: ptr("B2"), Status: ptr("failed"), Amount: ptr(300.0), TransactionDate: day(2024, 3, 20)},
		&models.Transaction{ID: "T5", BookingID: ptr("missing-booking"), Status: ptr("success"), Amount: ptr(999.0), TransactionDate: day(2024, 3, 1)},
		&models.Transaction{ID: "T6", BookingID: ptr("B3"), Status: ptr("success"), Amount: ptr(200.0)},
		&models.Transaction{ID: "T7", BookingID: ptr("B6"), Status: ptr("success"), Amount: ptr(50.0), TransactionDate: day(2024, 5, 1)},
	}
	for _, row := range rows {
		require.NoError(t, conn.Create(row).Error)
	}
	return conn
}

func ledgerRepository(t *testing.T) Repository {
	t.Helper()
	return NewRepository(db.Static(seedLedger(t)))
}
