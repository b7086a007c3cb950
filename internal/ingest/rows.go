package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/angelmondragon/sportomic-backend/pkg/db/models"
	"github.com/angelmondragon/sportomic-backend/pkg/enums"
	"github.com/angelmondragon/sportomic-backend/pkg/types"
	"gorm.io/datatypes"
)

// recordID returns the storage key of a normalized record, if it has one.
func recordID(rec Record) (string, bool) {
	return keyString(rec[idField])
}

// toRow projects a normalized record onto the typed model for dataset. The
// whole record is also kept in the document column.
func toRow(dataset enums.Dataset, id string, rec Record) (any, error) {
	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	document := datatypes.JSON(doc)

	switch dataset {
	case enums.DatasetVenues:
		return &models.Venue{
			ID:       id,
			Name:     optString(rec["name"]),
			Location: optString(rec["location"]),
			Document: document,
		}, nil
	case enums.DatasetMembers:
		return &models.Member{
			ID:                 id,
			Name:               optString(rec["name"]),
			Status:             optString(rec["status"]),
			IsTrialUser:        optBool(rec["is_trial_user"]),
			ConvertedFromTrial: optBool(rec["converted_from_trial"]),
			JoinDate:           optTime(rec["join_date"]),
			Document:           document,
		}, nil
	case enums.DatasetBookings:
		return &models.Booking{
			ID:          id,
			MemberID:    optKey(rec["member_id"]),
			VenueID:     optKey(rec["venue_id"]),
			SportID:     optKey(rec["sport_id"]),
			BookingDate: optTime(rec["booking_date"]),
			Amount:      optFloat(rec["amount"]),
			Status:      optString(rec["status"]),
			CouponCode:  optString(rec["coupon_code"]),
			Document:    document,
		}, nil
	case enums.DatasetTransactions:
		return &models.Transaction{
			ID:              id,
			BookingID:       optKey(rec["booking_id"]),
			Type:            optString(rec["type"]),
			Status:          optString(rec["status"]),
			Amount:          optFloat(rec["amount"]),
			TransactionDate: optTime(rec["transaction_date"]),
			Document:        document,
		}, nil
	}
	return nil, fmt.Errorf("unknown dataset %q", dataset)
}

// keyString renders id-like values as comparable keys. Canonical ids become
// lowercase hex, opaque strings and numbers are kept as text.
func keyString(value any) (string, bool) {
	switch v := value.(type) {
	case types.ObjectID:
		return v.Hex(), true
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	}
	return "", false
}

func optKey(value any) *string {
	if s, ok := keyString(value); ok {
		return &s
	}
	return nil
}

func optString(value any) *string {
	if s, ok := value.(string); ok {
		return &s
	}
	return nil
}

func optBool(value any) *bool {
	if b, ok := value.(bool); ok {
		return &b
	}
	return nil
}

func optTime(value any) *time.Time {
	if t, ok := value.(time.Time); ok {
		utc := t.UTC()
		return &utc
	}
	return nil
}

func optFloat(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	}
	return nil
}
