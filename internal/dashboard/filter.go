package dashboard

import (
	"strings"
	"time"

	"github.com/angelmondragon/sportomic-backend/pkg/types"
	"github.com/go-playground/validator/v10"
)

const monthLayout = "2006-01"

var validate = validator.New()

// Filter narrows the filtered sub-computations. Empty fields are absent.
// Ids are lowercase 24-hex strings and Month is YYYY-MM.
type Filter struct {
	VenueID string
	SportID string
	Month   string
}

// ParseFilter applies the permissive filter policy: a value with the wrong
// shape is dropped as though it was never given.
func ParseFilter(venueID, sportID, month string) Filter {
	return Filter{
		VenueID: canonicalFilterID(venueID),
		SportID: canonicalFilterID(sportID),
		Month:   canonicalMonth(month),
	}
}

func canonicalFilterID(raw string) string {
	raw = strings.TrimSpace(raw)
	if !types.IsObjectIDHex(raw) {
		return ""
	}
	return strings.ToLower(raw)
}

func canonicalMonth(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if err := validate.Var(raw, "datetime="+monthLayout); err != nil {
		return ""
	}
	return raw
}

// MonthRange returns the half-open UTC interval covered by Month.
func (f Filter) MonthRange() (start, end time.Time, ok bool) {
	if f.Month == "" {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.ParseInLocation(monthLayout, f.Month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, start.AddDate(0, 1, 0), true
}

// Echo renders the applied filters for the snapshot.
func (f Filter) Echo() FilterEcho {
	return FilterEcho{
		VenueID: optional(f.VenueID),
		SportID: optional(f.SportID),
		Month:   optional(f.Month),
	}
}

// withoutMonth is the filter used by the sub-computations that span all time.
func (f Filter) withoutMonth() Filter {
	f.Month = ""
	return f
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
