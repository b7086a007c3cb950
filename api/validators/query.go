package validators

import (
	"net/http"

	"github.com/angelmondragon/sportomic-backend/internal/dashboard"
	"github.com/angelmondragon/sportomic-backend/pkg/pagination"
)

// QueryLimit reads the limit parameter. Out of range values are clamped and
// anything non-numeric falls back to the default page size.
func QueryLimit(r *http.Request) int {
	return pagination.ParseLimit(r.URL.Query().Get("limit"))
}

// DashboardFilter reads venue_id, sport_id and month. Malformed values are
// dropped rather than rejected.
func DashboardFilter(r *http.Request) dashboard.Filter {
	q := r.URL.Query()
	return dashboard.ParseFilter(q.Get("venue_id"), q.Get("sport_id"), q.Get("month"))
}
