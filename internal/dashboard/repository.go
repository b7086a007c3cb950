package dashboard

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/angelmondragon/sportomic-backend/internal/repo"
	"github.com/angelmondragon/sportomic-backend/pkg/db"
	"github.com/angelmondragon/sportomic-backend/pkg/enums"
)

const (
	memberSplitSQL = `
SELECT
  COUNT(*) AS total,
  COALESCE(SUM(CASE WHEN m.status = ? THEN 1 ELSE 0 END), 0) AS active
FROM members m
`

	totalRevenueSQL = `
SELECT COALESCE(SUM(t.amount), 0) AS total
FROM transactions t
JOIN bookings b ON b.id = t.booking_id
WHERE %s
`

	revenuePerVenueSQL = `
SELECT
  b.venue_id AS venue_id,
  v.name AS venue_name,
  COALESCE(SUM(t.amount), 0) AS revenue
FROM transactions t
JOIN bookings b ON b.id = t.booking_id
LEFT JOIN venues v ON v.id = b.venue_id
WHERE t.status = ?
GROUP BY b.venue_id, v.name
ORDER BY revenue DESC, b.venue_id ASC
`

	monthlyRevenueSQL = `
SELECT
  %[1]s AS month,
  COALESCE(SUM(t.amount), 0) AS total
FROM transactions t
JOIN bookings b ON b.id = t.booking_id
WHERE %[2]s
GROUP BY %[1]s
`

	cancellationsSQL = `
SELECT b.status AS status, COUNT(*) AS count
FROM bookings b
WHERE %s
GROUP BY b.status
`

	bookingSummarySQL = `
SELECT
  COUNT(*) AS count,
  COALESCE(SUM(b.amount), 0) AS revenue,
  COALESCE(SUM(CASE WHEN b.coupon_code IS NOT NULL AND b.coupon_code <> '' THEN 1 ELSE 0 END), 0) AS coupons
FROM bookings b
WHERE %s
`

	trialCountsSQL = `
SELECT
  COALESCE(SUM(CASE WHEN m.is_trial_user = ? THEN 1 ELSE 0 END), 0) AS trials,
  COALESCE(SUM(CASE WHEN m.converted_from_trial = ? THEN 1 ELSE 0 END), 0) AS converted
FROM members m
`

	repeatCountsSQL = `
SELECT
  COUNT(*) AS members_with_bookings,
  COALESCE(SUM(CASE WHEN per_member.bookings > 1 THEN 1 ELSE 0 END), 0) AS repeat_members
FROM (
  SELECT b.member_id, COUNT(*) AS bookings
  FROM bookings b
  WHERE %s
  GROUP BY b.member_id
) per_member
`

	postgresMonthExpr = `to_char(t.transaction_date AT TIME ZONE 'UTC', 'YYYY-MM')`
	sqliteMonthExpr   = `strftime('%Y-%m', t.transaction_date)`
)

// Repository runs the dashboard sub-computations. Each call is an
// independent read.
type Repository interface {
	MemberSplit(ctx context.Context) (MemberSplit, error)
	TotalRevenue(ctx context.Context, f Filter) (float64, error)
	RevenuePerVenue(ctx context.Context) ([]VenueRevenue, error)
	MonthlyRevenue(ctx context.Context, f Filter) ([]MonthRevenue, error)
	Cancellations(ctx context.Context, f Filter) (CancellationCounts, error)
	BookingSummary(ctx context.Context, f Filter) (BookingSummary, error)
	TrialCounts(ctx context.Context) (TrialCounts, error)
	RepeatCounts(ctx context.Context, f Filter) (RepeatCounts, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds the SQL-backed Repository.
func NewRepository(conn db.Conn) Repository {
	return &repository{Base: repo.NewBase(conn)}
}

// conditions collects AND-ed predicates and their bind arguments.
type conditions struct {
	exprs []string
	args  []any
}

func (c *conditions) add(expr string, args ...any) {
	c.exprs = append(c.exprs, expr)
	c.args = append(c.args, args...)
}

func (c conditions) sql() string {
	if len(c.exprs) == 0 {
		return "1 = 1"
	}
	return strings.Join(c.exprs, " AND ")
}

// bookingConditions applies the venue and sport filters to the booking
// aliased b, and the month filter to dateColumn.
func bookingConditions(f Filter, dateColumn string) conditions {
	var c conditions
	if f.VenueID != "" {
		c.add("b.venue_id = ?", f.VenueID)
	}
	if f.SportID != "" {
		c.add("b.sport_id = ?", f.SportID)
	}
	if start, end, ok := f.MonthRange(); ok {
		c.add(dateColumn+" >= ? AND "+dateColumn+" < ?", start, end)
	}
	return c
}

// revenueConditions selects successful transactions joined to a booking.
func revenueConditions(f Filter) conditions {
	var c conditions
	c.add("t.status = ?", string(enums.TransactionStatusSuccess))
	filtered := bookingConditions(f, "t.transaction_date")
	c.exprs = append(c.exprs, filtered.exprs...)
	c.args = append(c.args, filtered.args...)
	return c
}

type memberSplitRow struct {
	Total  int64
	Active int64
}

type revenueRow struct {
	Total float64
}

type statusCountRow struct {
	Status string
	Count  int64
}

func (r *repository) MemberSplit(ctx context.Context) (MemberSplit, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return MemberSplit{}, err
	}
	var row memberSplitRow
	if err := conn.Raw(memberSplitSQL, string(enums.MemberStatusActive)).Scan(&row).Error; err != nil {
		return MemberSplit{}, err
	}
	return MemberSplit{Active: row.Active, Inactive: row.Total - row.Active}, nil
}

func (r *repository) TotalRevenue(ctx context.Context, f Filter) (float64, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return 0, err
	}
	where := revenueConditions(f)
	var row revenueRow
	if err := conn.Raw(fmt.Sprintf(totalRevenueSQL, where.sql()), where.args...).Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.Total, nil
}

func (r *repository) RevenuePerVenue(ctx context.Context) ([]VenueRevenue, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]VenueRevenue, 0)
	if err := conn.Raw(revenuePerVenueSQL, string(enums.TransactionStatusSuccess)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) MonthlyRevenue(ctx context.Context, f Filter) ([]MonthRevenue, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	monthExpr := postgresMonthExpr
	if repo.IsSQLite(conn) {
		monthExpr = sqliteMonthExpr
	}
	where := revenueConditions(f.withoutMonth())

	rows := make([]MonthRevenue, 0)
	if err := conn.Raw(fmt.Sprintf(monthlyRevenueSQL, monthExpr, where.sql()), where.args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	slices.SortFunc(rows, compareMonths)
	return rows, nil
}

// compareMonths orders the undated bucket first, then months ascending.
func compareMonths(a, b MonthRevenue) int {
	switch {
	case a.Month == nil && b.Month == nil:
		return 0
	case a.Month == nil:
		return -1
	case b.Month == nil:
		return 1
	}
	return strings.Compare(*a.Month, *b.Month)
}

func (r *repository) Cancellations(ctx context.Context, f Filter) (CancellationCounts, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return CancellationCounts{}, err
	}
	where := bookingConditions(f.withoutMonth(), "b.booking_date")
	where.add("b.status IN ?", []string{
		string(enums.BookingStatusCancelled),
		string(enums.BookingStatusRefunded),
	})

	var rows []statusCountRow
	if err := conn.Raw(fmt.Sprintf(cancellationsSQL, where.sql()), where.args...).Scan(&rows).Error; err != nil {
		return CancellationCounts{}, err
	}

	var counts CancellationCounts
	for _, row := range rows {
		switch enums.BookingStatus(row.Status) {
		case enums.BookingStatusCancelled:
			counts.Cancelled = row.Count
		case enums.BookingStatusRefunded:
			counts.Refunded = row.Count
		}
	}
	return counts, nil
}

func (r *repository) BookingSummary(ctx context.Context, f Filter) (BookingSummary, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return BookingSummary{}, err
	}
	where := bookingConditions(f, "b.booking_date")
	var row BookingSummary
	if err := conn.Raw(fmt.Sprintf(bookingSummarySQL, where.sql()), where.args...).Scan(&row).Error; err != nil {
		return BookingSummary{}, err
	}
	return row, nil
}

func (r *repository) TrialCounts(ctx context.Context) (TrialCounts, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return TrialCounts{}, err
	}
	var row TrialCounts
	if err := conn.Raw(trialCountsSQL, true, true).Scan(&row).Error; err != nil {
		return TrialCounts{}, err
	}
	return row, nil
}

func (r *repository) RepeatCounts(ctx context.Context, f Filter) (RepeatCounts, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return RepeatCounts{}, err
	}
	where := bookingConditions(f, "b.booking_date")
	var row RepeatCounts
	if err := conn.Raw(fmt.Sprintf(repeatCountsSQL, where.sql()), where.args...).Scan(&row).Error; err != nil {
		return RepeatCounts{}, err
	}
	return row, nil
}
