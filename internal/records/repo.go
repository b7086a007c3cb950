package records

import (
	"context"

	"github.com/angelmondragon/sportomic-backend/internal/repo"
	"github.com/angelmondragon/sportomic-backend/pkg/db"
)

// Repository serves the passthrough list reads. Undated rows sort last.
type Repository interface {
	ListBookings(ctx context.Context, limit int) ([]BookingItem, error)
	ListMembers(ctx context.Context, limit int) ([]MemberItem, error)
	ListTransactions(ctx context.Context, limit int) ([]TransactionItem, error)
	ListVenues(ctx context.Context) ([]VenueItem, error)
	ListSports(ctx context.Context) ([]SportItem, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a records repository bound to the pool provider.
func NewRepository(conn db.Conn) Repository {
	return &repository{Base: repo.NewBase(conn)}
}

func (r *repository) ListBookings(ctx context.Context, limit int) ([]BookingItem, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]BookingItem, 0)
	err = conn.Table("bookings AS b").
		Select("b.id AS id, b.booking_date, b.amount, b.status, b.coupon_code, m.name AS member_name, v.name AS venue_name").
		Joins("LEFT JOIN members m ON m.id = b.member_id").
		Joins("LEFT JOIN venues v ON v.id = b.venue_id").
		Order("CASE WHEN b.booking_date IS NULL THEN 1 ELSE 0 END, b.booking_date DESC, b.id ASC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListMembers(ctx context.Context, limit int) ([]MemberItem, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]MemberItem, 0)
	err = conn.Table("members").
		Select("id, name, status, is_trial_user, converted_from_trial, join_date").
		Order("CASE WHEN join_date IS NULL THEN 1 ELSE 0 END, join_date DESC, id ASC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListTransactions(ctx context.Context, limit int) ([]TransactionItem, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]TransactionItem, 0)
	err = conn.Table("transactions AS t").
		Select("t.id AS id, t.type, t.amount, t.status, t.transaction_date, v.name AS venue_name").
		Joins("LEFT JOIN bookings b ON b.id = t.booking_id").
		Joins("LEFT JOIN venues v ON v.id = b.venue_id").
		Order("CASE WHEN t.transaction_date IS NULL THEN 1 ELSE 0 END, t.transaction_date DESC, t.id ASC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListVenues(ctx context.Context) ([]VenueItem, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]VenueItem, 0)
	err = conn.Table("venues").
		Select("id, name, location").
		Order("CASE WHEN name IS NULL THEN 1 ELSE 0 END, name ASC, id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListSports(ctx context.Context) ([]SportItem, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]SportItem, 0)
	err = conn.Table("bookings").
		Select("sport_id, COUNT(*) AS count").
		Where("sport_id IS NOT NULL").
		Group("sport_id").
		Order("count DESC, sport_id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
