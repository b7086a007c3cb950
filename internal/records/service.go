package records

import (
	"context"
	"fmt"

	"github.com/angelmondragon/sportomic-backend/pkg/pagination"
)

// Service exposes the list endpoints. Limits are clamped, never rejected.
type Service interface {
	Bookings(ctx context.Context, limit int) ([]BookingItem, error)
	Members(ctx context.Context, limit int) ([]MemberItem, error)
	Transactions(ctx context.Context, limit int) ([]TransactionItem, error)
	Venues(ctx context.Context) ([]VenueItem, error)
	Sports(ctx context.Context) ([]SportItem, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("records repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Bookings(ctx context.Context, limit int) ([]BookingItem, error) {
	return s.repo.ListBookings(ctx, pagination.NormalizeLimit(limit))
}

func (s *service) Members(ctx context.Context, limit int) ([]MemberItem, error) {
	return s.repo.ListMembers(ctx, pagination.NormalizeLimit(limit))
}

func (s *service) Transactions(ctx context.Context, limit int) ([]TransactionItem, error) {
	return s.repo.ListTransactions(ctx, pagination.NormalizeLimit(limit))
}

func (s *service) Venues(ctx context.Context) ([]VenueItem, error) {
	return s.repo.ListVenues(ctx)
}

func (s *service) Sports(ctx context.Context) ([]SportItem, error) {
	return s.repo.ListSports(ctx)
}
