package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/sportomic-backend/api/responses"
	"github.com/angelmondragon/sportomic-backend/api/validators"
	"github.com/angelmondragon/sportomic-backend/internal/records"
	pkgerrors "github.com/angelmondragon/sportomic-backend/pkg/errors"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
)

// Bookings lists the most recent bookings with member and venue names.
func Bookings(svc records.Service, logg *logger.Logger) http.HandlerFunc {
	return limitedList(logg, "bookings", svc, func(ctx context.Context, limit int) ([]records.BookingItem, error) {
		return svc.Bookings(ctx, limit)
	})
}

// Members lists members by join date, newest first.
func Members(svc records.Service, logg *logger.Logger) http.HandlerFunc {
	return limitedList(logg, "members", svc, func(ctx context.Context, limit int) ([]records.MemberItem, error) {
		return svc.Members(ctx, limit)
	})
}

// Transactions lists the most recent transactions with the booked venue name.
func Transactions(svc records.Service, logg *logger.Logger) http.HandlerFunc {
	return limitedList(logg, "transactions", svc, func(ctx context.Context, limit int) ([]records.TransactionItem, error) {
		return svc.Transactions(ctx, limit)
	})
}

func Venues(svc records.Service, logg *logger.Logger) http.HandlerFunc {
	return list(logg, "venues", svc, func(ctx context.Context) ([]records.VenueItem, error) {
		return svc.Venues(ctx)
	})
}

func Sports(svc records.Service, logg *logger.Logger) http.HandlerFunc {
	return list(logg, "sports", svc, func(ctx context.Context) ([]records.SportItem, error) {
		return svc.Sports(ctx)
	})
}

func limitedList[T any](logg *logger.Logger, name string, svc records.Service, load func(context.Context, int) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}
		items, err := load(r.Context(), validators.QueryLimit(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Storage(err, "Failed to load "+name))
			return
		}
		responses.WriteItems(w, items)
	}
}

func list[T any](logg *logger.Logger, name string, svc records.Service, load func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}
		items, err := load(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Storage(err, "Failed to load "+name))
			return
		}
		responses.WriteItems(w, items)
	}
}
