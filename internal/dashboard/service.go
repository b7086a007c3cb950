package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/sportomic-backend/pkg/logger"
	"github.com/angelmondragon/sportomic-backend/pkg/metrics"
	"github.com/angelmondragon/sportomic-backend/pkg/telemetry"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 4

// Service computes dashboard snapshots.
type Service interface {
	// Snapshot recomputes every metric for f from current storage state.
	// Any failing sub-computation fails the whole snapshot.
	Snapshot(ctx context.Context, f Filter) (*Snapshot, error)
}

// ServiceConfig wires the optional collaborators of the dashboard service.
type ServiceConfig struct {
	Parallelism int
	Logger      *logger.Logger
	Metrics     *metrics.DashboardMetrics
	Tracer      trace.Tracer
}

type service struct {
	repo        Repository
	parallelism int
	logg        *logger.Logger
	metrics     *metrics.DashboardMetrics
	tracer      trace.Tracer
}

func NewService(repo Repository, cfg ServiceConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	logg := cfg.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:        repo,
		parallelism: parallelism,
		logg:        logg,
		metrics:     cfg.Metrics,
		tracer:      telemetry.TracerOrNoop(cfg.Tracer),
	}, nil
}

func (s *service) Snapshot(ctx context.Context, f Filter) (snap *Snapshot, err error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.snapshot")
	defer func() {
		telemetry.EndSpan(span, err)
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		s.metrics.IncSnapshot(outcome)
	}()

	var (
		out           = Snapshot{Filters: f.Echo()}
		cancellations CancellationCounts
		summary       BookingSummary
		trials        TrialCounts
		repeat        RepeatCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	s.run(gctx, g, "members", func(ctx context.Context) (err error) {
		out.Members, err = s.repo.MemberSplit(ctx)
		return err
	})
	s.run(gctx, g, "total_revenue", func(ctx context.Context) (err error) {
		out.Revenue.Total, err = s.repo.TotalRevenue(ctx, f)
		return err
	})
	s.run(gctx, g, "revenue_per_venue", func(ctx context.Context) (err error) {
		out.Revenue.PerVenue, err = s.repo.RevenuePerVenue(ctx)
		return err
	})
	s.run(gctx, g, "monthly_revenue", func(ctx context.Context) (err error) {
		out.Revenue.Monthly, err = s.repo.MonthlyRevenue(ctx, f)
		return err
	})
	s.run(gctx, g, "cancellations", func(ctx context.Context) (err error) {
		cancellations, err = s.repo.Cancellations(ctx, f)
		return err
	})
	s.run(gctx, g, "booking_summary", func(ctx context.Context) (err error) {
		summary, err = s.repo.BookingSummary(ctx, f)
		return err
	})
	s.run(gctx, g, "trials", func(ctx context.Context) (err error) {
		trials, err = s.repo.TrialCounts(ctx)
		return err
	})
	s.run(gctx, g, "repeat_bookings", func(ctx context.Context) (err error) {
		repeat, err = s.repo.RepeatCounts(ctx, f)
		return err
	})

	if err = g.Wait(); err != nil {
		return nil, err
	}

	out.Bookings = Bookings{
		Count:                  summary.Count,
		Revenue:                summary.Revenue,
		CouponRedemption:       summary.Coupons,
		Cancelled:              cancellations.Cancelled,
		Refunded:               cancellations.Refunded,
		TotalCancelledRefunded: cancellations.Cancelled + cancellations.Refunded,
		RepeatBookingRate:      repeatBookingRate(repeat),
	}
	out.Trials = Trials{
		Trials:              trials.Trials,
		Converted:           trials.Converted,
		TrialConversionRate: trialConversionRate(trials),
	}
	return &out, nil
}

// run schedules one sub-computation. Each closure writes a distinct field, so
// no locking is needed.
func (s *service) run(ctx context.Context, g *errgroup.Group, name string, query func(context.Context) error) {
	g.Go(func() (err error) {
		ctx, span := s.tracer.Start(ctx, "dashboard."+name)
		started := time.Now()
		defer func() {
			telemetry.EndSpan(span, err)
			s.metrics.ObserveQuery(name, time.Since(started))
		}()

		if err = query(ctx); err != nil {
			// A sibling failure cancels ctx; only the first failure counts.
			if ctx.Err() == nil {
				s.metrics.IncQueryFailure(name)
				s.logg.Error(s.logg.WithField(ctx, "query", name), "dashboard.query_failed", err)
			}
			return fmt.Errorf("dashboard %s: %w", name, err)
		}
		return nil
	})
}
