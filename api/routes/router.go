package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/sportomic-backend/api/controllers"
	"github.com/angelmondragon/sportomic-backend/api/middleware"
	"github.com/angelmondragon/sportomic-backend/api/responses"
	"github.com/angelmondragon/sportomic-backend/internal/dashboard"
	"github.com/angelmondragon/sportomic-backend/internal/ingest"
	"github.com/angelmondragon/sportomic-backend/internal/records"
	"github.com/angelmondragon/sportomic-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/sportomic-backend/pkg/errors"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
	"github.com/angelmondragon/sportomic-backend/pkg/metrics"
	"github.com/angelmondragon/sportomic-backend/pkg/redis"
)

// Services groups the domain services served over HTTP.
type Services struct {
	Dashboard dashboard.Service
	Records   records.Service
	Ingest    ingest.Service
}

// Observability carries the optional metrics wiring. A nil Gatherer disables
// the /metrics endpoint.
type Observability struct {
	HTTP     *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	svcs Services,
	obs Observability,
) http.Handler {
	// A nil *redis.Client must reach the middleware as a nil interface.
	var (
		idempotencyStore redis.IdempotencyStore
		cachePinger      controllers.Pinger
	)
	if redisClient != nil {
		idempotencyStore = redisClient
		cachePinger = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(obs.HTTP),
		middleware.CORS(cfg.HTTP.Origins()),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not Found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, "Method Not Allowed"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cachePinger))
	})

	if obs.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)

		r.Get("/dashboard", controllers.Dashboard(svcs.Dashboard, logg))
		r.Get("/bookings", controllers.Bookings(svcs.Records, logg))
		r.Get("/members", controllers.Members(svcs.Records, logg))
		r.Get("/transactions", controllers.Transactions(svcs.Records, logg))
		r.Get("/venues", controllers.Venues(svcs.Records, logg))
		r.Get("/sports", controllers.Sports(svcs.Records, logg))

		r.With(
			middleware.BodyLimit(cfg.HTTP.MaxImportBytes),
			middleware.Idempotency(idempotencyStore, cfg.Redis.ImportTTL, logg),
		).Post("/import", controllers.Import(svcs.Ingest, logg))
	})

	return r
}
