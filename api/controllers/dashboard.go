package controllers

import (
	"net/http"

	"github.com/angelmondragon/sportomic-backend/api/responses"
	"github.com/angelmondragon/sportomic-backend/api/validators"
	"github.com/angelmondragon/sportomic-backend/internal/dashboard"
	pkgerrors "github.com/angelmondragon/sportomic-backend/pkg/errors"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
)

// Dashboard computes a snapshot for the venue/sport/month filter in the query.
// Malformed filter values are dropped rather than rejected.
func Dashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		snapshot, err := svc.Snapshot(r.Context(), validators.DashboardFilter(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Storage(err, "Failed to load dashboard"))
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
