package controllers

import (
	"net/http"

	"github.com/angelmondragon/sportomic-backend/api/responses"
	"github.com/angelmondragon/sportomic-backend/api/validators"
	"github.com/angelmondragon/sportomic-backend/internal/ingest"
	pkgerrors "github.com/angelmondragon/sportomic-backend/pkg/errors"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
)

type importResponse struct {
	OK     bool           `json:"ok"`
	Result ingest.Summary `json:"result"`
}

// Import ingests the venues, members, bookings and transactions in the body.
func Import(svc ingest.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ingest service unavailable"))
			return
		}

		batch, err := validators.DecodeImportBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithField(ctx, "records", batch.Len())
		}

		summary, err := svc.Import(ctx, batch)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Storage(err, "Import failed"))
			return
		}
		responses.WriteSuccess(w, importResponse{OK: true, Result: summary})
	}
}
