package validators

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/angelmondragon/sportomic-backend/internal/ingest"
	pkgerrors "github.com/angelmondragon/sportomic-backend/pkg/errors"
)

// DecodeImportBody reads and decodes an import batch. Every failure is an
// input format error carrying the public message the client sees.
func DecodeImportBody(r *http.Request) (ingest.Batch, error) {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ingest.Batch{}, pkgerrors.Wrap(pkgerrors.CodeInputFormat, err, "Request body too large").
				WithDetails(map[string]any{"limit_bytes": tooLarge.Limit})
		}
		return ingest.Batch{}, pkgerrors.Wrap(pkgerrors.CodeInputFormat, err, "Invalid JSON").WithDetails(err.Error())
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return ingest.Batch{}, pkgerrors.New(pkgerrors.CodeInputFormat, "Empty body")
	}

	batch, err := ingest.DecodeBatch(body)
	if err != nil {
		return ingest.Batch{}, pkgerrors.Wrap(pkgerrors.CodeInputFormat, err, "Invalid JSON").WithDetails(err.Error())
	}
	return batch, nil
}
