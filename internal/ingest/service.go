package ingest

import (
	"context"
	"fmt"

	"github.com/angelmondragon/sportomic-backend/pkg/enums"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
)

// Summary maps each dataset to its write counts. Every dataset is present.
type Summary map[enums.Dataset]Result

// Service normalizes and ingests import batches.
type Service interface {
	Import(ctx context.Context, batch Batch) (Summary, error)
}

type service struct {
	engine *Engine
	logg   *logger.Logger
}

func NewService(engine *Engine, logg *logger.Logger) (Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("ingest engine required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{engine: engine, logg: logg}, nil
}

// Import processes datasets one after another in a fixed order. A fatal store
// error stops the call and no summary is returned.
func (s *service) Import(ctx context.Context, batch Batch) (Summary, error) {
	summary := make(Summary, len(enums.Datasets))
	for _, dataset := range enums.Datasets {
		raw := batch.Records[dataset]
		records := make([]Record, 0, len(raw))
		for _, item := range raw {
			records = append(records, Normalize(dataset, item))
		}

		result, err := s.engine.Ingest(ctx, dataset, records)
		if err != nil {
			return nil, fmt.Errorf("ingesting %s: %w", dataset, err)
		}
		if invalid := batch.Invalid[dataset]; invalid > 0 {
			result.Failed += invalid
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"dataset": dataset.String(),
				"invalid": invalid,
			}), "ingest.non_object_records")
		}
		summary[dataset] = result
	}
	return summary, nil
}
