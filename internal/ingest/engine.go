package ingest

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/angelmondragon/sportomic-backend/pkg/db"
	"github.com/angelmondragon/sportomic-backend/pkg/enums"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
	"github.com/angelmondragon/sportomic-backend/pkg/metrics"
	"github.com/angelmondragon/sportomic-backend/pkg/telemetry"
	"github.com/angelmondragon/sportomic-backend/pkg/types"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Result counts the outcome of one dataset batch. Inserted counts id-less
// records, Upserted counts keyed records whose id was new, Replaced counts
// keyed records that overwrote an existing row.
type Result struct {
	Inserted int `json:"inserted"`
	Upserted int `json:"upserted"`
	Replaced int `json:"replaced"`
	Failed   int `json:"failed"`
}

type outcome int

const (
	outcomeInserted outcome = iota
	outcomeUpserted
	outcomeReplaced
	outcomeFailed
)

// EngineConfig wires the optional collaborators of an Engine.
type EngineConfig struct {
	Concurrency int
	Logger      *logger.Logger
	Metrics     *metrics.IngestMetrics
	Tracer      trace.Tracer
}

// Engine applies normalized batches as unordered bulk writes.
type Engine struct {
	store       Store
	concurrency int
	logg        *logger.Logger
	metrics     *metrics.IngestMetrics
	tracer      trace.Tracer
	newID       func() types.ObjectID
}

func NewEngine(store Store, cfg EngineConfig) *Engine {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	logg := cfg.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Engine{
		store:       store,
		concurrency: concurrency,
		logg:        logg,
		metrics:     cfg.Metrics,
		tracer:      telemetry.TracerOrNoop(cfg.Tracer),
		newID:       types.NewObjectID,
	}
}

// Ingest writes records for dataset. A record that fails to write is counted
// and skipped; only a fatal store error aborts the batch.
func (e *Engine) Ingest(ctx context.Context, dataset enums.Dataset, records []Record) (result Result, err error) {
	if len(records) == 0 {
		return Result{}, nil
	}

	ctx, span := e.tracer.Start(ctx, "ingest.dataset", trace.WithAttributes(
		telemetry.Attr("dataset", dataset.String()),
	))
	defer func() { telemetry.EndSpan(span, err) }()
	ctx = e.logg.WithDataset(ctx, dataset.String())

	started := time.Now()
	defer func() { e.metrics.ObserveDataset(dataset.String(), time.Since(started)) }()

	existing, err := e.store.ExistingIDs(ctx, dataset, keyedIDs(records))
	if err != nil {
		if db.IsFatal(err) {
			return Result{}, err
		}
		e.logg.Error(ctx, "ingest.lookup_failed", err)
		result = Result{Failed: len(records)}
		e.record(dataset, result)
		return result, nil
	}

	var (
		mu      sync.Mutex
		claimed = make(map[string]struct{})
	)
	claim := func(id string) outcome {
		mu.Lock()
		defer mu.Unlock()
		if _, ok := existing[id]; ok {
			return outcomeReplaced
		}
		if _, ok := claimed[id]; ok {
			return outcomeReplaced
		}
		claimed[id] = struct{}{}
		return outcomeUpserted
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, rec := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			got, writeErr := e.write(gctx, dataset, rec, claim)
			if writeErr != nil {
				if db.IsFatal(writeErr) {
					return writeErr
				}
				e.logg.Error(e.logg.WithField(gctx, "index", i), "ingest.record_failed", writeErr)
				got = outcomeFailed
			}
			mu.Lock()
			result.add(got)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	e.record(dataset, result)
	e.logg.Info(e.logg.WithFields(ctx, map[string]any{
		"inserted": result.Inserted,
		"upserted": result.Upserted,
		"replaced": result.Replaced,
		"failed":   result.Failed,
	}), "ingest.dataset_complete")
	return result, nil
}

func (e *Engine) write(ctx context.Context, dataset enums.Dataset, rec Record, claim func(string) outcome) (outcome, error) {
	if id, ok := recordID(rec); ok {
		row, err := toRow(dataset, id, rec)
		if err != nil {
			return outcomeFailed, err
		}
		if err := e.store.Upsert(ctx, row); err != nil {
			return outcomeFailed, err
		}
		return claim(id), nil
	}

	oid := e.newID()
	withID := make(Record, len(rec)+1)
	for k, v := range rec {
		withID[k] = v
	}
	withID[idField] = oid

	row, err := toRow(dataset, oid.Hex(), withID)
	if err != nil {
		return outcomeFailed, err
	}
	if err := e.store.Insert(ctx, row); err != nil {
		return outcomeFailed, err
	}
	return outcomeInserted, nil
}

func (e *Engine) record(dataset enums.Dataset, r Result) {
	name := dataset.String()
	e.metrics.AddRecords(name, metrics.OutcomeInserted, r.Inserted)
	e.metrics.AddRecords(name, metrics.OutcomeUpserted, r.Upserted)
	e.metrics.AddRecords(name, metrics.OutcomeReplaced, r.Replaced)
	e.metrics.AddRecords(name, metrics.OutcomeFailed, r.Failed)
}

func (r *Result) add(o outcome) {
	switch o {
	case outcomeInserted:
		r.Inserted++
	case outcomeUpserted:
		r.Upserted++
	case outcomeReplaced:
		r.Replaced++
	default:
		r.Failed++
	}
}

func keyedIDs(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		id, ok := recordID(rec)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func (r Result) String() string {
	return "inserted=" + strconv.Itoa(r.Inserted) +
		" upserted=" + strconv.Itoa(r.Upserted) +
		" replaced=" + strconv.Itoa(r.Replaced) +
		" failed=" + strconv.Itoa(r.Failed)
}
