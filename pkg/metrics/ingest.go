package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeInserted = "inserted"
	OutcomeUpserted = "upserted"
	OutcomeReplaced = "replaced"
	OutcomeFailed   = "failed"
)

// IngestMetrics counts ingested records per dataset and outcome.
type IngestMetrics struct {
	records  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_records",
		Help: "Records written by the ingestion engine, by dataset and outcome.",
	}, []string{"dataset", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ingest_dataset_duration_seconds",
		Help:    "Duration of a dataset batch write in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"dataset"})
	reg.MustRegister(records, duration)
	return &IngestMetrics{records: records, duration: duration}
}

func (i *IngestMetrics) AddRecords(dataset, outcome string, n int) {
	if i == nil || i.records == nil || n <= 0 {
		return
	}
	i.records.WithLabelValues(normalizeLabel(dataset), normalizeLabel(outcome)).Add(float64(n))
}

func (i *IngestMetrics) ObserveDataset(dataset string, duration time.Duration) {
	if i == nil || i.duration == nil {
		return
	}
	i.duration.WithLabelValues(normalizeLabel(dataset)).Observe(duration.Seconds())
}
