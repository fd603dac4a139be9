package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the NEO
// load pipeline.
type Metrics struct {
	ObjectsExtracted    prometheus.Counter
	ObjectsSkipped      prometheus.Counter
	ApproachesExtracted prometheus.Counter
	ApproachesSkipped   prometheus.Counter

	ApproachesLinked   prometheus.Counter
	ApproachesUnlinked prometheus.Counter

	RecordsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	PublishBatchSize prometheus.Histogram

	PipelineRunning prometheus.Gauge
	LoadDuration    prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ObjectsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neo_etl",
			Name:      "objects_extracted_total",
			Help:      "Total near-Earth objects extracted from the SBDB CSV feed.",
		}),
		ObjectsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neo_etl",
			Name:      "objects_skipped_total",
			Help:      "Total malformed object records skipped during extraction.",
		}),
		ApproachesExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neo_etl",
			Name:      "approaches_extracted_total",
			Help:      "Total close approaches extracted from the cad JSON feed.",
		}),
		ApproachesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neo_etl",
			Name:      "approaches_skipped_total",
			Help:      "Total malformed approach records skipped during extraction.",
		}),
		ApproachesLinked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neo_etl",
			Name:      "approaches_linked_total",
			Help:      "Total approaches linked to a loaded object by designation.",
		}),
		ApproachesUnlinked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neo_etl",
			Name:      "approaches_unlinked_total",
			Help:      "Total approaches whose designation matched no loaded object.",
		}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neo_etl",
			Name:      "records_published_total",
			Help:      "Total combined records written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neo_etl",
			Name:      "publish_errors_total",
			Help:      "Total failed publish batches.",
		}),
		PublishBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "neo_etl",
			Name:      "publish_batch_size",
			Help:      "Number of combined records per publish batch.",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "neo_etl",
			Name:      "pipeline_running",
			Help:      "1 while the load pipeline is active, 0 when finished.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "neo_etl",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete extract-link-publish run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	prometheus.MustRegister(
		m.ObjectsExtracted,
		m.ObjectsSkipped,
		m.ApproachesExtracted,
		m.ApproachesSkipped,
		m.ApproachesLinked,
		m.ApproachesUnlinked,
		m.RecordsPublished,
		m.PublishErrors,
		m.PublishBatchSize,
		m.PipelineRunning,
		m.LoadDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ObjectsExtracted:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neo_etl", Name: "objects_extracted_total"}),
		ObjectsSkipped:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neo_etl", Name: "objects_skipped_total"}),
		ApproachesExtracted: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neo_etl", Name: "approaches_extracted_total"}),
		ApproachesSkipped:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neo_etl", Name: "approaches_skipped_total"}),
		ApproachesLinked:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neo_etl", Name: "approaches_linked_total"}),
		ApproachesUnlinked:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neo_etl", Name: "approaches_unlinked_total"}),
		RecordsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neo_etl", Name: "records_published_total"}),
		PublishErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neo_etl", Name: "publish_errors_total"}),
		PublishBatchSize:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "neo_etl", Name: "publish_batch_size"}),
		PipelineRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "neo_etl", Name: "pipeline_running"}),
		LoadDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "neo_etl", Name: "load_duration_seconds"}),
	}
}
