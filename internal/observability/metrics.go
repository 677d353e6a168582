package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects pipeline metrics. A nil *Metrics is a no-op, so
// components can run without a registry in tests.
type Metrics struct {
	documentsProcessed *prometheus.CounterVec
	eventsExtracted    prometheus.Counter
	extractorCalls     *prometheus.CounterVec
	buildDuration      prometheus.Histogram
}

// NewMetrics creates and registers the pipeline collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		documentsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "casechron_documents_processed_total",
			Help: "Documents run through the extraction pipeline, by outcome.",
		}, []string{"status"}),
		eventsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casechron_events_extracted_total",
			Help: "Normalized events that survived extraction.",
		}),
		extractorCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "casechron_extractor_calls_total",
			Help: "Calls to the external extractor, by operation and outcome.",
		}, []string{"operation", "status"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "casechron_chronology_build_duration_seconds",
			Help:    "End-to-end chronology build latency.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}

	reg.MustRegister(m.documentsProcessed, m.eventsExtracted, m.extractorCalls, m.buildDuration)
	return m
}

// RecordDocument counts one processed document with its outcome
// ("ok", "empty", "failed").
func (m *Metrics) RecordDocument(status string) {
	if m == nil {
		return
	}
	m.documentsProcessed.WithLabelValues(status).Inc()
}

// RecordEvents counts normalized events that entered the accumulation
// buffer.
func (m *Metrics) RecordEvents(n int) {
	if m == nil {
		return
	}
	m.eventsExtracted.Add(float64(n))
}

// RecordExtractorCall counts one extractor invocation
// (operation "extract" or "reason", status "ok" or "error").
func (m *Metrics) RecordExtractorCall(operation, status string) {
	if m == nil {
		return
	}
	m.extractorCalls.WithLabelValues(operation, status).Inc()
}

// ObserveBuildDuration records one end-to-end build latency.
func (m *Metrics) ObserveBuildDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(d.Seconds())
}
