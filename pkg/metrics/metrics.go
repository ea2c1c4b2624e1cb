// Package metrics exposes prometheus instrumentation for the decision
// service: how often each resolver runs, what it decides, and how long the
// snapshot load plus resolution takes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Collector registers and records the service's metrics
type Collector struct {
	registry          *prometheus.Registry
	decisionsTotal    *prometheus.CounterVec
	decisionDuration  prometheus.Histogram
	snapshotsIngested prometheus.Counter
	exportsTotal      *prometheus.CounterVec
	logger            *zap.Logger
}

// NewCollector creates a collector with its own registry
func NewCollector(logger *zap.Logger) *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		decisionsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "report_decisions_total",
			Help: "Resolved actions by resolver and action kind",
		}, []string{"resolver", "action"}),
		decisionDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "report_decision_duration_seconds",
			Help:    "Time to load a snapshot and resolve its action",
			Buckets: prometheus.DefBuckets,
		}),
		snapshotsIngested: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "snapshot_records_ingested_total",
			Help: "Total snapshot records upserted",
		}),
		exportsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "accounting_exports_total",
			Help: "Accounting export attempts by outcome",
		}, []string{"outcome"}),
		logger: logger,
	}
}

// RecordDecision counts one resolved action. The empty action is reported as
// "none" so the neutral outcome stays visible on dashboards.
func (c *Collector) RecordDecision(resolver, action string, duration time.Duration) {
	if action == "" {
		action = "none"
	}
	c.decisionsTotal.WithLabelValues(resolver, action).Inc()
	c.decisionDuration.Observe(duration.Seconds())
}

// RecordIngest counts upserted snapshot records
func (c *Collector) RecordIngest(records int) {
	c.snapshotsIngested.Add(float64(records))
}

// RecordExport counts one export attempt
func (c *Collector) RecordExport(outcome string) {
	c.exportsTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the /metrics HTTP handler for this collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
