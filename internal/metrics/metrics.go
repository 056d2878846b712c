// Package metrics provides Prometheus metrics collection for the evaluation
// engine. It defines counters, gauges, and histograms covering the
// cross-validation pipeline and exposes them for the metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the evaluation engine.
type Metrics struct {
	// Cross-validation pipeline metrics
	EvalRuns        prometheus.Counter   // Total number of cross-validation runs started
	EvalFailures    prometheus.Counter   // Total number of failed evaluation runs
	FoldsEvaluated  prometheus.Counter   // Total number of folds fit and scored
	DegenerateFolds prometheus.Counter   // Total number of single-class test blocks encountered
	CacheHits       prometheus.Counter   // Total number of runs served from the result cache
	FitDuration     prometheus.Histogram // Per-fold classifier fit duration in seconds
	PredictDuration prometheus.Histogram // Per-fold prediction duration in seconds

	// ROC aggregation metrics
	FoldAUC prometheus.Histogram // Distribution of per-fold AUC values
	MeanAUC prometheus.Gauge     // Mean AUC of the most recent aggregation
}

// New creates and registers all Prometheus metrics using the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates metrics with a custom registry (useful for testing).
// This allows for isolated metric collection in tests without affecting
// the global Prometheus registry.
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		EvalRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "eval_runs_total",
			Help: "Total number of cross-validation runs started",
		}),
		EvalFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "eval_failures_total",
			Help: "Total number of failed evaluation runs",
		}),
		FoldsEvaluated: factory.NewCounter(prometheus.CounterOpts{
			Name: "folds_evaluated_total",
			Help: "Total number of folds fit and scored",
		}),
		DegenerateFolds: factory.NewCounter(prometheus.CounterOpts{
			Name: "degenerate_folds_total",
			Help: "Total number of single-class test blocks encountered",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "eval_cache_hits_total",
			Help: "Total number of runs served from the result cache",
		}),
		FitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fold_fit_duration_seconds",
			Help:    "Per-fold classifier fit duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		PredictDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fold_predict_duration_seconds",
			Help:    "Per-fold prediction duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		FoldAUC: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fold_auc",
			Help:    "Distribution of per-fold AUC values",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		MeanAUC: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mean_auc",
			Help: "Mean AUC of the most recent ROC aggregation",
		}),
	}
}
