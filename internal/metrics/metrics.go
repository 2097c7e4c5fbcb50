// Package metrics records build outcomes and stage latency in a private
// Prometheus registry.
//
// A nil *Recorder is valid and records nothing, so callers never need to
// guard their observations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "xbuild"
	subsystem = "build"
)

// Stage kinds used as the "kind" label.
const (
	KindStep = "step"
	KindPass = "pass"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// Collects build metrics.
type Recorder struct {
	registry      *prometheus.Registry
	runs          prometheus.Counter
	targets       *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
}

// Creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Number of orchestrated build runs",
		}),
		targets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "targets_total",
			Help:      "Number of per-target pipeline outcomes",
		}, []string{"target", "outcome"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stage_duration_seconds",
			Help:      "Latency distribution of build steps and optimization passes",
			Buckets:   histogramBuckets,
		}, []string{"kind", "name"}),
	}

	r.registry.MustRegister(r.runs, r.targets, r.stageDuration)
	return r
}

// Counts a started build run.
func (r *Recorder) ObserveRun() {
	if r == nil {
		return
	}
	r.runs.Inc()
}

// Counts the outcome of one target's pipeline.
func (r *Recorder) ObserveTarget(target, outcome string) {
	if r == nil {
		return
	}
	r.targets.With(prometheus.Labels{"target": target, "outcome": outcome}).Inc()
}

// Records how long a step or pass took.
func (r *Recorder) ObserveStage(kind, name string, d time.Duration) {
	if r == nil {
		return
	}
	r.stageDuration.With(prometheus.Labels{"kind": kind, "name": name}).Observe(d.Seconds())
}

// Returns the registry backing the recorder.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Writes all metrics in the Prometheus text format to path.
//
// The file is written atomically, which suits the node exporter's textfile
// collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
