// Package metrics exports run statistics in the Prometheus text format so
// a node_exporter textfile collector can pick them up.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dkoosis/cpfgen/pkg/report"
)

// FileName is the textfile written next to the run report.
const FileName = "metrics.prom"

const namespace = "cpfgen"

// Run holds the collectors describing one combination run.
type Run struct {
	registry  *prometheus.Registry
	processed prometheus.Counter
	space     prometheus.Gauge
	outcome   *prometheus.CounterVec
	duration  prometheus.Gauge
	rate      prometheus.Gauge
	early     prometheus.Gauge
}

// NewRun registers the run collectors on a private registry.
func NewRun() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_processed_total",
			Help:      "Candidates taken from the segment product.",
		}),
		space: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidate_space",
			Help:      "Size of the Cartesian product of the segment lists.",
		}),
		outcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Processed candidates by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of the last run.",
		}),
		rate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "validity_rate_percent",
			Help:      "Valid candidates as a percentage of processed ones.",
		}),
		early: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_stopped_early",
			Help:      "1 when the valid limit ended the run before the space was exhausted.",
		}),
	}
	r.registry.MustRegister(r.processed, r.space, r.outcome, r.duration, r.rate, r.early)
	return r
}

// Observe records the final statistics of a run.
func (r *Run) Observe(s *report.RunStatistics) {
	r.processed.Add(float64(s.Processed))
	r.space.Set(float64(s.TotalCombinations))
	r.outcome.WithLabelValues("valid").Add(float64(s.Valid))
	r.outcome.WithLabelValues("invalid").Add(float64(s.Invalid))
	r.outcome.WithLabelValues("repeated").Add(float64(s.RepeatedSequences))
	r.outcome.WithLabelValues("format_error").Add(float64(s.FormatErrors))
	r.duration.Set(s.DurationSeconds)
	r.rate.Set(s.ValidityRate)
	if s.StoppedEarly {
		r.early.Set(1)
	} else {
		r.early.Set(0)
	}
}

// WriteTextfile writes the current values to path.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
