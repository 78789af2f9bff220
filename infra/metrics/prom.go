package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/skyops/dronecoord/core/metrics"
)

// PromSink records assignment attempts in Prometheus metrics.
type PromSink struct {
	attempts  *prometheus.CounterVec
	conflicts prometheus.Counter
	duration  *prometheus.HistogramVec
}

// NewPromSink registers assignment metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_attempts_total",
		Help: "Total number of assignment attempts by outcome",
	}, []string{"outcome", "urgent"})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_conflicts_total",
		Help: "Total number of conflicts reported by the validator",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assignment_duration_seconds",
		Help:    "Time spent per assignment attempt including store I/O",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	for _, c := range []prometheus.Collector{attempts, conflicts, duration} {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch existing := are.ExistingCollector.(type) {
			case *prometheus.CounterVec:
				attempts = existing
			case prometheus.Counter:
				conflicts = existing
			case *prometheus.HistogramVec:
				duration = existing
			}
		}
	}
	return &PromSink{attempts: attempts, conflicts: conflicts, duration: duration}, nil
}

// RecordAssignment increments the attempt counters and observes the duration.
func (s *PromSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	s.attempts.WithLabelValues(rec.Outcome, strconv.FormatBool(rec.Urgent)).Inc()
	if rec.Conflicts > 0 {
		s.conflicts.Add(float64(rec.Conflicts))
	}
	s.duration.WithLabelValues(rec.Outcome).Observe(rec.Duration.Seconds())
	return nil
}
