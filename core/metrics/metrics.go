// Package metrics defines the sink interface assignment outcomes are
// recorded through. Concrete sinks live under infra/metrics.
package metrics

import "time"

// AssignmentRecord is one assignment attempt to be recorded.
type AssignmentRecord struct {
	AttemptID string
	MissionID string
	Outcome   string // assigned, no_match, conflict, not_found, already_resolved
	Pilot     string
	Drone     string
	Urgent    bool
	Conflicts int
	Duration  time.Duration
	Time      time.Time
}

// Sink records assignment attempts for observability purposes.
type Sink interface {
	RecordAssignment(rec AssignmentRecord) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordAssignment(AssignmentRecord) error { return nil }
