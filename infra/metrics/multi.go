package metrics

import (
	"errors"

	coremetrics "github.com/skyops/dronecoord/core/metrics"
)

// MultiSink fans records out to several sinks. Errors are collected so one
// failing backend does not hide the others.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordAssignment forwards the record to every sink.
func (m *MultiSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordAssignment(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
