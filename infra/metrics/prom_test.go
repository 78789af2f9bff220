package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/skyops/dronecoord/core/metrics"
)

func TestPromSinkRecordsAttempts(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	rec := coremetrics.AssignmentRecord{
		MissionID: "M001",
		Outcome:   "assigned",
		Urgent:    false,
		Duration:  25 * time.Millisecond,
		Time:      time.Now(),
	}
	require.NoError(t, sink.RecordAssignment(rec))
	rec.Outcome = "conflict"
	rec.Conflicts = 2
	require.NoError(t, sink.RecordAssignment(rec))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["assignment_attempts_total"])
	assert.True(t, names["assignment_conflicts_total"])
	assert.True(t, names["assignment_duration_seconds"])
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSink(reg)
	require.NoError(t, err)
	_, err = NewPromSink(reg)
	assert.NoError(t, err, "re-registration must reuse existing collectors")
}

type stubSink struct {
	recs []coremetrics.AssignmentRecord
	err  error
}

func (s *stubSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	s.recs = append(s.recs, rec)
	return s.err
}

func TestMultiSinkFanOut(t *testing.T) {
	a := &stubSink{}
	b := &stubSink{err: errors.New("backend down")}
	c := &stubSink{}
	multi := NewMultiSink(a, b, c)

	err := multi.RecordAssignment(coremetrics.AssignmentRecord{MissionID: "M001"})
	assert.Error(t, err)
	assert.Len(t, a.recs, 1)
	assert.Len(t, c.recs, 1, "a failing sink must not stop the others")
}
