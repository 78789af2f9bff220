package assign

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks requests that are malformed before any store access.
// It is never worth retrying.
var ErrInvalidInput = errors.New("invalid input")

// CommitError reports a commit that failed part-way through its writes. The
// roster is now partially updated and needs reconciliation; this must never
// be collapsed into a plain failure, let alone success.
type CommitError struct {
	AttemptID string
	MissionID string
	Commit    *Commit // retains per-write state so a retry can resume
	Failed    string  // name of the write that failed
	Err       error
}

func (e *CommitError) Error() string {
	done := e.Commit.Completed()
	return fmt.Sprintf("assign %s: commit write %s failed after [%s]: %v",
		e.MissionID, e.Failed, strings.Join(done, ", "), e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
