// Package events defines the notifications published on the internal bus
// during an assignment attempt.
package events

import (
	"time"

	"github.com/skyops/dronecoord/core/conflict"
)

// AssignedEvent is published after a commit completes.
type AssignedEvent struct {
	AttemptID string
	MissionID string
	Project   string
	Pilot     string
	Drone     string
	Reason    string
	Urgent    bool
	Time      time.Time
}

// ConflictEvent is published when the validator blocks a proposed pairing.
type ConflictEvent struct {
	AttemptID string
	MissionID string
	Pilot     string
	Drone     string
	Conflicts []conflict.Conflict
	Time      time.Time
}

// NoMatchEvent is published when the hard filters eliminate every candidate.
type NoMatchEvent struct {
	AttemptID string
	MissionID string
	Urgent    bool
	Time      time.Time
}
