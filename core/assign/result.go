package assign

import "github.com/skyops/dronecoord/core/conflict"

// Outcome classifies how an assignment attempt ended.
type Outcome int

const (
	OutcomeAssigned Outcome = iota
	OutcomeAlreadyResolved
	OutcomeNotFound
	OutcomeNoMatch
	OutcomeConflict
)

// String returns a machine-friendly label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAssigned:
		return "assigned"
	case OutcomeAlreadyResolved:
		return "already_resolved"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Result is the outcome of one assignment attempt. Which fields are populated
// depends on the outcome: Pilot/Drone/Reason on success, Conflicts when the
// validator blocked the pairing, CurrentStatus when the mission was already
// resolved.
type Result struct {
	Outcome       Outcome             `json:"outcome"`
	AttemptID     string              `json:"attempt_id"`
	MissionID     string              `json:"mission_id"`
	Project       string              `json:"project,omitempty"`
	Pilot         string              `json:"pilot,omitempty"`
	Drone         string              `json:"drone,omitempty"`
	Location      string              `json:"location,omitempty"`
	StartDate     string              `json:"start_date,omitempty"`
	EndDate       string              `json:"end_date,omitempty"`
	Reason        string              `json:"reason,omitempty"`
	CurrentStatus string              `json:"current_status,omitempty"`
	Conflicts     []conflict.Conflict `json:"conflicts,omitempty"`
	Urgent        bool                `json:"urgent"`
}
