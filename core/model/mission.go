package model

import "strings"

// Mission represents a field operation waiting for a pilot and drone.
//
// StartDate and EndDate are kept as the store's literal values: the engine
// never does date arithmetic, it only carries the window through to conflict
// requirements and result output.
type Mission struct {
	MissionID          string
	Project            string
	Location           string
	RequiredCerts      []string
	RequiredCapability string // optional single capability
	StartDate          string
	EndDate            string
	Status             string // Open -> Assigned -> Completed, never regressed here
	AssignedPilot      string
	AssignedDrone      string
}

// Resolved reports whether the mission already has an outcome and must not be
// assigned again.
func (m Mission) Resolved() bool {
	return statusIn(m.Status, "assigned", "completed")
}

// ProjectName returns the project reference used for conflict checks, falling
// back to the mission id when the project cell is empty.
func (m Mission) ProjectName() string {
	if p := strings.TrimSpace(m.Project); p != "" {
		return p
	}
	return m.MissionID
}
