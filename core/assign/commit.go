package assign

import (
	"context"
	"fmt"

	"github.com/skyops/dronecoord/core/model"
	"github.com/skyops/dronecoord/core/roster"
)

// Write is a single field update belonging to a commit.
type Write struct {
	Name      string // stable label, e.g. "mission.assigned_pilot"
	Table     roster.Table
	KeyColumn string
	KeyValue  string
	Column    string
	Value     string
}

// Commit enumerates the ordered writes that durably record an assignment:
// the mission binding (pilot, drone, status) followed by the pilot and drone
// status updates. The store offers no multi-row transaction, so the commit
// tracks which writes have completed; re-running a partially applied commit
// resumes at the first unfinished write instead of re-issuing all of them.
type Commit struct {
	writes []Write
	done   []bool
}

// NewCommit builds the commit for binding the pairing to the mission.
func NewCommit(mission model.Mission, pilot model.Pilot, drone model.Drone) *Commit {
	bound := fmt.Sprintf("Assigned(%s)", mission.MissionID)
	writes := []Write{
		{
			Name:      "mission.assigned_pilot",
			Table:     roster.TableMissions,
			KeyColumn: roster.ColMissionID, KeyValue: mission.MissionID,
			Column: roster.ColAssignedPilot, Value: pilot.Name,
		},
		{
			Name:      "mission.assigned_drone",
			Table:     roster.TableMissions,
			KeyColumn: roster.ColMissionID, KeyValue: mission.MissionID,
			Column: roster.ColAssignedDrone, Value: drone.DroneID,
		},
		{
			Name:      "mission.status",
			Table:     roster.TableMissions,
			KeyColumn: roster.ColMissionID, KeyValue: mission.MissionID,
			Column: roster.ColStatus, Value: "Assigned",
		},
		{
			Name:      "pilot.status",
			Table:     roster.TablePilots,
			KeyColumn: roster.ColPilotName, KeyValue: pilot.Name,
			Column: roster.ColStatus, Value: bound,
		},
		{
			Name:      "drone.status",
			Table:     roster.TableDrones,
			KeyColumn: roster.ColDroneID, KeyValue: drone.DroneID,
			Column: roster.ColStatus, Value: bound,
		},
	}
	return &Commit{writes: writes, done: make([]bool, len(writes))}
}

// Run executes the pending writes in order and stops at the first failure.
// Already-completed writes are skipped, so Run can be called again to resume.
func (c *Commit) Run(ctx context.Context, store roster.Store) error {
	for i, w := range c.writes {
		if c.done[i] {
			continue
		}
		if err := store.UpdateField(ctx, w.Table, w.KeyColumn, w.KeyValue, w.Column, w.Value); err != nil {
			return fmt.Errorf("%s: %w", w.Name, err)
		}
		c.done[i] = true
	}
	return nil
}

// Completed returns the names of the writes that have been applied.
func (c *Commit) Completed() []string {
	var out []string
	for i, w := range c.writes {
		if c.done[i] {
			out = append(out, w.Name)
		}
	}
	return out
}

// Pending returns the names of the writes still to apply.
func (c *Commit) Pending() []string {
	var out []string
	for i, w := range c.writes {
		if !c.done[i] {
			out = append(out, w.Name)
		}
	}
	return out
}
