// Package roster defines the port to the external tabular store holding
// pilot, drone and mission records. The store is authoritative: the engine
// only reads point-in-time snapshots and writes individual fields back.
package roster

import (
	"context"
	"fmt"

	"github.com/skyops/dronecoord/core/model"
)

// Table identifies one of the roster sheets.
type Table string

const (
	TablePilots   Table = "Pilots"
	TableDrones   Table = "Drones"
	TableMissions Table = "Missions"
)

// Column names as they appear in the store. Keys are case-sensitive, values
// are compared case-insensitively by the core.
const (
	ColPilotName     = "name"
	ColDroneID       = "drone_id"
	ColMissionID     = "mission_id"
	ColStatus        = "status"
	ColAssignedPilot = "assigned_pilot"
	ColAssignedDrone = "assigned_drone"
)

// Store is the read/write surface the engine needs from the roster backend.
// Reads return full-table snapshots; UpdateField writes a single cell
// identified by a key column match. There is no multi-row transaction.
type Store interface {
	Pilots(ctx context.Context) ([]model.Pilot, error)
	Drones(ctx context.Context) ([]model.Drone, error)
	Missions(ctx context.Context) ([]model.Mission, error)
	UpdateField(ctx context.Context, table Table, keyColumn, keyValue, column, value string) error
}

// TransportError wraps a failed roster read or write. It marks hard transport
// failures apart from business outcomes like NoMatch or Conflict.
type TransportError struct {
	Op  string // e.g. "read pilots", "update Missions.status"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("roster: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
