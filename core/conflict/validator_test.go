package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/dronecoord/core/model"
)

func TestCheck_CleanPairing(t *testing.T) {
	pilot := model.Pilot{Name: "Ravi", Location: "Bangalore", Status: "Available", Certifications: []string{"DGCA", "BVLOS"}}
	drone := model.Drone{DroneID: "D002", Location: "Bangalore", Status: "Available"}
	req := Requirements{Location: "Bangalore", RequiredCerts: []string{"DGCA"}}

	assert.Empty(t, Validator{}.Check(pilot, drone, "PRJ001", req))
}

func TestCheck_MaintenanceAlwaysConflicts(t *testing.T) {
	pilot := model.Pilot{Name: "Ravi", Location: "Bangalore", Status: "Available"}
	drone := model.Drone{DroneID: "D003", Location: "Bangalore", Status: "Under Maintenance"}

	conflicts := Validator{}.Check(pilot, drone, "PRJ001", Requirements{Location: "Bangalore"})
	require.NotEmpty(t, conflicts)
	assert.Equal(t, RuleMaintenance, conflicts[0].Rule)
}

func TestCheck_MissionLocationMismatchFiresBothSides(t *testing.T) {
	pilot := model.Pilot{Name: "Ravi", Location: "Bangalore", Status: "Available"}
	drone := model.Drone{DroneID: "D002", Location: "Bangalore", Status: "Available"}

	conflicts := Validator{}.Check(pilot, drone, "PRJ002", Requirements{Location: "Mumbai"})
	require.Len(t, conflicts, 2)
	assert.Equal(t, RuleLocation, conflicts[0].Rule)
	assert.Equal(t, RuleLocation, conflicts[1].Rule)
	assert.Contains(t, conflicts[0].Description, "pilot is in Bangalore")
	assert.Contains(t, conflicts[1].Description, "drone is in Bangalore")
}

func TestCheck_PilotDroneLocationMismatch(t *testing.T) {
	pilot := model.Pilot{Name: "Ravi", Location: "Bangalore", Status: "Available"}
	drone := model.Drone{DroneID: "D001", Location: "Mumbai", Status: "Available"}

	conflicts := Validator{}.Check(pilot, drone, "PRJ001", Requirements{})
	require.Len(t, conflicts, 1)
	assert.Equal(t, RuleLocation, conflicts[0].Rule)
}

func TestCheck_MissingCertificationPerCert(t *testing.T) {
	pilot := model.Pilot{Name: "Anita", Location: "Mumbai", Status: "Available", Certifications: []string{"DGCA"}}
	drone := model.Drone{DroneID: "D001", Location: "Mumbai", Status: "Available"}
	req := Requirements{Location: "Mumbai", RequiredCerts: []string{"DGCA", "BVLOS"}}

	conflicts := Validator{}.Check(pilot, drone, "PRJ002", req)
	require.Len(t, conflicts, 1, "exactly one conflict for the one missing cert")
	assert.Equal(t, RuleCertification, conflicts[0].Rule)
	assert.Contains(t, conflicts[0].Description, "BVLOS")
}

func TestCheck_DoubleBooking(t *testing.T) {
	pilot := model.Pilot{Name: "Ravi", Location: "Pune", Status: "Assigned", CurrentAssignment: "PRJ009"}
	drone := model.Drone{DroneID: "D004", Location: "Pune", Status: "Busy", CurrentAssignment: "PRJ010"}

	conflicts := Validator{}.Check(pilot, drone, "PRJ001", Requirements{Location: "Pune"})
	require.Len(t, conflicts, 2)
	for _, c := range conflicts {
		assert.Equal(t, RuleDoubleBooked, c.Rule)
	}
}

func TestCheck_SameProjectIsNotDoubleBooking(t *testing.T) {
	pilot := model.Pilot{Name: "Ravi", Location: "Pune", Status: "Assigned", CurrentAssignment: "prj001"}
	drone := model.Drone{DroneID: "D004", Location: "Pune", Status: "Available"}

	conflicts := Validator{}.Check(pilot, drone, "PRJ001", Requirements{Location: "Pune"})
	assert.Empty(t, conflicts, "re-validating against the pilot's own project must pass")
}

func TestCheck_PlaceholderAssignmentIgnored(t *testing.T) {
	pilot := model.Pilot{Name: "Ravi", Location: "Pune", Status: "Busy", CurrentAssignment: "-"}
	drone := model.Drone{DroneID: "D004", Location: "Pune", Status: "Available"}

	assert.Empty(t, Validator{}.Check(pilot, drone, "PRJ001", Requirements{Location: "Pune"}))
}

func TestCheck_ReportsAllRulesInOnePass(t *testing.T) {
	pilot := model.Pilot{Name: "Anita", Location: "Mumbai", Status: "Assigned", CurrentAssignment: "PRJ008"}
	drone := model.Drone{DroneID: "D003", Location: "Delhi", Status: "Under Maintenance"}
	req := Requirements{Location: "Bangalore", RequiredCerts: []string{"BVLOS"}}

	conflicts := Validator{}.Check(pilot, drone, "PRJ001", req)
	rules := map[Rule]int{}
	for _, c := range conflicts {
		rules[c.Rule]++
	}
	assert.Equal(t, 1, rules[RuleMaintenance])
	assert.Equal(t, 3, rules[RuleLocation], "pilot/drone, pilot/project and drone/project")
	assert.Equal(t, 1, rules[RuleCertification])
	assert.Equal(t, 1, rules[RuleDoubleBooked])
}
