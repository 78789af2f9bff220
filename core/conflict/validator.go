// Package conflict re-checks a proposed pilot+drone pairing against
// feasibility rules before the assignment is committed. All rules are
// evaluated independently so one pass reports every violation.
package conflict

import (
	"fmt"
	"strings"

	"github.com/skyops/dronecoord/core/model"
)

// Rule tags the feasibility rule a conflict originates from.
type Rule string

const (
	RuleMaintenance   Rule = "maintenance"
	RuleLocation      Rule = "location_mismatch"
	RuleCertification Rule = "missing_certification"
	RuleDoubleBooked  Rule = "double_booked"
)

// Conflict describes one detected feasibility violation.
type Conflict struct {
	Rule        Rule
	Description string
}

func (c Conflict) String() string { return c.Description }

// Requirements carries the mission constraints a pairing is validated
// against.
type Requirements struct {
	Location      string
	StartDate     string
	EndDate       string
	RequiredCerts []string
}

// Validator applies the conflict rules. It is read-only and side-effect-free;
// a non-empty result blocks the commit unconditionally.
type Validator struct{}

// Check returns every conflict between the pairing and the requirements. An
// empty result means the pairing is feasible.
func (Validator) Check(pilot model.Pilot, drone model.Drone, project string, req Requirements) []Conflict {
	var conflicts []Conflict

	if drone.UnderMaintenance() {
		conflicts = append(conflicts, Conflict{
			Rule:        RuleMaintenance,
			Description: fmt.Sprintf("drone %s is under maintenance", drone.DroneID),
		})
	}

	pilotLoc := strings.TrimSpace(pilot.Location)
	droneLoc := strings.TrimSpace(drone.Location)
	missionLoc := strings.TrimSpace(req.Location)
	if pilotLoc != "" && droneLoc != "" && !model.SameText(pilotLoc, droneLoc) {
		conflicts = append(conflicts, Conflict{
			Rule:        RuleLocation,
			Description: fmt.Sprintf("pilot is in %s but drone is in %s", pilot.Location, drone.Location),
		})
	}
	if missionLoc != "" {
		if pilotLoc != "" && !model.SameText(pilotLoc, missionLoc) {
			conflicts = append(conflicts, Conflict{
				Rule:        RuleLocation,
				Description: fmt.Sprintf("pilot is in %s but project is in %s", pilot.Location, req.Location),
			})
		}
		if droneLoc != "" && !model.SameText(droneLoc, missionLoc) {
			conflicts = append(conflicts, Conflict{
				Rule:        RuleLocation,
				Description: fmt.Sprintf("drone is in %s but project is in %s", drone.Location, req.Location),
			})
		}
	}

	for _, cert := range req.RequiredCerts {
		if !pilot.HasCert(cert) {
			conflicts = append(conflicts, Conflict{
				Rule:        RuleCertification,
				Description: fmt.Sprintf("pilot %s does not have required certification: %s", pilot.Name, cert),
			})
		}
	}

	if pilot.Booked() && !model.SameText(pilot.CurrentAssignment, project) {
		conflicts = append(conflicts, Conflict{
			Rule:        RuleDoubleBooked,
			Description: fmt.Sprintf("pilot %s is already assigned to %s", pilot.Name, pilot.CurrentAssignment),
		})
	}
	if drone.Booked() && !model.SameText(drone.CurrentAssignment, project) {
		conflicts = append(conflicts, Conflict{
			Rule:        RuleDoubleBooked,
			Description: fmt.Sprintf("drone %s is already assigned to %s", drone.DroneID, drone.CurrentAssignment),
		})
	}

	return conflicts
}

// Descriptions flattens a conflict list into its human-readable lines.
func Descriptions(conflicts []Conflict) []string {
	out := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, c.Description)
	}
	return out
}
