package sheets

import (
	"fmt"

	"github.com/skyops/dronecoord/core/model"
)

// row is one sheet record. Cells arrive as whatever JSON type the script
// emits: strings usually, but numbers for numeric-looking ids and arrays
// when a list column was filled programmatically.
type row map[string]any

// str coerces a cell to a string. Numeric cells are formatted without a
// trailing ".0" when they hold integral values.
func (r row) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// list coerces a cell to a string set. Both native JSON arrays and delimited
// strings are accepted.
func (r row) list(key string) []string {
	switch v := r[key].(type) {
	case []any:
		vals := make([]string, 0, len(v))
		for _, e := range v {
			vals = append(vals, fmt.Sprintf("%v", e))
		}
		return model.NormalizeSet(vals)
	default:
		return model.SplitList(r.str(key))
	}
}

func pilotFromRow(r row) model.Pilot {
	return model.Pilot{
		Name:              r.str("name"),
		Location:          r.str("location"),
		Status:            r.str("status"),
		Certifications:    r.list("certifications"),
		CurrentAssignment: r.str("current_assignment"),
	}
}

func droneFromRow(r row) model.Drone {
	return model.Drone{
		DroneID:           r.str("drone_id"),
		Model:             r.str("model"),
		Location:          r.str("location"),
		Status:            r.str("status"),
		Capabilities:      r.list("capabilities"),
		CurrentAssignment: r.str("current_assignment"),
	}
}

func missionFromRow(r row) model.Mission {
	return model.Mission{
		MissionID:          r.str("mission_id"),
		Project:            r.str("project"),
		Location:           r.str("location"),
		RequiredCerts:      r.list("required_certs"),
		RequiredCapability: r.str("required_capability"),
		StartDate:          r.str("start_date"),
		EndDate:            r.str("end_date"),
		Status:             r.str("status"),
		AssignedPilot:      r.str("assigned_pilot"),
		AssignedDrone:      r.str("assigned_drone"),
	}
}
