package model

// Drone represents an airframe in the fleet.
type Drone struct {
	DroneID           string
	Model             string
	Location          string
	Status            string   // free-form from the store, compared case-insensitively
	Capabilities      []string // e.g. thermal, lidar, rgb
	CurrentAssignment string   // project reference, "-" or empty when idle
}

// Operational returns true if the drone can be dispatched. A status carrying
// "maintenance" anywhere grounds the airframe regardless of the base state.
func (d Drone) Operational() bool {
	if ContainsFold(d.Status, "maintenance") {
		return false
	}
	return statusIn(d.Status, "available", "ready", "free")
}

// UnderMaintenance reports whether the drone's status marks it as grounded
// for maintenance.
func (d Drone) UnderMaintenance() bool {
	return ContainsFold(d.Status, "maintenance")
}

// HasCapability reports whether the sensor payload covers the requested
// capability. Matching is a case-insensitive substring test so "thermal"
// matches "Thermal Imaging".
func (d Drone) HasCapability(capability string) bool {
	for _, c := range d.Capabilities {
		if ContainsFold(c, capability) {
			return true
		}
	}
	return false
}

// Booked reports whether the drone is tied up by an active assignment.
func (d Drone) Booked() bool {
	return statusIn(d.Status, "assigned", "busy", "deployed") && !IsUnassigned(d.CurrentAssignment)
}
