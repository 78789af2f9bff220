package model

// Pilot represents a certified drone operator on the roster.
type Pilot struct {
	Name              string
	Location          string
	Status            string   // free-form from the store, compared case-insensitively
	Certifications    []string // e.g. DGCA, BVLOS, Night Ops
	CurrentAssignment string   // project reference, "-" or empty when idle
}

// Deployable returns true if the pilot's status allows taking a new mission.
func (p Pilot) Deployable() bool {
	return statusIn(p.Status, "available", "active", "free")
}

// HasCert reports whether the pilot holds the given certification.
func (p Pilot) HasCert(cert string) bool {
	return HasAll([]string{cert}, p.Certifications)
}

// HasCerts reports whether the pilot holds every required certification.
func (p Pilot) HasCerts(required []string) bool {
	return HasAll(required, p.Certifications)
}

// Booked reports whether the pilot is tied up by an active assignment. The
// status alone is not enough: operators sometimes flip a pilot to Busy without
// filling the assignment cell.
func (p Pilot) Booked() bool {
	return statusIn(p.Status, "assigned", "busy", "deployed") && !IsUnassigned(p.CurrentAssignment)
}
