// Package match implements the candidate-filtering and selection algorithm
// that picks a single pilot+drone pair for a mission.
//
// Selection is a pure function of the snapshot and query: hard constraints
// eliminate candidates, the mission location only ranks the survivors, and
// ties are broken by lexicographic order on pilot name then drone id. The
// same inputs therefore always produce the same pair and the same reason.
package match

import (
	"sort"
	"strings"

	"github.com/skyops/dronecoord/core/model"
)

// Query carries the mission requirements used for matching.
type Query struct {
	Location           string
	Urgent             bool
	RequiredCerts      []string
	RequiredCapability string
}

// Match is a proposed pilot+drone pairing with the selection rationale.
type Match struct {
	Pilot  model.Pilot
	Drone  model.Drone
	Reason string
}

// Location ranking for otherwise-eligible candidates. The mission location is
// a preference, not a hard constraint: a roster with no one on site still
// yields the best available pair, flagged as such in the reason.
const (
	locNone    = 0
	locPartial = 1
	locExact   = 2
)

type pilotCandidate struct {
	p   model.Pilot
	loc int
}

type droneCandidate struct {
	d   model.Drone
	loc int
}

// Engine selects the best pilot+drone pair for a query.
type Engine struct{}

// FindBestMatch applies the hard filters and returns the highest-ranked
// pairing. ok is false when no pilot or no drone survives filtering; a
// partial result is never returned.
func (Engine) FindBestMatch(pilots []model.Pilot, drones []model.Drone, q Query) (Match, bool) {
	pc := eligiblePilots(pilots, q)
	dc := eligibleDrones(drones, q)
	if len(pc) == 0 || len(dc) == 0 {
		return Match{}, false
	}

	// Pilot and drone ranks are independent, so sorting each side and
	// taking the head yields the maximum combined location score.
	sort.SliceStable(pc, func(i, j int) bool {
		if pc[i].loc != pc[j].loc {
			return pc[i].loc > pc[j].loc
		}
		return strings.ToLower(pc[i].p.Name) < strings.ToLower(pc[j].p.Name)
	})
	sort.SliceStable(dc, func(i, j int) bool {
		if dc[i].loc != dc[j].loc {
			return dc[i].loc > dc[j].loc
		}
		return strings.ToLower(dc[i].d.DroneID) < strings.ToLower(dc[j].d.DroneID)
	})

	best := Match{Pilot: pc[0].p, Drone: dc[0].d}
	best.Reason = reason(q, pc[0].loc, dc[0].loc)
	return best, true
}

func eligiblePilots(pilots []model.Pilot, q Query) []pilotCandidate {
	var out []pilotCandidate
	for _, p := range pilots {
		if !p.Deployable() {
			continue
		}
		if len(q.RequiredCerts) > 0 && !p.HasCerts(q.RequiredCerts) {
			continue
		}
		out = append(out, pilotCandidate{p: p, loc: locationRank(p.Location, q.Location)})
	}
	return out
}

func eligibleDrones(drones []model.Drone, q Query) []droneCandidate {
	var out []droneCandidate
	for _, d := range drones {
		if !d.Operational() {
			continue
		}
		if q.RequiredCapability != "" && !d.HasCapability(q.RequiredCapability) {
			continue
		}
		out = append(out, droneCandidate{d: d, loc: locationRank(d.Location, q.Location)})
	}
	return out
}

// locationRank scores how well a candidate location matches the mission
// location: exact beats substring beats none. No mission location makes all
// candidates equal.
func locationRank(candidate, wanted string) int {
	if strings.TrimSpace(wanted) == "" {
		return locNone
	}
	if model.SameText(candidate, wanted) {
		return locExact
	}
	if model.ContainsFold(candidate, wanted) {
		return locPartial
	}
	return locNone
}

func reason(q Query, pilotLoc, droneLoc int) string {
	var r string
	switch {
	case strings.TrimSpace(q.Location) == "":
		r = "best available pilot and drone"
	case pilotLoc == locExact && droneLoc == locExact:
		r = "exact location and certification match"
	default:
		r = "best available pilot and drone (no exact location match)"
	}
	if q.Urgent {
		r = "urgent priority: " + r
	}
	return r
}
