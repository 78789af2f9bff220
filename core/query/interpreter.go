// Package query turns free-text operator requests into roster operations.
//
// Intent recognition is a finite classifier: a tagged set of intents with
// trigger predicates evaluated in fixed priority order. The first matching
// intent wins, so "urgent assign mission M001" classifies as urgent-assign
// even though the plain assign trigger would also fire.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyops/dronecoord/core/assign"
	"github.com/skyops/dronecoord/core/logger"
	"github.com/skyops/dronecoord/core/model"
	"github.com/skyops/dronecoord/core/roster"
)

// Intent tags a recognized request type.
type Intent string

const (
	IntentUrgentAssign Intent = "urgent_assign_mission"
	IntentAssign       Intent = "assign_mission"
	IntentShowPilots   Intent = "show_available_pilots"
	IntentShowDrones   Intent = "show_available_drones"
	IntentUpdatePilot  Intent = "update_pilot_status"
	IntentUpdateDrone  Intent = "update_drone_status"
	IntentUnknown      Intent = "unknown"
)

// intentRule pairs an intent with its trigger predicate. Order matters.
var intentRules = []struct {
	intent  Intent
	trigger func(q string) bool
}{
	{IntentUrgentAssign, func(q string) bool { return has(q, "urgent") && has(q, "mission") }},
	{IntentAssign, func(q string) bool { return has(q, "assign") && has(q, "mission") }},
	{IntentShowPilots, func(q string) bool { return has(q, "show") && has(q, "pilot") || has(q, "available pilots") }},
	{IntentShowDrones, func(q string) bool { return has(q, "show") && has(q, "drone") || has(q, "available drones") }},
	{IntentUpdatePilot, func(q string) bool { return has(q, "update") && has(q, "pilot") }},
	{IntentUpdateDrone, func(q string) bool { return has(q, "update") && has(q, "drone") }},
}

func has(q, s string) bool { return strings.Contains(q, s) }

// Classify returns the intent for a raw request.
func Classify(text string) Intent {
	q := strings.ToLower(strings.TrimSpace(text))
	for _, r := range intentRules {
		if r.trigger(q) {
			return r.intent
		}
	}
	return IntentUnknown
}

// Reply is the structured answer to one request.
type Reply struct {
	Intent  Intent         `json:"intent"`
	Status  string         `json:"status"` // success, error, conflict, unknown
	Message string         `json:"message"`
	Pilots  []model.Pilot  `json:"pilots,omitempty"`
	Drones  []model.Drone  `json:"drones,omitempty"`
	Result  *assign.Result `json:"result,omitempty"`
}

// Interpreter routes classified requests to the roster store and the
// assignment coordinator.
type Interpreter struct {
	store roster.Store
	coord *assign.Coordinator
	log   logger.Logger
}

// NewInterpreter creates an Interpreter.
func NewInterpreter(store roster.Store, coord *assign.Coordinator, log logger.Logger) (*Interpreter, error) {
	if store == nil || coord == nil {
		return nil, fmt.Errorf("query: nil store or coordinator provided to NewInterpreter")
	}
	if log == nil {
		log = nop{}
	}
	return &Interpreter{store: store, coord: coord, log: log}, nil
}

// Handle classifies the request and executes it.
func (i *Interpreter) Handle(ctx context.Context, text string) Reply {
	intent := Classify(text)
	i.log.Debugw("query classified", map[string]any{"intent": string(intent), "text": text})

	switch intent {
	case IntentShowPilots:
		return i.showPilots(ctx, text)
	case IntentShowDrones:
		return i.showDrones(ctx, text)
	case IntentUpdatePilot:
		return i.updatePilot(ctx, text)
	case IntentUpdateDrone:
		return i.updateDrone(ctx, text)
	case IntentAssign:
		return i.assignMission(ctx, text, false)
	case IntentUrgentAssign:
		return i.assignMission(ctx, text, true)
	default:
		return Reply{
			Intent:  IntentUnknown,
			Status:  "unknown",
			Message: "Sorry, I didn't understand. Try: show pilots/drones, update pilot/drone, assign mission M001.",
		}
	}
}

func (i *Interpreter) showPilots(ctx context.Context, text string) Reply {
	pilots, err := i.store.Pilots(ctx)
	if err != nil {
		return errReply(IntentShowPilots, err)
	}
	location := ExtractLocation(text)
	certs := ExtractCerts(text)

	var available []model.Pilot
	for _, p := range pilots {
		if !p.Deployable() {
			continue
		}
		if location != "" && !model.ContainsFold(p.Location, location) {
			continue
		}
		if len(certs) > 0 && !p.HasCerts(certs) {
			continue
		}
		available = append(available, p)
	}
	if len(available) == 0 {
		return Reply{Intent: IntentShowPilots, Status: "success", Message: fmt.Sprintf("No available pilots found for %s.", orAll(location, "all locations"))}
	}
	var b strings.Builder
	b.WriteString("Available pilots:\n")
	for _, p := range available {
		fmt.Fprintf(&b, "- %s | %s | %s | certs=%s\n", p.Name, p.Location, p.Status, strings.Join(p.Certifications, ","))
	}
	return Reply{Intent: IntentShowPilots, Status: "success", Message: b.String(), Pilots: available}
}

func (i *Interpreter) showDrones(ctx context.Context, text string) Reply {
	drones, err := i.store.Drones(ctx)
	if err != nil {
		return errReply(IntentShowDrones, err)
	}
	location := ExtractLocation(text)
	capability := ExtractCapability(text)

	var available []model.Drone
	for _, d := range drones {
		if !d.Operational() {
			continue
		}
		if location != "" && !model.ContainsFold(d.Location, location) {
			continue
		}
		if capability != "" && !d.HasCapability(capability) {
			continue
		}
		available = append(available, d)
	}
	if len(available) == 0 {
		return Reply{Intent: IntentShowDrones, Status: "success", Message: fmt.Sprintf("No available drones found for %s.", orAll(capability, "all capabilities"))}
	}
	var b strings.Builder
	b.WriteString("Available drones:\n")
	for _, d := range available {
		fmt.Fprintf(&b, "- %s | %s | caps=%s | %s\n", d.DroneID, d.Model, strings.Join(d.Capabilities, ","), d.Status)
	}
	return Reply{Intent: IntentShowDrones, Status: "success", Message: b.String(), Drones: available}
}

func (i *Interpreter) updatePilot(ctx context.Context, text string) Reply {
	name := ExtractPilotName(text)
	status := ExtractStatus(text)
	if name == "" || status == "" {
		return Reply{Intent: IntentUpdatePilot, Status: "error", Message: "Example: update pilot Ravi to On Leave"}
	}
	pilots, err := i.store.Pilots(ctx)
	if err != nil {
		return errReply(IntentUpdatePilot, err)
	}
	if !pilotExists(pilots, name) {
		return Reply{Intent: IntentUpdatePilot, Status: "error", Message: fmt.Sprintf("Pilot not found: %s", name)}
	}
	if err := i.store.UpdateField(ctx, roster.TablePilots, roster.ColPilotName, name, roster.ColStatus, status); err != nil {
		return errReply(IntentUpdatePilot, err)
	}
	return Reply{Intent: IntentUpdatePilot, Status: "success", Message: fmt.Sprintf("Pilot %s updated to %s", name, status)}
}

func (i *Interpreter) updateDrone(ctx context.Context, text string) Reply {
	id := ExtractDroneID(text)
	status := ExtractStatus(text)
	if id == "" || status == "" {
		return Reply{Intent: IntentUpdateDrone, Status: "error", Message: "Example: update drone D001 to Maintenance"}
	}
	drones, err := i.store.Drones(ctx)
	if err != nil {
		return errReply(IntentUpdateDrone, err)
	}
	if !droneExists(drones, id) {
		return Reply{Intent: IntentUpdateDrone, Status: "error", Message: fmt.Sprintf("Drone not found: %s", id)}
	}
	if err := i.store.UpdateField(ctx, roster.TableDrones, roster.ColDroneID, id, roster.ColStatus, status); err != nil {
		return errReply(IntentUpdateDrone, err)
	}
	return Reply{Intent: IntentUpdateDrone, Status: "success", Message: fmt.Sprintf("Drone %s updated to %s", id, status)}
}

func (i *Interpreter) assignMission(ctx context.Context, text string, urgent bool) Reply {
	intent := IntentAssign
	if urgent {
		intent = IntentUrgentAssign
	}
	missionID := ExtractMissionID(text)
	if missionID == "" {
		return Reply{Intent: intent, Status: "error", Message: "Mission ID missing. Example: assign mission M001"}
	}
	res, err := i.coord.Assign(ctx, missionID, urgent)
	if err != nil {
		return errReply(intent, err)
	}
	reply := Reply{Intent: intent, Result: &res}
	switch res.Outcome {
	case assign.OutcomeAssigned:
		reply.Status = "success"
		reply.Message = fmt.Sprintf(
			"Mission assigned.\nMission ID: %s\nProject: %s\nPilot: %s\nDrone: %s\nLocation: %s\nDates: %s to %s\nReason: %s",
			res.MissionID, res.Project, res.Pilot, res.Drone, res.Location, res.StartDate, res.EndDate, res.Reason)
	case assign.OutcomeConflict:
		var lines []string
		for _, c := range res.Conflicts {
			lines = append(lines, c.Description)
		}
		reply.Status = "conflict"
		reply.Message = fmt.Sprintf("Conflicts found for mission %s:\n- %s", res.MissionID, strings.Join(lines, "\n- "))
	case assign.OutcomeAlreadyResolved:
		reply.Status = "error"
		reply.Message = fmt.Sprintf("Mission %s already %s", res.MissionID, strings.ToLower(res.CurrentStatus))
	case assign.OutcomeNotFound:
		reply.Status = "error"
		reply.Message = fmt.Sprintf("Mission not found: %s", res.MissionID)
	case assign.OutcomeNoMatch:
		reply.Status = "error"
		reply.Message = fmt.Sprintf("No match found for mission %s", res.MissionID)
	}
	return reply
}

func errReply(intent Intent, err error) Reply {
	return Reply{Intent: intent, Status: "error", Message: err.Error()}
}

func orAll(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func pilotExists(pilots []model.Pilot, name string) bool {
	for _, p := range pilots {
		if model.SameText(p.Name, name) {
			return true
		}
	}
	return false
}

func droneExists(drones []model.Drone, id string) bool {
	for _, d := range drones {
		if model.SameText(d.DroneID, id) {
			return true
		}
	}
	return false
}

type nop struct{}

func (nop) Debugf(string, ...any)         {}
func (nop) Debugw(string, map[string]any) {}
func (nop) Infof(string, ...any)          {}
func (nop) Warnf(string, ...any)          {}
func (nop) Errorf(string, ...any)         {}
