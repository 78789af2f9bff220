// Package assign sequences an assignment attempt: snapshot the roster, match
// a pilot+drone pair, validate it for conflicts, and commit the binding back
// to the store.
package assign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skyops/dronecoord/core/conflict"
	"github.com/skyops/dronecoord/core/events"
	"github.com/skyops/dronecoord/core/logger"
	"github.com/skyops/dronecoord/core/match"
	"github.com/skyops/dronecoord/core/metrics"
	"github.com/skyops/dronecoord/core/model"
	"github.com/skyops/dronecoord/core/roster"
	"github.com/skyops/dronecoord/internal/eventbus"
)

// Notice describes a committed assignment to downstream listeners.
type Notice struct {
	AttemptID string `json:"attempt_id"`
	MissionID string `json:"mission_id"`
	Project   string `json:"project"`
	Pilot     string `json:"pilot"`
	Drone     string `json:"drone"`
	Location  string `json:"location"`
	Reason    string `json:"reason"`
	Urgent    bool   `json:"urgent"`
}

// Notifier pushes committed assignments to an external channel. Delivery is
// best-effort; a notification failure never rolls back a commit.
type Notifier interface {
	NotifyAssigned(ctx context.Context, n Notice) error
}

// Coordinator runs assignment attempts against the roster store. It holds no
// snapshot state between calls; every attempt starts with a fresh read pass.
//
// Concurrent attempts on the same mission are not serialized here: the store
// offers no conditional update, so the coordinator re-checks the mission
// status immediately before the first commit write and otherwise relies on
// single-writer discipline per mission.
type Coordinator struct {
	store     roster.Store
	engine    match.Engine
	validator conflict.Validator
	log       logger.Logger
	sink      metrics.Sink
	bus       eventbus.EventBus
	notifier  Notifier
}

// NewCoordinator creates a Coordinator. Only the store is mandatory; a nil
// sink, bus or notifier disables the corresponding side channel.
func NewCoordinator(store roster.Store, log logger.Logger, sink metrics.Sink, bus eventbus.EventBus, notifier Notifier) (*Coordinator, error) {
	if store == nil {
		return nil, fmt.Errorf("assign: nil store provided to NewCoordinator")
	}
	if log == nil {
		log = nopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Coordinator{
		store:    store,
		log:      log,
		sink:     sink,
		bus:      bus,
		notifier: notifier,
	}, nil
}

// Assign attempts to staff the mission and commit the result.
//
// Business outcomes (NotFound, AlreadyResolved, NoMatch, Conflict) are
// returned in the Result with a nil error. A non-nil error means the attempt
// itself failed: invalid input, a roster transport failure, or a partial
// commit reported as *CommitError.
func (c *Coordinator) Assign(ctx context.Context, missionID string, urgent bool) (Result, error) {
	start := time.Now()
	attemptID := uuid.NewString()

	missionID = strings.TrimSpace(missionID)
	if missionID == "" {
		return Result{}, fmt.Errorf("%w: mission id is required", ErrInvalidInput)
	}

	pilots, err := c.store.Pilots(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load pilots: %w", err)
	}
	drones, err := c.store.Drones(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load drones: %w", err)
	}
	missions, err := c.store.Missions(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load missions: %w", err)
	}

	mission, ok := findMission(missions, missionID)
	if !ok {
		c.log.Warnf("mission %s not found", missionID)
		return c.finish(Result{Outcome: OutcomeNotFound, AttemptID: attemptID, MissionID: missionID, Urgent: urgent}, start)
	}
	if mission.Resolved() {
		c.log.Infof("mission %s already %s, nothing to do", mission.MissionID, mission.Status)
		return c.finish(Result{
			Outcome:       OutcomeAlreadyResolved,
			AttemptID:     attemptID,
			MissionID:     mission.MissionID,
			CurrentStatus: mission.Status,
			Urgent:        urgent,
		}, start)
	}

	q := match.Query{
		Location:           mission.Location,
		Urgent:             urgent,
		RequiredCerts:      mission.RequiredCerts,
		RequiredCapability: mission.RequiredCapability,
	}
	m, found := c.engine.FindBestMatch(pilots, drones, q)
	if !found {
		c.log.Infof("no eligible pilot/drone pair for mission %s", mission.MissionID)
		c.publish(events.NoMatchEvent{AttemptID: attemptID, MissionID: mission.MissionID, Urgent: urgent, Time: time.Now()})
		return c.finish(Result{Outcome: OutcomeNoMatch, AttemptID: attemptID, MissionID: mission.MissionID, Urgent: urgent}, start)
	}

	project := mission.ProjectName()
	req := conflict.Requirements{
		Location:      mission.Location,
		StartDate:     mission.StartDate,
		EndDate:       mission.EndDate,
		RequiredCerts: mission.RequiredCerts,
	}
	if conflicts := c.validator.Check(m.Pilot, m.Drone, project, req); len(conflicts) > 0 {
		c.log.Warnf("mission %s blocked by %d conflicts", mission.MissionID, len(conflicts))
		c.publish(events.ConflictEvent{
			AttemptID: attemptID,
			MissionID: mission.MissionID,
			Pilot:     m.Pilot.Name,
			Drone:     m.Drone.DroneID,
			Conflicts: conflicts,
			Time:      time.Now(),
		})
		return c.finish(Result{
			Outcome:   OutcomeConflict,
			AttemptID: attemptID,
			MissionID: mission.MissionID,
			Project:   project,
			Pilot:     m.Pilot.Name,
			Drone:     m.Drone.DroneID,
			Conflicts: conflicts,
			Urgent:    urgent,
		}, start)
	}

	// Last-moment recheck: another writer may have resolved the mission
	// while we were matching. Without a conditional update on the store
	// this narrows the double-assignment window, it cannot close it.
	fresh, err := c.store.Missions(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("recheck mission: %w", err)
	}
	if cur, ok := findMission(fresh, missionID); ok && cur.Resolved() {
		c.log.Warnf("mission %s was resolved concurrently, aborting commit", mission.MissionID)
		return c.finish(Result{
			Outcome:       OutcomeAlreadyResolved,
			AttemptID:     attemptID,
			MissionID:     mission.MissionID,
			CurrentStatus: cur.Status,
			Urgent:        urgent,
		}, start)
	}

	commit := NewCommit(mission, m.Pilot, m.Drone)
	if err := commit.Run(ctx, c.store); err != nil {
		cerr := &CommitError{
			AttemptID: attemptID,
			MissionID: mission.MissionID,
			Commit:    commit,
			Failed:    commit.Pending()[0],
			Err:       err,
		}
		c.log.Errorf("partial commit for mission %s: %v", mission.MissionID, err)
		c.record(metrics.AssignmentRecord{
			AttemptID: attemptID,
			MissionID: mission.MissionID,
			Outcome:   "commit_failed",
			Pilot:     m.Pilot.Name,
			Drone:     m.Drone.DroneID,
			Urgent:    urgent,
			Duration:  time.Since(start),
			Time:      time.Now(),
		})
		return Result{}, cerr
	}

	res := Result{
		Outcome:   OutcomeAssigned,
		AttemptID: attemptID,
		MissionID: mission.MissionID,
		Project:   project,
		Pilot:     m.Pilot.Name,
		Drone:     m.Drone.DroneID,
		Location:  mission.Location,
		StartDate: mission.StartDate,
		EndDate:   mission.EndDate,
		Reason:    m.Reason,
		Urgent:    urgent,
	}
	c.log.Infof("mission %s assigned: pilot=%s drone=%s (%s)", res.MissionID, res.Pilot, res.Drone, res.Reason)
	c.publish(events.AssignedEvent{
		AttemptID: attemptID,
		MissionID: res.MissionID,
		Project:   res.Project,
		Pilot:     res.Pilot,
		Drone:     res.Drone,
		Reason:    res.Reason,
		Urgent:    urgent,
		Time:      time.Now(),
	})
	if c.notifier != nil {
		notice := Notice{
			AttemptID: attemptID,
			MissionID: res.MissionID,
			Project:   res.Project,
			Pilot:     res.Pilot,
			Drone:     res.Drone,
			Location:  res.Location,
			Reason:    res.Reason,
			Urgent:    urgent,
		}
		if err := c.notifier.NotifyAssigned(ctx, notice); err != nil {
			c.log.Errorf("assignment notification failed: %v", err)
		}
	}
	return c.finish(res, start)
}

// Validate runs the conflict rules on an explicit pairing without touching
// the store. Exposed for pre-flight checks.
func (c *Coordinator) Validate(pilot model.Pilot, drone model.Drone, project string, req conflict.Requirements) []conflict.Conflict {
	return c.validator.Check(pilot, drone, project, req)
}

func (c *Coordinator) finish(res Result, start time.Time) (Result, error) {
	c.record(metrics.AssignmentRecord{
		AttemptID: res.AttemptID,
		MissionID: res.MissionID,
		Outcome:   res.Outcome.String(),
		Pilot:     res.Pilot,
		Drone:     res.Drone,
		Urgent:    res.Urgent,
		Conflicts: len(res.Conflicts),
		Duration:  time.Since(start),
		Time:      time.Now(),
	})
	return res, nil
}

func (c *Coordinator) record(rec metrics.AssignmentRecord) {
	if err := c.sink.RecordAssignment(rec); err != nil {
		c.log.Errorf("metrics error: %v", err)
	}
}

func (c *Coordinator) publish(ev eventbus.Event) {
	if c.bus != nil {
		c.bus.Publish(ev)
	}
}

func findMission(missions []model.Mission, id string) (model.Mission, bool) {
	for _, m := range missions {
		if model.SameText(m.MissionID, id) {
			return m, true
		}
	}
	return model.Mission{}, false
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
