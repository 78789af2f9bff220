package missions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skyops/dronecoord/core/assign"
	"github.com/skyops/dronecoord/core/conflict"
	"github.com/skyops/dronecoord/core/model"
	"github.com/skyops/dronecoord/core/roster"
)

type stubAssigner struct {
	res assign.Result
	err error
	got struct {
		missionID string
		urgent    bool
	}
}

func (s *stubAssigner) Assign(_ context.Context, missionID string, urgent bool) (assign.Result, error) {
	s.got.missionID = missionID
	s.got.urgent = urgent
	return s.res, s.err
}

func TestAssignHandler_Success(t *testing.T) {
	a := &stubAssigner{res: assign.Result{Outcome: assign.OutcomeAssigned, MissionID: "M001", Pilot: "Ravi", Drone: "D001"}}
	h := NewAssignHandler(a)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/missions/assign", strings.NewReader(`{"mission_id":"M001","urgent":true}`))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if a.got.missionID != "M001" || !a.got.urgent {
		t.Fatalf("request not forwarded: %+v", a.got)
	}
	var out assign.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Pilot != "Ravi" || out.Drone != "D001" {
		t.Fatalf("unexpected body %#v", out)
	}
}

func TestAssignHandler_NotFound(t *testing.T) {
	a := &stubAssigner{res: assign.Result{Outcome: assign.OutcomeNotFound, MissionID: "M999"}}
	h := NewAssignHandler(a)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/missions/assign", strings.NewReader(`{"mission_id":"M999"}`))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestAssignHandler_InvalidInput(t *testing.T) {
	a := &stubAssigner{err: assign.ErrInvalidInput}
	h := NewAssignHandler(a)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/missions/assign", strings.NewReader(`{"mission_id":""}`))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestAssignHandler_BadBody(t *testing.T) {
	h := NewAssignHandler(&stubAssigner{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/missions/assign", strings.NewReader("not json"))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestAssignHandler_MethodNotAllowed(t *testing.T) {
	h := NewAssignHandler(&stubAssigner{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/missions/assign", nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestAssignHandler_TransportError(t *testing.T) {
	a := &stubAssigner{err: &roster.TransportError{Op: "read pilots", Err: errors.New("boom")}}
	h := NewAssignHandler(a)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/missions/assign", strings.NewReader(`{"mission_id":"M001"}`))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestAssignHandler_PartialCommit(t *testing.T) {
	commit := assign.NewCommit(
		model.Mission{MissionID: "M001"},
		model.Pilot{Name: "Ravi"},
		model.Drone{DroneID: "D001"},
	)
	a := &stubAssigner{err: &assign.CommitError{
		AttemptID: "att-1",
		MissionID: "M001",
		Commit:    commit,
		Failed:    "mission.assigned_pilot",
		Err:       errors.New("write failed"),
	}}
	h := NewAssignHandler(a)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/missions/assign", strings.NewReader(`{"mission_id":"M001"}`))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status %d", rr.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["mission_id"] != "M001" || out["failed"] != "mission.assigned_pilot" {
		t.Fatalf("partial commit report missing fields: %v", out)
	}
}

type stubValidator struct {
	conflicts []conflict.Conflict
}

func (s stubValidator) Validate(model.Pilot, model.Drone, string, conflict.Requirements) []conflict.Conflict {
	return s.conflicts
}

func TestValidateHandler_Feasible(t *testing.T) {
	h := NewValidateHandler(stubValidator{})
	rr := httptest.NewRecorder()
	body := `{"pilot":{"Name":"Ravi"},"drone":{"DroneID":"D001"},"project":"P1","requirements":{}}`
	req := httptest.NewRequest("POST", "/api/missions/validate", strings.NewReader(body))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out validateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Feasible || len(out.Conflicts) != 0 {
		t.Fatalf("unexpected response %#v", out)
	}
}

func TestValidateHandler_Conflicts(t *testing.T) {
	h := NewValidateHandler(stubValidator{conflicts: []conflict.Conflict{
		{Rule: conflict.RuleMaintenance, Description: "drone D001 is under maintenance"},
	}})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/missions/validate", strings.NewReader(`{}`))
	h.ServeHTTP(rr, req)
	var out validateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Feasible || len(out.Conflicts) != 1 {
		t.Fatalf("unexpected response %#v", out)
	}
}
