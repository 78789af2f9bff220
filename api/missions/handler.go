// Package missions exposes assignment attempts and pre-flight conflict
// checks over HTTP.
package missions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skyops/dronecoord/core/assign"
	"github.com/skyops/dronecoord/core/conflict"
	"github.com/skyops/dronecoord/core/model"
	"github.com/skyops/dronecoord/core/roster"
)

// Assigner runs an assignment attempt. *assign.Coordinator satisfies it.
type Assigner interface {
	Assign(ctx context.Context, missionID string, urgent bool) (assign.Result, error)
}

// Validator checks an explicit pairing without touching the store.
type Validator interface {
	Validate(pilot model.Pilot, drone model.Drone, project string, req conflict.Requirements) []conflict.Conflict
}

type assignRequest struct {
	MissionID string `json:"mission_id"`
	Urgent    bool   `json:"urgent"`
}

// NewAssignHandler returns an HTTP handler serving POST /api/missions/assign.
// Business outcomes are reported in the result body; only a missing mission
// changes the status code.
func NewAssignHandler(a Assigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req assignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		res, err := a.Assign(r.Context(), req.MissionID, req.Urgent)
		if err != nil {
			writeAssignError(w, err)
			return
		}
		code := http.StatusOK
		if res.Outcome == assign.OutcomeNotFound {
			code = http.StatusNotFound
		}
		writeJSON(w, code, res)
	})
}

// writeAssignError maps attempt failures onto status codes. A partial commit
// keeps its per-write breakdown in the body so the caller can reconcile.
func writeAssignError(w http.ResponseWriter, err error) {
	var cerr *assign.CommitError
	var terr *roster.TransportError
	switch {
	case errors.As(err, &cerr):
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":      cerr.Error(),
			"attempt_id": cerr.AttemptID,
			"mission_id": cerr.MissionID,
			"completed":  cerr.Commit.Completed(),
			"failed":     cerr.Failed,
		})
	case errors.Is(err, assign.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &terr):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type validateRequest struct {
	Pilot        model.Pilot           `json:"pilot"`
	Drone        model.Drone           `json:"drone"`
	Project      string                `json:"project"`
	Requirements conflict.Requirements `json:"requirements"`
}

type validateResponse struct {
	Feasible  bool                `json:"feasible"`
	Conflicts []conflict.Conflict `json:"conflicts,omitempty"`
}

// NewValidateHandler returns an HTTP handler serving POST
// /api/missions/validate. It runs the conflict rules on the pairing given in
// the body and reports every violation at once.
func NewValidateHandler(v Validator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req validateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		conflicts := v.Validate(req.Pilot, req.Drone, req.Project, req.Requirements)
		writeJSON(w, http.StatusOK, validateResponse{
			Feasible:  len(conflicts) == 0,
			Conflicts: conflicts,
		})
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
