// Package roster exposes roster lookups and free-text requests over HTTP.
package roster

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/skyops/dronecoord/core/model"
	"github.com/skyops/dronecoord/core/query"
	"github.com/skyops/dronecoord/core/roster"
)

// Interpreter answers free-text roster requests. *query.Interpreter
// satisfies it.
type Interpreter interface {
	Handle(ctx context.Context, text string) query.Reply
}

// NewPilotsHandler returns an HTTP handler serving GET /api/pilots/available.
// Optional filters: ?location=Pune&certs=Night%20Ops,Thermal.
func NewPilotsHandler(store roster.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		pilots, err := store.Pilots(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		location := r.URL.Query().Get("location")
		certs := model.SplitList(r.URL.Query().Get("certs"))
		out := make([]model.Pilot, 0)
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
			out = append(out, p)
		}
		writeJSON(w, out)
	})
}

// NewDronesHandler returns an HTTP handler serving GET /api/drones/available.
// Optional filters: ?location=Pune&capability=thermal.
func NewDronesHandler(store roster.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		drones, err := store.Drones(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		location := r.URL.Query().Get("location")
		capability := r.URL.Query().Get("capability")
		out := make([]model.Drone, 0)
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
			out = append(out, d)
		}
		writeJSON(w, out)
	})
}

type queryRequest struct {
	Text string `json:"text"`
}

// NewQueryHandler returns an HTTP handler serving POST /api/query. The body
// carries a free-text request ({"text": "assign mission M001"}) and the
// response is the interpreter's structured reply.
func NewQueryHandler(interp Interpreter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		writeJSON(w, interp.Handle(r.Context(), req.Text))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
