package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/dronecoord/core/roster"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{ScriptURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestPilotsDecode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Pilots", r.URL.Query().Get("sheet"))
		_, _ = w.Write([]byte(`[
			{"name":"Ravi","location":"Bangalore","status":"Available","certifications":"DGCA, BVLOS","current_assignment":"-"},
			{"name":"Anita","location":"Mumbai","status":"Busy","certifications":["DGCA","Night Ops"],"current_assignment":"PRJ002"}
		]`))
	})

	pilots, err := c.Pilots(context.Background())
	require.NoError(t, err)
	require.Len(t, pilots, 2)
	assert.Equal(t, []string{"DGCA", "BVLOS"}, pilots[0].Certifications, "delimited string cells normalize to a set")
	assert.Equal(t, []string{"DGCA", "Night Ops"}, pilots[1].Certifications, "array cells normalize to a set")
	assert.Equal(t, "PRJ002", pilots[1].CurrentAssignment)
}

func TestDronesDecodeNumericID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"drone_id":1001,"model":"MX-4","location":"Pune","status":"Ready","capabilities":"thermal,rgb"}]`))
	})

	drones, err := c.Drones(context.Background())
	require.NoError(t, err)
	require.Len(t, drones, 1)
	assert.Equal(t, "1001", drones[0].DroneID, "numeric cells coerce to strings")
	assert.True(t, drones[0].HasCapability("thermal"))
}

func TestMissionsDecode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Missions", r.URL.Query().Get("sheet"))
		_, _ = w.Write([]byte(`[{"mission_id":"M001","project":"PRJ003","location":"Bangalore","required_certs":"DGCA","required_capability":"thermal","start_date":"2026-02-10","end_date":"2026-02-12","status":"Open","assigned_pilot":"","assigned_drone":""}]`))
	})

	missions, err := c.Missions(context.Background())
	require.NoError(t, err)
	require.Len(t, missions, 1)
	assert.Equal(t, "M001", missions[0].MissionID)
	assert.Equal(t, []string{"DGCA"}, missions[0].RequiredCerts)
	assert.False(t, missions[0].Resolved())
}

func TestUpdateFieldPayload(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})

	err := c.UpdateField(context.Background(), roster.TablePilots, "name", "Ravi", "status", "Assigned(M001)")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"sheet":        "Pilots",
		"keyColumn":    "name",
		"keyValue":     "Ravi",
		"updateColumn": "status",
		"updateValue":  "Assigned(M001)",
	}, got)
}

func TestErrorMapping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "script error", http.StatusInternalServerError)
	})

	_, err := c.Pilots(context.Background())
	var terr *roster.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, terr.Op, "read Pilots")

	err = c.UpdateField(context.Background(), roster.TableDrones, "drone_id", "D001", "status", "Busy")
	require.ErrorAs(t, err, &terr)
}

func TestMalformedPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	})

	_, err := c.Missions(context.Background())
	var terr *roster.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, err.Error(), "malformed payload")
}

func TestConfigValidation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err, "script url is mandatory")
}
