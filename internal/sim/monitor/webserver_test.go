package monitor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pitchsim/internal/sim"
	"github.com/banshee-data/pitchsim/internal/sim/geom"
)

func testState() sim.WorldSnapshot {
	return sim.WorldSnapshot{
		OwnPose: geom.Pose2{Translation: geom.Vector2{X: -1000, Y: 2000}, Rotation: 0.5},
		OwnTeamPlayers: []sim.PlayerSnapshot{
			{Number: 2, Pose: geom.Pose2{Translation: geom.Vector2{X: 100, Y: 200}}, Upright: true},
		},
		OpponentTeamPlayers: []sim.PlayerSnapshot{
			{Number: 1, Pose: geom.Pose2{Translation: geom.Vector2{X: -500, Y: 600}}, Upright: true},
		},
		Balls: []sim.BallState{{Position: geom.Vector3{X: 50, Y: -75, Z: 50}}},
	}
}

func TestHandleHealth(t *testing.T) {
	ws := NewWebServer(WebServerConfig{Address: ":0", RunID: "test-run"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status": "ok"`)
	assert.Contains(t, rec.Body.String(), "test-run")
}

func TestHandleStateBeforePublish(t *testing.T) {
	ws := NewWebServer(WebServerConfig{Address: ":0"})

	req := httptest.NewRequest(http.MethodGet, "/api/sim/state", nil)
	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublishAndState(t *testing.T) {
	ws := NewWebServer(WebServerConfig{Address: ":0"})
	ws.Publish(42, "robot21", testState())

	req := httptest.NewRequest(http.MethodGet, "/api/sim/state", nil)
	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var state TickState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, int64(42), state.Tick)
	assert.Equal(t, "robot21", state.Robot)
	assert.Equal(t, -1000.0, state.Snapshot.OwnPose.Translation.X)
	require.Len(t, state.Snapshot.Balls, 1)
}

func TestPublishReplacesLatest(t *testing.T) {
	ws := NewWebServer(WebServerConfig{Address: ":0"})
	ws.Publish(1, "robot1", testState())
	ws.Publish(2, "robot1", testState())

	state := ws.Latest()
	require.NotNil(t, state)
	assert.Equal(t, int64(2), state.Tick)
}

func TestHandlePitchChart(t *testing.T) {
	ws := NewWebServer(WebServerConfig{Address: ":0"})

	req := httptest.NewRequest(http.MethodGet, "/debug/pitch", nil)
	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ws.Publish(1, "robot1", testState())

	rec = httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "echarts")
}

func TestStreamDeliversPublishedStates(t *testing.T) {
	ws := NewWebServer(WebServerConfig{Address: ":0"})
	srv := httptest.NewServer(ws.setupRoutes())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sim/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	ws.Publish(7, "robot3", testState())

	var state TickState
	require.NoError(t, conn.ReadJSON(&state))
	assert.Equal(t, int64(7), state.Tick)
	assert.Equal(t, "robot3", state.Robot)
}
