package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/banshee-data/pitchsim/internal/db"
	"github.com/banshee-data/pitchsim/internal/sim"
)

// TickState is the most recent published world state, tagged with the tick
// and the robot whose frame it was rendered in.
type TickState struct {
	Tick     int64             `json:"tick"`
	Robot    string            `json:"robot"`
	Snapshot sim.WorldSnapshot `json:"snapshot"`
}

// WebServer handles the HTTP interface for monitoring a simulation run.
// It provides endpoints for health checks, the latest world state, a live
// websocket stream, and debug charts.
type WebServer struct {
	address string
	server  *http.Server
	db      *db.DB
	runID   string

	mu     sync.RWMutex
	latest *TickState
	subs   map[chan TickState]struct{}
	subsMu sync.Mutex
}

// WebServerConfig contains configuration options for the web server
type WebServerConfig struct {
	Address string
	DB      *db.DB
	RunID   string
}

// NewWebServer creates a new web server with the provided configuration
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address: config.Address,
		db:      config.DB,
		runID:   config.RunID,
		subs:    make(map[chan TickState]struct{}),
	}

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}

	return ws
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Publish records the latest world state and fans it out to stream
// subscribers. Slow subscribers are skipped, not waited for.
func (ws *WebServer) Publish(tick int64, robot string, snap sim.WorldSnapshot) {
	state := TickState{Tick: tick, Robot: robot, Snapshot: snap}

	ws.mu.Lock()
	ws.latest = &state
	ws.mu.Unlock()

	ws.subsMu.Lock()
	for ch := range ws.subs {
		select {
		case ch <- state:
		default:
		}
	}
	ws.subsMu.Unlock()
}

// Latest returns the most recently published state, or nil before the
// first publish.
func (ws *WebServer) Latest() *TickState {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.latest
}

// Start begins the HTTP server in a goroutine and handles graceful shutdown
func (ws *WebServer) Start(ctx context.Context) error {
	// Start server in a goroutine so it doesn't block
	go func() {
		log.Printf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for context cancellation to shut down server
	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		// Force close the server if graceful shutdown fails
		if err := ws.server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("HTTP server routine stopped")
	return nil
}

// setupRoutes configures the HTTP routes and handlers
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/api/sim/state", ws.handleState)
	mux.HandleFunc("/api/sim/runs", ws.handleRuns)
	mux.HandleFunc("/api/sim/stream", ws.handleStream)
	mux.HandleFunc("/debug/pitch", ws.handlePitchChart)

	if ws.db != nil {
		ws.db.AttachAdminRoutes(mux)
	}

	return mux
}

// handleHealth handles the health check endpoint
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "ok", "service": "pitchsim", "run_id": "%s", "timestamp": "%s"}`,
		ws.runID, time.Now().UTC().Format(time.RFC3339))
}

// handleState returns the latest published world state as JSON.
func (ws *WebServer) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	state := ws.Latest()
	if state == nil {
		ws.writeJSONError(w, http.StatusNotFound, "no state published yet")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// handleRuns lists recorded runs from the database.
func (ws *WebServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if ws.db == nil {
		ws.writeJSONError(w, http.StatusInternalServerError, "no database configured for run lookup")
		return
	}

	runs, err := ws.db.Runs()
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("get runs: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}
