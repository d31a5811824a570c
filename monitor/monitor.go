// Package monitor exposes the live state of a controller over HTTP. It
// tracks the controller through observer callbacks and serves the latest
// snapshot as JSON, so dashboards never touch the control loop directly.
package monitor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/crosslight/crosslight"
)

// StateResponse is the JSON document served for the intersection state.
type StateResponse struct {
	ControllerID        string `json:"controller_id"`
	Phase               string `json:"phase"`
	NSCount             int    `json:"ns_count"`
	EWCount             int    `json:"ew_count"`
	PedestrianRequested bool   `json:"pedestrian_requested"`
	Tick                int64  `json:"tick"`
}

// Monitor keeps the most recent controller snapshot and serves it over
// HTTP. It implements crosslight.ExtendedObserver; attach it with
// Controller.AddObserver before calling Run.
type Monitor struct {
	crosslight.BaseObserver

	mu           sync.RWMutex
	controllerID string
	latest       crosslight.Snapshot

	addr   string
	logger *slog.Logger
	server *http.Server
}

// New creates a monitor serving on addr. A nil logger falls back to
// slog.Default().
func New(addr, controllerID string, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Monitor{
		controllerID: controllerID,
		addr:         addr,
		logger:       logger,
	}
}

// OnPhaseEnter refreshes the published snapshot.
func (m *Monitor) OnPhaseEnter(phase crosslight.Phase, snap crosslight.Snapshot) {
	m.store(snap)
}

// OnPhaseExit refreshes the published snapshot.
func (m *Monitor) OnPhaseExit(phase crosslight.Phase, snap crosslight.Snapshot) {
	m.store(snap)
}

// OnTick refreshes the published snapshot once per tick.
func (m *Monitor) OnTick(phase crosslight.Phase, remaining int, snap crosslight.Snapshot) {
	m.store(snap)
}

// OnVehicleCounted refreshes the published snapshot.
func (m *Monitor) OnVehicleCounted(road crosslight.Road, count int, snap crosslight.Snapshot) {
	m.store(snap)
}

// OnPedestrianRequested refreshes the published snapshot.
func (m *Monitor) OnPedestrianRequested(snap crosslight.Snapshot) {
	m.store(snap)
}

func (m *Monitor) store(snap crosslight.Snapshot) {
	m.mu.Lock()
	m.latest = snap
	m.mu.Unlock()
}

// State returns the most recent snapshot as a response document.
func (m *Monitor) State() StateResponse {
	m.mu.RLock()
	snap := m.latest
	m.mu.RUnlock()

	return StateResponse{
		ControllerID:        m.controllerID,
		Phase:               snap.Phase.String(),
		NSCount:             snap.NSCount,
		EWCount:             snap.EWCount,
		PedestrianRequested: snap.PedRequested,
		Tick:                snap.Tick,
	}
}

// Router builds the HTTP route table served by the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/state", m.handleState).Methods(http.MethodGet)
	return r
}

func (m *Monitor) handleState(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m.State()); err != nil {
		m.logger.Error("monitor: cannot encode state", "err", err)
	}
}

// Start begins serving in a background goroutine. It returns the bound
// address, which is useful when addr requested an ephemeral port.
func (m *Monitor) Start() (string, error) {
	listener, err := net.Listen("tcp", m.addr)
	if err != nil {
		return "", crosslight.NewDriverError("monitor", "cannot listen on "+m.addr, err)
	}

	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := m.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			m.logger.Error("monitor: server stopped", "err", err)
		}
	}()

	m.logger.Info("monitor: serving", "addr", listener.Addr().String())

	return listener.Addr().String(), nil
}

// Shutdown stops the HTTP server, waiting for in-flight requests.
func (m *Monitor) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}
