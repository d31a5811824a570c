// Package recorder persists controller events into a SQLite database so
// that a run can be analyzed offline. It subscribes to the controller as
// an observer; the controller itself stays storage-free.
package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/crosslight/crosslight"
)

const defaultBatchSize = 256

type phaseRow struct {
	id           string
	tick         int64
	event        string
	phase        string
	nsCount      int
	ewCount      int
	pedRequested bool
}

type buttonRow struct {
	id       string
	tick     int64
	kind     string
	road     string
	accepted bool
	count    int
}

// Recorder buffers controller events and writes them to SQLite in
// batches. It implements crosslight.ExtendedObserver; attach it with
// Controller.AddObserver. All exported methods are safe for concurrent
// use, since Flush may be called from outside the control loop.
type Recorder struct {
	crosslight.BaseObserver

	mu           sync.Mutex
	db           *sql.DB
	ownsDB       bool
	controllerID string
	batchSize    int

	phases  []phaseRow
	buttons []buttonRow
}

// New opens (or creates) a SQLite database at path and prepares the event
// tables. A Flush is registered to run at process exit.
func New(path, controllerID string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("recorder: cannot open %s: %w", path, err)
	}

	r, err := NewWithDB(db, controllerID)
	if err != nil {
		db.Close()
		return nil, err
	}
	r.ownsDB = true

	return r, nil
}

// NewWithDB builds a recorder on an existing database handle. The caller
// keeps ownership of the handle.
func NewWithDB(db *sql.DB, controllerID string) (*Recorder, error) {
	r := &Recorder{
		db:           db,
		controllerID: controllerID,
		batchSize:    defaultBatchSize,
	}

	if err := r.createTables(); err != nil {
		return nil, err
	}

	atexit.Register(func() { _ = r.Flush() })

	return r, nil
}

func (r *Recorder) createTables() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS phase_events (
			id TEXT PRIMARY KEY,
			controller_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			event TEXT NOT NULL,
			phase TEXT NOT NULL,
			ns_count INTEGER NOT NULL,
			ew_count INTEGER NOT NULL,
			ped_requested INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS button_events (
			id TEXT PRIMARY KEY,
			controller_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			road TEXT NOT NULL,
			accepted INTEGER NOT NULL,
			count INTEGER NOT NULL
		)`,
	}

	for _, stmt := range schema {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("recorder: cannot create tables: %w", err)
		}
	}

	return nil
}

// OnPhaseEnter records a phase entry.
func (r *Recorder) OnPhaseEnter(phase crosslight.Phase, snap crosslight.Snapshot) {
	r.addPhaseRow("enter", phase, snap)
}

// OnPhaseExit records a phase completion.
func (r *Recorder) OnPhaseExit(phase crosslight.Phase, snap crosslight.Snapshot) {
	r.addPhaseRow("exit", phase, snap)
}

// OnVehicleCounted records an accepted vehicle press.
func (r *Recorder) OnVehicleCounted(road crosslight.Road, count int, snap crosslight.Snapshot) {
	r.addButtonRow("vehicle", road.String(), true, count, snap)
}

// OnCountRejected records a vehicle press ignored because the road was
// not red.
func (r *Recorder) OnCountRejected(road crosslight.Road, snap crosslight.Snapshot) {
	r.addButtonRow("vehicle", road.String(), false, 0, snap)
}

// OnPedestrianRequested records a pedestrian press.
func (r *Recorder) OnPedestrianRequested(snap crosslight.Snapshot) {
	r.addButtonRow("pedestrian", "", true, 0, snap)
}

func (r *Recorder) addPhaseRow(event string, phase crosslight.Phase, snap crosslight.Snapshot) {
	r.mu.Lock()
	r.phases = append(r.phases, phaseRow{
		id:           xid.New().String(),
		tick:         snap.Tick,
		event:        event,
		phase:        phase.String(),
		nsCount:      snap.NSCount,
		ewCount:      snap.EWCount,
		pedRequested: snap.PedRequested,
	})
	full := len(r.phases) >= r.batchSize
	r.mu.Unlock()

	if full {
		_ = r.Flush()
	}
}

func (r *Recorder) addButtonRow(kind, road string, accepted bool, count int, snap crosslight.Snapshot) {
	r.mu.Lock()
	r.buttons = append(r.buttons, buttonRow{
		id:       xid.New().String(),
		tick:     snap.Tick,
		kind:     kind,
		road:     road,
		accepted: accepted,
		count:    count,
	})
	full := len(r.buttons) >= r.batchSize
	r.mu.Unlock()

	if full {
		_ = r.Flush()
	}
}

// Flush writes all buffered rows to the database in one transaction.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	phases := r.phases
	buttons := r.buttons
	r.phases = nil
	r.buttons = nil
	r.mu.Unlock()

	if len(phases) == 0 && len(buttons) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("recorder: cannot begin transaction: %w", err)
	}

	for _, p := range phases {
		_, err := tx.Exec(
			`INSERT INTO phase_events
				(id, controller_id, tick, event, phase, ns_count, ew_count, ped_requested)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.id, r.controllerID, p.tick, p.event, p.phase, p.nsCount, p.ewCount, p.pedRequested,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("recorder: cannot insert phase event: %w", err)
		}
	}

	for _, b := range buttons {
		_, err := tx.Exec(
			`INSERT INTO button_events
				(id, controller_id, tick, kind, road, accepted, count)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
			b.id, r.controllerID, b.tick, b.kind, b.road, b.accepted, b.count,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("recorder: cannot insert button event: %w", err)
		}
	}

	return tx.Commit()
}

// Close flushes pending rows and closes the database if the recorder
// opened it.
func (r *Recorder) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}
	if r.ownsDB {
		return r.db.Close()
	}
	return nil
}
