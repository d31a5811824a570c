package crosslight

import (
	"sync"
	"testing"
)

// FakeButtons is a scripted ButtonReader for tests. Each ReadLevels call
// consumes one entry of the script; past the end every line reads
// released. One script entry corresponds to one sampling sub-interval.
type FakeButtons struct {
	seq []ButtonLevels
	pos int
}

// NewFakeButtons creates a fake reader with the given script.
func NewFakeButtons(seq ...ButtonLevels) *FakeButtons {
	return &FakeButtons{seq: seq}
}

// ReadLevels returns the next scripted reading.
func (b *FakeButtons) ReadLevels() ButtonLevels {
	if b.pos < len(b.seq) {
		v := b.seq[b.pos]
		b.pos++
		return v
	}
	return ReleasedLevels()
}

// PressAtSample schedules the given reading at one sample index, padding
// the script with released readings up to that point.
func (b *FakeButtons) PressAtSample(idx int, levels ButtonLevels) {
	for len(b.seq) <= idx {
		b.seq = append(b.seq, ReleasedLevels())
	}
	b.seq[idx] = levels
}

// HoldRange holds the given reading across [from, to) sample indexes,
// modelling a button kept down for many sampling iterations.
func (b *FakeButtons) HoldRange(from, to int, levels ButtonLevels) {
	for i := from; i < to; i++ {
		b.PressAtSample(i, levels)
	}
}

// PressNS returns a reading with only the NS vehicle button down.
func PressNS() ButtonLevels {
	return ButtonLevels{NS: Low, EW: High, Ped: High}
}

// PressEW returns a reading with only the EW vehicle button down.
func PressEW() ButtonLevels {
	return ButtonLevels{NS: High, EW: Low, Ped: High}
}

// PressPed returns a reading with only the pedestrian button down.
func PressPed() ButtonLevels {
	return ButtonLevels{NS: High, EW: High, Ped: Low}
}

// DisplayLines is one rendered display update.
type DisplayLines struct {
	Line1 string
	Line2 string
}

// RecordingDisplay captures every display update in order.
type RecordingDisplay struct {
	Lines []DisplayLines
}

// ShowLines appends the update to the recording.
func (d *RecordingDisplay) ShowLines(line1, line2 string) {
	d.Lines = append(d.Lines, DisplayLines{Line1: line1, Line2: line2})
}

// Last returns the most recent update, or zero lines if none happened.
func (d *RecordingDisplay) Last() DisplayLines {
	if len(d.Lines) == 0 {
		return DisplayLines{}
	}
	return d.Lines[len(d.Lines)-1]
}

// RecordingSignals captures every signal state change in order.
type RecordingSignals struct {
	States []SignalState
}

// Set appends the state to the recording.
func (s *RecordingSignals) Set(state SignalState) {
	s.States = append(s.States, state)
}

// Last returns the most recent state, or SignalAllRed if none was set.
func (s *RecordingSignals) Last() SignalState {
	if len(s.States) == 0 {
		return SignalAllRed
	}
	return s.States[len(s.States)-1]
}

// TestObserver is a mock observer for testing that captures all observer
// events.
type TestObserver struct {
	mutex       sync.RWMutex
	PhaseEnters []PhaseEvent
	PhaseExits  []PhaseEvent
	Ticks       []TickEvent
	Counted     []CountEvent
	Rejected    []RejectEvent
	Resets      []ResetEvent
	PedRequests []Snapshot
	PedServed   []Snapshot
	Errors      []error
}

type PhaseEvent struct {
	Phase Phase
	Snap  Snapshot
}

type TickEvent struct {
	Phase     Phase
	Remaining int
	Snap      Snapshot
}

type CountEvent struct {
	Road  Road
	Count int
	Snap  Snapshot
}

type RejectEvent struct {
	Road Road
	Snap Snapshot
}

type ResetEvent struct {
	Road   Road
	Served int
	Snap   Snapshot
}

// NewTestObserver creates a new test observer.
func NewTestObserver() *TestObserver {
	return &TestObserver{}
}

func (o *TestObserver) OnPhaseEnter(phase Phase, snap Snapshot) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PhaseEnters = append(o.PhaseEnters, PhaseEvent{Phase: phase, Snap: snap})
}

func (o *TestObserver) OnPhaseExit(phase Phase, snap Snapshot) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PhaseExits = append(o.PhaseExits, PhaseEvent{Phase: phase, Snap: snap})
}

func (o *TestObserver) OnTick(phase Phase, remaining int, snap Snapshot) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Ticks = append(o.Ticks, TickEvent{Phase: phase, Remaining: remaining, Snap: snap})
}

func (o *TestObserver) OnVehicleCounted(road Road, count int, snap Snapshot) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Counted = append(o.Counted, CountEvent{Road: road, Count: count, Snap: snap})
}

func (o *TestObserver) OnCountRejected(road Road, snap Snapshot) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Rejected = append(o.Rejected, RejectEvent{Road: road, Snap: snap})
}

func (o *TestObserver) OnCountReset(road Road, served int, snap Snapshot) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Resets = append(o.Resets, ResetEvent{Road: road, Served: served, Snap: snap})
}

func (o *TestObserver) OnPedestrianRequested(snap Snapshot) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PedRequests = append(o.PedRequests, snap)
}

func (o *TestObserver) OnPedestrianServed(snap Snapshot) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PedServed = append(o.PedServed, snap)
}

func (o *TestObserver) OnError(err error, snap Snapshot) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

// EnteredPhases returns the sequence of phases entered so far.
func (o *TestObserver) EnteredPhases() []Phase {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	phases := make([]Phase, len(o.PhaseEnters))
	for i, e := range o.PhaseEnters {
		phases[i] = e.Phase
	}
	return phases
}

// TickCount returns the number of countdown units observed for a phase
// since the observer was attached.
func (o *TestObserver) TickCount(phase Phase) int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	n := 0
	for _, e := range o.Ticks {
		if e.Phase == phase {
			n++
		}
	}
	return n
}

// CreateTestController builds a controller on fake hardware with an
// instant tick source of one sample per tick, so sample indexes and tick
// indexes coincide in scripts.
func CreateTestController(t *testing.T, cfg Config, buttons *FakeButtons) (*Controller, *RecordingDisplay, *RecordingSignals) {
	t.Helper()

	display := &RecordingDisplay{}
	signals := &RecordingSignals{}

	c, err := New(cfg, Hardware{Buttons: buttons, Signals: signals, Display: display})
	if err != nil {
		t.Fatalf("Expected no error creating controller, got: %v", err)
	}
	c.WithTickSource(&InstantTicker{Samples: 1})

	return c, display, signals
}

// AssertPhase fails the test unless the controller is in the given phase.
func AssertPhase(t *testing.T, c *Controller, expected Phase) {
	t.Helper()
	if c.Phase() != expected {
		t.Errorf("Expected phase %s, got %s", expected, c.Phase())
	}
}

// AssertCount fails the test unless the road's count matches.
func AssertCount(t *testing.T, c *Controller, road Road, expected int) {
	t.Helper()
	if c.VehicleCount(road) != expected {
		t.Errorf("Expected %s count %d, got %d", road, expected, c.VehicleCount(road))
	}
}

// AssertLines fails the test unless the display update matches exactly.
func AssertLines(t *testing.T, got DisplayLines, line1, line2 string) {
	t.Helper()
	if got.Line1 != line1 || got.Line2 != line2 {
		t.Errorf("Expected display %q / %q, got %q / %q", line1, line2, got.Line1, got.Line2)
	}
}
