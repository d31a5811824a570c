// Package memdriver provides in-memory hardware implementations. They
// back the default runtime driver on machines without GPIO and double as
// manual test rigs: buttons can be pressed programmatically while signal
// and display output goes to the log.
package memdriver

import (
	"log/slog"
	"sync"

	"github.com/crosslight/crosslight"
)

// Buttons is a thread-safe in-memory button panel. The zero value has
// every button released.
type Buttons struct {
	mu     sync.Mutex
	levels crosslight.ButtonLevels
}

// NewButtons returns a panel with all buttons released.
func NewButtons() *Buttons {
	return &Buttons{levels: crosslight.ReleasedLevels()}
}

// ReadLevels implements crosslight.ButtonReader.
func (b *Buttons) ReadLevels() crosslight.ButtonLevels {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.levels
}

// PressNS holds the north-south vehicle button down.
func (b *Buttons) PressNS() { b.set(func(l *crosslight.ButtonLevels) { l.NS = crosslight.Low }) }

// PressEW holds the east-west vehicle button down.
func (b *Buttons) PressEW() { b.set(func(l *crosslight.ButtonLevels) { l.EW = crosslight.Low }) }

// PressPed holds the pedestrian button down.
func (b *Buttons) PressPed() { b.set(func(l *crosslight.ButtonLevels) { l.Ped = crosslight.Low }) }

// ReleaseAll releases every button.
func (b *Buttons) ReleaseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.levels = crosslight.ReleasedLevels()
}

func (b *Buttons) set(apply func(*crosslight.ButtonLevels)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	apply(&b.levels)
}

// Signals logs every signal state change.
type Signals struct {
	mu     sync.Mutex
	logger *slog.Logger
	last   crosslight.SignalState
}

// NewSignals returns a logging signal driver. A nil logger falls back to
// slog.Default().
func NewSignals(logger *slog.Logger) *Signals {
	if logger == nil {
		logger = slog.Default()
	}
	return &Signals{logger: logger}
}

// Set implements crosslight.SignalDriver.
func (s *Signals) Set(state crosslight.SignalState) {
	s.mu.Lock()
	s.last = state
	s.mu.Unlock()

	s.logger.Info("signals", "state", state.String())
}

// Last returns the most recently applied state.
func (s *Signals) Last() crosslight.SignalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Display logs every display update.
type Display struct {
	mu     sync.Mutex
	logger *slog.Logger
	line1  string
	line2  string
}

// NewDisplay returns a logging display. A nil logger falls back to
// slog.Default().
func NewDisplay(logger *slog.Logger) *Display {
	if logger == nil {
		logger = slog.Default()
	}
	return &Display{logger: logger}
}

// ShowLines implements crosslight.Display.
func (d *Display) ShowLines(line1, line2 string) {
	d.mu.Lock()
	d.line1, d.line2 = line1, line2
	d.mu.Unlock()

	d.logger.Info("display", "line1", line1, "line2", line2)
}

// Lines returns the most recently displayed lines.
func (d *Display) Lines() (string, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.line1, d.line2
}

// Hardware bundles the in-memory implementations into a hardware set
// ready for crosslight.New.
func Hardware(logger *slog.Logger) (crosslight.Hardware, *Buttons) {
	buttons := NewButtons()
	return crosslight.Hardware{
		Buttons: buttons,
		Signals: NewSignals(logger),
		Display: NewDisplay(logger),
	}, buttons
}
