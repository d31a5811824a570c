package crosslight

import (
	"context"

	"github.com/google/uuid"
)

// Hardware bundles the three collaborators the controller drives. All
// three are required.
type Hardware struct {
	Buttons ButtonReader
	Signals SignalDriver
	Display Display
}

// Controller owns every piece of mutable intersection state: the active
// phase, the two vehicle counts, the pedestrian request latch, and the
// logical tick counter. Nothing else writes these cells; the sampler and
// the sequencer both go through Controller methods, which keeps the
// single-writer-per-direction rule (sampler moves counts and the latch
// up, the sequencer moves them down) in one place.
//
// A Controller is single-threaded: Run, and everything it calls, executes
// on one goroutine with no preemption. Observers that hand state to other
// goroutines (such as the HTTP monitor) must copy what they need.
type Controller struct {
	id  string
	cfg Config

	phase        Phase
	nsCount      int
	ewCount      int
	pedRequested bool
	tick         int64

	sampler   *inputSampler
	signals   SignalDriver
	display   Display
	ticker    TickSource
	observers *ObserverManager
}

// New creates a controller for the given configuration and hardware. The
// tick source defaults to a BusyTicker with the configured tick shape;
// replace it with WithTickSource for simulation or tests.
func New(cfg Config, hw Hardware) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hw.Buttons == nil {
		return nil, NewConfigurationError("Hardware", "button reader is required")
	}
	if hw.Signals == nil {
		return nil, NewConfigurationError("Hardware", "signal driver is required")
	}
	if hw.Display == nil {
		return nil, NewConfigurationError("Hardware", "display is required")
	}

	c := &Controller{
		id:        uuid.New().String(),
		cfg:       cfg,
		phase:     PhaseNSGreen,
		signals:   hw.Signals,
		display:   hw.Display,
		ticker:    NewBusyTicker(cfg),
		observers: NewObserverManager(),
	}
	c.sampler = newInputSampler(c, hw.Buttons)

	return c, nil
}

// WithTickSource replaces the tick source. Must be called before Run.
func (c *Controller) WithTickSource(ts TickSource) *Controller {
	c.ticker = ts
	return c
}

// AddObserver registers an observer for controller events.
func (c *Controller) AddObserver(observer Observer) {
	c.observers.AddObserver(observer)
}

// RemoveObserver unregisters an observer.
func (c *Controller) RemoveObserver(observer Observer) {
	c.observers.RemoveObserver(observer)
}

// ID returns the unique identifier of this controller instance.
func (c *Controller) ID() string {
	return c.id
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Phase returns the active phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// VehicleCount returns the waiting-vehicle count of the given road.
func (c *Controller) VehicleCount(r Road) int {
	if r == RoadNS {
		return c.nsCount
	}
	return c.ewCount
}

// PedestrianRequested reports whether a crossing request is latched.
func (c *Controller) PedestrianRequested() bool {
	return c.pedRequested
}

// Snapshot returns a copy of the current state cells.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Phase:        c.phase,
		NSCount:      c.nsCount,
		EWCount:      c.ewCount,
		PedRequested: c.pedRequested,
		Tick:         c.tick,
	}
}

// Run drives the intersection forever: NS green, NS yellow, pedestrian if
// requested, EW green, EW yellow, pedestrian if requested, repeat. It
// returns only when ctx is cancelled, and cancellation is observed at
// inter-road boundaries only: a phase in progress always runs to its
// computed completion, and a green is never left without its yellow.
func (c *Controller) Run(ctx context.Context) error {
	c.signals.Set(SignalPedStop)
	c.display.ShowLines(formatStartupLines())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.runCycle(ctx); err != nil {
			return err
		}
	}
}

// runCycle executes one full cycle. The pedestrian step is not a phase of
// its own in the sequence: it only runs when the latch is set, and it sits
// between a road's yellow and the other road's green so a crossing is
// granted only when both roads are already stopped.
func (c *Controller) runCycle(ctx context.Context) error {
	c.runGreen(RoadNS)
	c.runYellow(RoadNS)
	c.runPedestrianIfRequested()

	if err := ctx.Err(); err != nil {
		return err
	}

	c.runGreen(RoadEW)
	c.runYellow(RoadEW)
	c.runPedestrianIfRequested()

	return ctx.Err()
}

// runGreen serves one road's green phase: duration computed from the
// road's accumulated count, per-unit countdown with live feedback, and
// the count reset to zero only after the phase has fully run.
func (c *Controller) runGreen(road Road) {
	c.enterPhase(road.GreenPhase())

	base, extra := c.cfg.GreenSplit(c.VehicleCount(road))
	total := base + extra

	c.signals.Set(greenSignal(road))

	for remaining := total; remaining > 0; remaining-- {
		line1, line2 := formatGreenLines(road, base, extra, remaining, c.VehicleCount(road.Other()))
		c.display.ShowLines(line1, line2)
		c.observers.NotifyTick(c.phase, remaining, c.Snapshot())
		c.advanceTick()
	}

	served := c.VehicleCount(road)
	c.setCount(road, 0)
	c.observers.NotifyCountReset(road, served, c.Snapshot())

	c.exitPhase(road.GreenPhase())
}

// runYellow serves one road's fixed-length yellow phase. Counts are not
// touched here.
func (c *Controller) runYellow(road Road) {
	c.enterPhase(road.YellowPhase())

	c.signals.Set(yellowSignal(road))

	for remaining := c.cfg.YellowSeconds; remaining > 0; remaining-- {
		line1, line2 := formatYellowLines(road, remaining, c.VehicleCount(road.Other()))
		c.display.ShowLines(line1, line2)
		c.observers.NotifyTick(c.phase, remaining, c.Snapshot())
		c.advanceTick()
	}

	c.exitPhase(road.YellowPhase())
}

// runPedestrianIfRequested serves a latched crossing request, then clears
// the latch. Presses arriving while the crossing is already green are
// absorbed by it: the latch is cleared unconditionally at the end.
func (c *Controller) runPedestrianIfRequested() {
	if !c.pedRequested {
		return
	}

	c.enterPhase(PhasePedGreen)

	c.signals.Set(SignalPedGreen)

	for remaining := c.cfg.PedestrianSeconds; remaining > 0; remaining-- {
		line1, line2 := formatPedestrianLines(remaining)
		c.display.ShowLines(line1, line2)
		c.observers.NotifyTick(c.phase, remaining, c.Snapshot())
		c.advanceTick()
	}

	c.signals.Set(SignalPedStop)
	line1, line2 := formatPedestrianStopLines()
	c.display.ShowLines(line1, line2)

	c.pedRequested = false
	c.observers.NotifyPedestrianServed(c.Snapshot())

	c.exitPhase(PhasePedGreen)
}

// advanceTick blocks for one tick worth of input sampling and bumps the
// logical tick counter.
func (c *Controller) advanceTick() {
	c.ticker.Tick(c.sampler.sample)
	c.tick++
}

// enterPhase records the new active phase and notifies observers.
func (c *Controller) enterPhase(p Phase) {
	c.phase = p
	c.observers.NotifyPhaseEnter(p, c.Snapshot())
}

// exitPhase notifies observers that a phase has run to completion.
func (c *Controller) exitPhase(p Phase) {
	c.observers.NotifyPhaseExit(p, c.Snapshot())
}

func (c *Controller) setCount(road Road, n int) {
	if road == RoadNS {
		c.nsCount = n
	} else {
		c.ewCount = n
	}
}

// handleVehiclePress is the sampler's entry point for a vehicle button
// edge. The increment is gated on the road being classified red; a press
// on a non-red road only produces a rejection notice.
func (c *Controller) handleVehiclePress(road Road) {
	if !c.phase.RoadIsRed(road) {
		line1, line2 := formatRejectLines(road)
		c.display.ShowLines(line1, line2)
		c.observers.NotifyCountRejected(road, c.Snapshot())
		return
	}

	// No upper bound: counts grow as long as the road stays red.
	n := c.VehicleCount(road) + 1
	c.setCount(road, n)

	line1, line2 := formatCountLines(road, n)
	c.display.ShowLines(line1, line2)
	c.observers.NotifyVehicleCounted(road, n, c.Snapshot())
}

// handlePedestrianPress is the sampler's entry point for a pedestrian
// button edge. Setting an already-set latch is a no-op; every press still
// gets its acknowledgment.
func (c *Controller) handlePedestrianPress() {
	c.pedRequested = true

	line1, line2 := formatPedestrianAckLines()
	c.display.ShowLines(line1, line2)
	c.observers.NotifyPedestrianRequested(c.Snapshot())
}
