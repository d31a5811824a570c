package crosslight

import (
	"context"
	"errors"
	"testing"
)

func TestNew_ValidatesConfigAndHardware(t *testing.T) {
	display := &RecordingDisplay{}
	signals := &RecordingSignals{}
	buttons := NewFakeButtons()

	bad := DefaultConfig()
	bad.YellowSeconds = 0
	if _, err := New(bad, Hardware{Buttons: buttons, Signals: signals, Display: display}); err == nil {
		t.Error("Expected error for invalid config")
	}

	cases := []Hardware{
		{Signals: signals, Display: display},
		{Buttons: buttons, Display: display},
		{Buttons: buttons, Signals: signals},
	}
	for i, hw := range cases {
		if _, err := New(DefaultConfig(), hw); err == nil {
			t.Errorf("Case %d: expected error for incomplete hardware", i)
		} else if !IsConfigurationError(err) {
			t.Errorf("Case %d: expected ConfigurationError, got %T", i, err)
		}
	}
}

func TestNew_AssignsUniqueIDs(t *testing.T) {
	a, _, _ := CreateTestController(t, DefaultConfig(), NewFakeButtons())
	b, _, _ := CreateTestController(t, DefaultConfig(), NewFakeButtons())

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("Expected distinct non-empty IDs, got %q and %q", a.ID(), b.ID())
	}
}

func TestRunGreen_ResetsCountAfterCompletion(t *testing.T) {
	c, _, _ := CreateTestController(t, DefaultConfig(), NewFakeButtons())
	observer := NewTestObserver()
	c.AddObserver(observer)

	c.ewCount = 7

	c.runGreen(RoadEW)

	AssertCount(t, c, RoadEW, 0)

	if len(observer.Resets) != 1 {
		t.Fatalf("Expected one count reset, got %d", len(observer.Resets))
	}
	if observer.Resets[0].Road != RoadEW || observer.Resets[0].Served != 7 {
		t.Errorf("Expected EW reset serving 7, got %+v", observer.Resets[0])
	}

	// 7 waiting vehicles earn 10+10 seconds of green.
	if got := observer.TickCount(PhaseEWGreen); got != 20 {
		t.Errorf("Expected 20 green ticks, got %d", got)
	}
}

func TestRunGreen_DisplaysSplitAndLiveOppositeCount(t *testing.T) {
	c, display, signals := CreateTestController(t, DefaultConfig(), NewFakeButtons())

	c.nsCount = 12
	c.ewCount = 3

	c.runGreen(RoadEW)

	// 12 NS vehicles shown live on line 2; EW count of 3 earns no extra.
	AssertLines(t, display.Lines[0], "EWG 10+0s", "T=10 NS=12")
	AssertLines(t, display.Lines[len(display.Lines)-1], "EWG 10+0s", "T=1 NS=12")

	if signals.Last() != SignalEWGreen {
		t.Errorf("Expected EW green signal, got %s", signals.Last())
	}
}

func TestRunYellow_FixedDurationPreservesCounts(t *testing.T) {
	c, display, signals := CreateTestController(t, DefaultConfig(), NewFakeButtons())
	observer := NewTestObserver()
	c.AddObserver(observer)

	c.ewCount = 5

	c.runYellow(RoadNS)

	AssertCount(t, c, RoadEW, 5)

	if got := observer.TickCount(PhaseNSYellow); got != 3 {
		t.Errorf("Expected 3 yellow ticks, got %d", got)
	}
	AssertLines(t, display.Lines[0], "NSY T=3s", "EW=5")
	if signals.Last() != SignalNSYellow {
		t.Errorf("Expected NS yellow signal, got %s", signals.Last())
	}
}

func TestRunPedestrian_NoOpWithoutRequest(t *testing.T) {
	c, display, signals := CreateTestController(t, DefaultConfig(), NewFakeButtons())
	observer := NewTestObserver()
	c.AddObserver(observer)

	c.runPedestrianIfRequested()

	if len(observer.PhaseEnters) != 0 || len(display.Lines) != 0 || len(signals.States) != 0 {
		t.Error("Expected pedestrian step to be a no-op without a latched request")
	}
}

func TestRunPedestrian_ServesAndClearsLatch(t *testing.T) {
	c, display, signals := CreateTestController(t, DefaultConfig(), NewFakeButtons())
	observer := NewTestObserver()
	c.AddObserver(observer)

	c.pedRequested = true

	c.runPedestrianIfRequested()

	if c.PedestrianRequested() {
		t.Error("Expected latch cleared after service")
	}
	if got := observer.TickCount(PhasePedGreen); got != 8 {
		t.Errorf("Expected 8 pedestrian ticks, got %d", got)
	}
	if len(observer.PedServed) != 1 {
		t.Errorf("Expected one served notification, got %d", len(observer.PedServed))
	}

	AssertLines(t, display.Lines[0], "PEDESTRIAN", "T=8 WALK")
	AssertLines(t, display.Last(), "PEDESTRIAN", "STOP")

	if len(signals.States) != 2 || signals.States[0] != SignalPedGreen || signals.States[1] != SignalPedStop {
		t.Errorf("Expected ped_green then ped_stop, got %v", signals.States)
	}
}

func TestRun_StartupSequence(t *testing.T) {
	c, display, signals := CreateTestController(t, DefaultConfig(), NewFakeButtons())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	if len(signals.States) == 0 || signals.States[0] != SignalPedStop {
		t.Errorf("Expected all-red startup signal, got %v", signals.States)
	}
	AssertLines(t, display.Lines[0], "Traffic System", "Ready")
}

func TestRun_CancellationObservedAtRoadBoundary(t *testing.T) {
	c, _, _ := CreateTestController(t, DefaultConfig(), NewFakeButtons())
	observer := NewTestObserver()
	c.AddObserver(observer)

	ctx, cancel := context.WithCancel(context.Background())

	// Cancel as soon as the first phase starts; the cycle must still
	// finish the NS half before Run returns.
	c.AddObserver(&cancelOnEnter{phase: PhaseNSGreen, cancel: cancel})

	err := c.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	phases := observer.EnteredPhases()
	expected := []Phase{PhaseNSGreen, PhaseNSYellow}
	if len(phases) != len(expected) {
		t.Fatalf("Expected phases %v, got %v", expected, phases)
	}
	for i := range expected {
		if phases[i] != expected[i] {
			t.Fatalf("Expected phases %v, got %v", expected, phases)
		}
	}
}

// cancelOnEnter cancels a context when a given phase is entered.
type cancelOnEnter struct {
	BaseObserver
	phase  Phase
	cancel context.CancelFunc
}

func (o *cancelOnEnter) OnPhaseEnter(phase Phase, snap Snapshot) {
	if phase == o.phase {
		o.cancel()
	}
}

func TestAdvanceTick_IncrementsLogicalClock(t *testing.T) {
	c, _, _ := CreateTestController(t, DefaultConfig(), NewFakeButtons())

	if c.Snapshot().Tick != 0 {
		t.Fatalf("Expected tick 0 at startup, got %d", c.Snapshot().Tick)
	}

	c.advanceTick()
	c.advanceTick()

	if c.Snapshot().Tick != 2 {
		t.Errorf("Expected tick 2, got %d", c.Snapshot().Tick)
	}
}

func TestSnapshot_CopiesStateCells(t *testing.T) {
	c, _, _ := CreateTestController(t, DefaultConfig(), NewFakeButtons())

	c.nsCount = 4
	c.ewCount = 9
	c.pedRequested = true
	c.phase = PhaseEWYellow

	snap := c.Snapshot()
	if snap.Phase != PhaseEWYellow || snap.NSCount != 4 || snap.EWCount != 9 || !snap.PedRequested {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}
	if snap.VehicleCount(RoadNS) != 4 || snap.VehicleCount(RoadEW) != 9 {
		t.Errorf("Unexpected snapshot counts: %+v", snap)
	}
}
