package crosslight

import (
	"testing"
	"time"
)

func TestBusyTicker_SamplesOncePerSubInterval(t *testing.T) {
	ticker := &BusyTicker{Samples: 50, Interval: 0}

	calls := 0
	ticker.Tick(func() { calls++ })

	if calls != 50 {
		t.Errorf("Expected 50 sampler invocations per tick, got %d", calls)
	}
}

func TestBusyTicker_FromConfig(t *testing.T) {
	cfg := DefaultConfig()
	ticker := NewBusyTicker(cfg)

	if ticker.Samples != cfg.SamplesPerTick {
		t.Errorf("Expected %d samples, got %d", cfg.SamplesPerTick, ticker.Samples)
	}
	if ticker.Interval != 20*time.Millisecond {
		t.Errorf("Expected 20ms interval, got %v", ticker.Interval)
	}
}

func TestInstantTicker_SamplesWithoutWaiting(t *testing.T) {
	ticker := &InstantTicker{Samples: 7}

	calls := 0
	start := time.Now()
	ticker.Tick(func() { calls++ })

	if calls != 7 {
		t.Errorf("Expected 7 sampler invocations, got %d", calls)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Instant tick took too long: %v", elapsed)
	}
}

func TestTick_SamplingPrecedesNextTick(t *testing.T) {
	// Within one tick every sample runs before the tick completes, so a
	// press observed mid-tick is never lost, only deferred to the next
	// gating check.
	ticker := &InstantTicker{Samples: 3}

	var order []string
	ticker.Tick(func() { order = append(order, "sample") })
	order = append(order, "tick-done")

	if len(order) != 4 || order[3] != "tick-done" {
		t.Fatalf("Unexpected ordering: %v", order)
	}
	for i := 0; i < 3; i++ {
		if order[i] != "sample" {
			t.Fatalf("Expected sample at position %d, got %v", i, order)
		}
	}
}
