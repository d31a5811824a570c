package crosslight

import "time"

// TickSource advances the controller's only notion of elapsed time. One
// tick is nominally one second, defined operationally as a fixed number
// of sampler invocations at a fixed per-invocation pause; there is no
// hardware timer or monotonic clock anywhere in the control path.
//
// Tick must invoke sample once per sub-interval before pausing, so that
// within any one tick a press is detected with latency bounded by one
// sub-interval. This matters during long green phases: a 40-second
// countdown still notices a button within 20 ms of the press.
type TickSource interface {
	Tick(sample func())
}

// BusyTicker is the production TickSource: a cooperative busy-wait loop
// of Samples iterations, each sampling the inputs and then sleeping for
// Interval. Elapsed time is Samples x Interval per tick, give or take the
// cost of the sample itself, which is the accuracy the intersection needs.
type BusyTicker struct {
	Samples  int
	Interval time.Duration
}

// NewBusyTicker creates a BusyTicker from the configured tick shape.
func NewBusyTicker(cfg Config) *BusyTicker {
	return &BusyTicker{
		Samples:  cfg.SamplesPerTick,
		Interval: cfg.SampleInterval(),
	}
}

// Tick blocks for one tick, polling the inputs once per sub-interval.
func (t *BusyTicker) Tick(sample func()) {
	for i := 0; i < t.Samples; i++ {
		sample()
		time.Sleep(t.Interval)
	}
}

// InstantTicker is a TickSource for tests and simulations: the same
// sampling loop as BusyTicker with no pause, so phases complete
// immediately while input edges are still observed sample by sample.
type InstantTicker struct {
	Samples int
}

// Tick invokes sample Samples times without sleeping.
func (t *InstantTicker) Tick(sample func()) {
	for i := 0; i < t.Samples; i++ {
		sample()
	}
}
