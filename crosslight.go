// Package crosslight implements a fixed-topology traffic intersection
// controller: two perpendicular roads, one pedestrian crossing, and three
// momentary push-buttons, driven by a single-threaded cooperative control
// loop with no operating-system timer services.
//
// The controller adapts each road's green duration to the number of
// vehicles counted while that road was red, defers pedestrian crossings to
// the boundary between one road's yellow and the other road's green, and
// defines elapsed time operationally: one "second" is a fixed number of
// input-sampling iterations, not a hardware clock reading.
//
// Hardware is abstracted behind three small collaborator interfaces
// (ButtonReader, SignalDriver, Display) so the same controller runs
// against real GPIO, an in-memory simulation, or test doubles. Everything
// observable about a run is published through the Observer interface.
package crosslight

import "time"

// Defaults used by DefaultConfig. They match the deployed controller:
// a 10-second base green, 3-second yellow, 8-second pedestrian crossing,
// and one tick defined as 50 samples spaced 20 ms apart.
const (
	DefaultBaseGreenSeconds  = 10
	DefaultYellowSeconds     = 3
	DefaultPedestrianSeconds = 8
	DefaultSamplesPerTick    = 50
	DefaultSampleInterval    = 20 * time.Millisecond
)
