package crosslight

// Level is the raw electrical level of a button line. Buttons are wired
// with pull-ups, so a released line reads High and a pressed line reads
// Low.
type Level bool

const (
	// Low means the line is pulled to ground (button pressed)
	Low Level = false
	// High means the line is at the pull-up voltage (button released)
	High Level = true
)

// ButtonLevels holds one simultaneous reading of the three button lines.
type ButtonLevels struct {
	NS  Level
	EW  Level
	Ped Level
}

// ReleasedLevels returns a reading with every button released.
func ReleasedLevels() ButtonLevels {
	return ButtonLevels{NS: High, EW: High, Ped: High}
}

// ButtonReader exposes the current electrical level of each button line.
// The reader gives no debounce guarantee; edge detection and repeat
// suppression are the sampler's responsibility. ReadLevels is called once
// per sampling sub-interval from the controller's own goroutine.
type ButtonReader interface {
	ReadLevels() ButtonLevels
}

// SignalDriver drives the physical vehicle and pedestrian signals. Set is
// fire-and-forget: it is assumed to always succeed and is never retried.
type SignalDriver interface {
	Set(state SignalState)
}

// Display renders two text lines of at most 16 characters each, clearing
// any prior content first. Like SignalDriver, it is fire-and-forget.
type Display interface {
	ShowLines(line1, line2 string)
}
