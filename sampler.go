package crosslight

// inputSampler turns raw button levels into logical press events. It is
// invoked once per sub-interval by the tick source, always on the
// controller's goroutine.
//
// Edge rule: a press event fires on a High-to-Low transition only, and
// the observed level is recorded unconditionally on every invocation, so
// a button held down across many samples fires exactly once per physical
// press/release cycle.
type inputSampler struct {
	ctrl    *Controller
	buttons ButtonReader
	last    ButtonLevels
}

func newInputSampler(ctrl *Controller, buttons ButtonReader) *inputSampler {
	return &inputSampler{
		ctrl:    ctrl,
		buttons: buttons,
		last:    ReleasedLevels(),
	}
}

// sample reads all three lines once and dispatches any press edges.
func (s *inputSampler) sample() {
	cur := s.buttons.ReadLevels()

	if cur.NS == Low && s.last.NS == High {
		s.ctrl.handleVehiclePress(RoadNS)
	}
	if cur.EW == Low && s.last.EW == High {
		s.ctrl.handleVehiclePress(RoadEW)
	}
	if cur.Ped == Low && s.last.Ped == High {
		s.ctrl.handlePedestrianPress()
	}

	s.last = cur
}
