package crosslight

// Phase identifies the active step of the intersection cycle. Exactly one
// phase is active at any instant; it is the sole piece of state that
// determines which road is considered red for counting purposes.
type Phase int

const (
	// North-south road has green, east-west is held red
	PhaseNSGreen Phase = iota
	// North-south road has yellow, east-west is held red
	PhaseNSYellow
	// East-west road has green, north-south is held red
	PhaseEWGreen
	// East-west road has yellow, north-south is held red
	PhaseEWYellow
	// Pedestrian crossing is green, both roads are held red
	PhasePedGreen
)

// String returns the short phase label used on displays and in logs.
func (p Phase) String() string {
	switch p {
	case PhaseNSGreen:
		return "NSG"
	case PhaseNSYellow:
		return "NSY"
	case PhaseEWGreen:
		return "EWG"
	case PhaseEWYellow:
		return "EWY"
	case PhasePedGreen:
		return "PED"
	default:
		return "UNKNOWN"
	}
}

// Road identifies one of the two vehicle roads of the intersection.
type Road int

const (
	// North-south road
	RoadNS Road = iota
	// East-west road
	RoadEW
)

// String returns the road label used on displays and in logs.
func (r Road) String() string {
	if r == RoadNS {
		return "NS"
	}
	return "EW"
}

// Other returns the opposite road.
func (r Road) Other() Road {
	if r == RoadNS {
		return RoadEW
	}
	return RoadNS
}

// RoadIsRed reports whether the given road is classified red during this
// phase. The classification is derived, never stored: a road is red
// exactly while the other road holds green or yellow, or while the
// pedestrian crossing is green.
func (p Phase) RoadIsRed(r Road) bool {
	switch r {
	case RoadNS:
		return p == PhaseEWGreen || p == PhaseEWYellow || p == PhasePedGreen
	case RoadEW:
		return p == PhaseNSGreen || p == PhaseNSYellow || p == PhasePedGreen
	default:
		return false
	}
}

// GreenPhase returns the green phase belonging to the road.
func (r Road) GreenPhase() Phase {
	if r == RoadNS {
		return PhaseNSGreen
	}
	return PhaseEWGreen
}

// YellowPhase returns the yellow phase belonging to the road.
func (r Road) YellowPhase() Phase {
	if r == RoadNS {
		return PhaseNSYellow
	}
	return PhaseEWYellow
}

// SignalState is the discrete light configuration accepted by a
// SignalDriver. Each value fully determines every physical output.
type SignalState int

const (
	// All vehicle signals red
	SignalAllRed SignalState = iota
	// North-south green, east-west red, pedestrian red
	SignalNSGreen
	// North-south yellow, east-west red, pedestrian red
	SignalNSYellow
	// East-west green, north-south red, pedestrian red
	SignalEWGreen
	// East-west yellow, north-south red, pedestrian red
	SignalEWYellow
	// Pedestrian green, all vehicle signals red
	SignalPedGreen
	// Pedestrian red and all vehicle signals red
	SignalPedStop
)

// String returns a stable name for the signal state.
func (s SignalState) String() string {
	switch s {
	case SignalAllRed:
		return "all_red"
	case SignalNSGreen:
		return "ns_green"
	case SignalNSYellow:
		return "ns_yellow"
	case SignalEWGreen:
		return "ew_green"
	case SignalEWYellow:
		return "ew_yellow"
	case SignalPedGreen:
		return "ped_green"
	case SignalPedStop:
		return "ped_stop"
	default:
		return "unknown"
	}
}

// greenSignal maps a road to its green signal configuration.
func greenSignal(r Road) SignalState {
	if r == RoadNS {
		return SignalNSGreen
	}
	return SignalEWGreen
}

// yellowSignal maps a road to its yellow signal configuration.
func yellowSignal(r Road) SignalState {
	if r == RoadNS {
		return SignalNSYellow
	}
	return SignalEWYellow
}
