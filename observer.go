package crosslight

import "fmt"

// Snapshot is an immutable copy of the controller's state cells at the
// moment an observer is notified. Tick is the logical tick counter since
// startup, not wall-clock time.
type Snapshot struct {
	Phase        Phase
	NSCount      int
	EWCount      int
	PedRequested bool
	Tick         int64
}

// VehicleCount returns the waiting-vehicle count of the given road.
func (s Snapshot) VehicleCount(r Road) int {
	if r == RoadNS {
		return s.NSCount
	}
	return s.EWCount
}

// Observer represents an entity that observes the intersection lifecycle
type Observer interface {
	// Required methods

	// OnPhaseEnter is called when the controller enters a phase
	OnPhaseEnter(phase Phase, snap Snapshot)

	// OnPhaseExit is called when a phase has run to completion
	OnPhaseExit(phase Phase, snap Snapshot)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnTick is called once per countdown unit within a phase
	OnTick(phase Phase, remaining int, snap Snapshot)

	// OnVehicleCounted is called when a press increments a road's count
	OnVehicleCounted(road Road, count int, snap Snapshot)

	// OnCountRejected is called when a press is ignored because the road
	// is not red
	OnCountRejected(road Road, snap Snapshot)

	// OnCountReset is called after a green phase clears its road's count;
	// served is the count that was just zeroed
	OnCountReset(road Road, served int, snap Snapshot)

	// OnPedestrianRequested is called on every pedestrian press edge
	OnPedestrianRequested(snap Snapshot)

	// OnPedestrianServed is called after a pedestrian phase completes and
	// the request latch is cleared
	OnPedestrianServed(snap Snapshot)

	// OnError is called when an observer misbehaves during notification
	OnError(err error, snap Snapshot)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnPhaseEnter implements the required Observer method
func (o *BaseObserver) OnPhaseEnter(phase Phase, snap Snapshot) {
	// Default implementation - no operation
}

// OnPhaseExit implements the required Observer method
func (o *BaseObserver) OnPhaseExit(phase Phase, snap Snapshot) {
	// Default implementation - no operation
}

// OnTick implements the optional ExtendedObserver method
func (o *BaseObserver) OnTick(phase Phase, remaining int, snap Snapshot) {
	// Default implementation - no operation
}

// OnVehicleCounted implements the optional ExtendedObserver method
func (o *BaseObserver) OnVehicleCounted(road Road, count int, snap Snapshot) {
	// Default implementation - no operation
}

// OnCountRejected implements the optional ExtendedObserver method
func (o *BaseObserver) OnCountRejected(road Road, snap Snapshot) {
	// Default implementation - no operation
}

// OnCountReset implements the optional ExtendedObserver method
func (o *BaseObserver) OnCountReset(road Road, served int, snap Snapshot) {
	// Default implementation - no operation
}

// OnPedestrianRequested implements the optional ExtendedObserver method
func (o *BaseObserver) OnPedestrianRequested(snap Snapshot) {
	// Default implementation - no operation
}

// OnPedestrianServed implements the optional ExtendedObserver method
func (o *BaseObserver) OnPedestrianServed(snap Snapshot) {
	// Default implementation - no operation
}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error, snap Snapshot) {
	// Default implementation - no operation
}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// snapshot iteration copies the slice first so observers may remove
// themselves during notification.

// NotifyPhaseEnter notifies all observers of a phase entry
func (om *ObserverManager) NotifyPhaseEnter(phase Phase, snap Snapshot) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Observer panicked - report it if the observer can
					// receive errors but never crash the control loop
					if extObs, ok := observer.(ExtendedObserver); ok {
						func() {
							defer func() { recover() }()
							extObs.OnError(fmt.Errorf("observer panic in OnPhaseEnter: %v", r), snap)
						}()
					}
				}
			}()
			observer.OnPhaseEnter(phase, snap)
		}()
	}
}

// NotifyPhaseExit notifies all observers of a phase completion
func (om *ObserverManager) NotifyPhaseExit(phase Phase, snap Snapshot) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					if extObs, ok := observer.(ExtendedObserver); ok {
						func() {
							defer func() { recover() }()
							extObs.OnError(fmt.Errorf("observer panic in OnPhaseExit: %v", r), snap)
						}()
					}
				}
			}()
			observer.OnPhaseExit(phase, snap)
		}()
	}
}

// NotifyTick notifies all observers of a countdown unit
func (om *ObserverManager) NotifyTick(phase Phase, remaining int, snap Snapshot) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnTick(phase, remaining, snap)
		}
	}
}

// NotifyVehicleCounted notifies all observers of an accepted press
func (om *ObserverManager) NotifyVehicleCounted(road Road, count int, snap Snapshot) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnVehicleCounted(road, count, snap)
		}
	}
}

// NotifyCountRejected notifies all observers of a rejected press
func (om *ObserverManager) NotifyCountRejected(road Road, snap Snapshot) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnCountRejected(road, snap)
		}
	}
}

// NotifyCountReset notifies all observers of a served road's count reset
func (om *ObserverManager) NotifyCountReset(road Road, served int, snap Snapshot) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnCountReset(road, served, snap)
		}
	}
}

// NotifyPedestrianRequested notifies all observers of a pedestrian press
func (om *ObserverManager) NotifyPedestrianRequested(snap Snapshot) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnPedestrianRequested(snap)
		}
	}
}

// NotifyPedestrianServed notifies all observers of a completed crossing
func (om *ObserverManager) NotifyPedestrianServed(snap Snapshot) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnPedestrianServed(snap)
		}
	}
}
