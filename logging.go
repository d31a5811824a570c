package crosslight

import "log/slog"

// LoggingObserver publishes controller events as structured logs. The
// core stays silent on its own; attach one of these when a run should be
// visible on stderr or wherever the supplied logger points.
type LoggingObserver struct {
	BaseObserver
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer. A nil logger falls back
// to slog.Default().
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnPhaseEnter logs phase entries with the full state snapshot.
func (o *LoggingObserver) OnPhaseEnter(phase Phase, snap Snapshot) {
	o.logger.Info("phase entered",
		"phase", phase.String(),
		"tick", snap.Tick,
		"ns_count", snap.NSCount,
		"ew_count", snap.EWCount,
		"ped_requested", snap.PedRequested,
	)
}

// OnPhaseExit logs phase completions.
func (o *LoggingObserver) OnPhaseExit(phase Phase, snap Snapshot) {
	o.logger.Debug("phase completed", "phase", phase.String(), "tick", snap.Tick)
}

// OnVehicleCounted logs accepted vehicle presses.
func (o *LoggingObserver) OnVehicleCounted(road Road, count int, snap Snapshot) {
	o.logger.Info("vehicle counted", "road", road.String(), "count", count, "tick", snap.Tick)
}

// OnCountRejected logs presses ignored because the road was not red.
func (o *LoggingObserver) OnCountRejected(road Road, snap Snapshot) {
	o.logger.Debug("press rejected", "road", road.String(), "phase", snap.Phase.String(), "tick", snap.Tick)
}

// OnCountReset logs the count cleared after a green phase.
func (o *LoggingObserver) OnCountReset(road Road, served int, snap Snapshot) {
	o.logger.Info("count reset", "road", road.String(), "served", served, "tick", snap.Tick)
}

// OnPedestrianRequested logs pedestrian request presses.
func (o *LoggingObserver) OnPedestrianRequested(snap Snapshot) {
	o.logger.Info("pedestrian requested", "tick", snap.Tick)
}

// OnPedestrianServed logs completed pedestrian crossings.
func (o *LoggingObserver) OnPedestrianServed(snap Snapshot) {
	o.logger.Info("pedestrian served", "tick", snap.Tick)
}

// OnError logs observer failures reported by the manager.
func (o *LoggingObserver) OnError(err error, snap Snapshot) {
	o.logger.Error("observer error", "err", err, "tick", snap.Tick)
}
