package crosslight

import "fmt"

// The display is a two-line 16-character panel. Every string the
// controller produces is fixed-format with one embedded decimal number,
// so all formatting lives here and the sequencer and sampler stay free of
// presentation concerns.

// formatGreenLines renders the running-green view, e.g. "NSG 10+20s" /
// "T=30 EW=14". The second line shows the live count of the opposite
// (red) road.
func formatGreenLines(road Road, base, extra, remaining, otherCount int) (string, string) {
	line1 := fmt.Sprintf("%s %d+%ds", road.GreenPhase(), base, extra)
	line2 := fmt.Sprintf("T=%d %s=%d", remaining, road.Other(), otherCount)
	return line1, line2
}

// formatYellowLines renders the yellow countdown, e.g. "NSY T=3s" /
// "EW=14".
func formatYellowLines(road Road, remaining, otherCount int) (string, string) {
	line1 := fmt.Sprintf("%s T=%ds", road.YellowPhase(), remaining)
	line2 := fmt.Sprintf("%s=%d", road.Other(), otherCount)
	return line1, line2
}

// formatPedestrianLines renders the walk countdown, e.g. "PEDESTRIAN" /
// "T=8 WALK".
func formatPedestrianLines(remaining int) (string, string) {
	return "PEDESTRIAN", fmt.Sprintf("T=%d WALK", remaining)
}

// formatPedestrianStopLines renders the stop notice shown when a crossing
// has fully run.
func formatPedestrianStopLines() (string, string) {
	return "PEDESTRIAN", "STOP"
}

// formatCountLines renders the acknowledgment for an accepted vehicle
// press, e.g. "NS RED: Count" / "NS=14".
func formatCountLines(road Road, count int) (string, string) {
	line1 := fmt.Sprintf("%s RED: Count", road)
	line2 := fmt.Sprintf("%s=%d", road, count)
	return line1, line2
}

// formatRejectLines renders the notice for a vehicle press on a road that
// is not red, e.g. "NS not RED" / "No count".
func formatRejectLines(road Road) (string, string) {
	return fmt.Sprintf("%s not RED", road), "No count"
}

// formatPedestrianAckLines renders the acknowledgment for a pedestrian
// request press.
func formatPedestrianAckLines() (string, string) {
	return "Pedestrian Req", "Stored"
}

// formatStartupLines renders the power-on banner.
func formatStartupLines() (string, string) {
	return "Traffic System", "Ready"
}
