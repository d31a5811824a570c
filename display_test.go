package crosslight

import "testing"

func assertFormat(t *testing.T, got1, got2, want1, want2 string) {
	t.Helper()
	if got1 != want1 || got2 != want2 {
		t.Errorf("Expected %q / %q, got %q / %q", want1, want2, got1, got2)
	}
}

func TestDisplayFormats(t *testing.T) {
	l1, l2 := formatGreenLines(RoadNS, 10, 20, 30, 14)
	assertFormat(t, l1, l2, "NSG 10+20s", "T=30 EW=14")

	l1, l2 = formatGreenLines(RoadEW, 10, 0, 7, 3)
	assertFormat(t, l1, l2, "EWG 10+0s", "T=7 NS=3")

	l1, l2 = formatYellowLines(RoadNS, 3, 14)
	assertFormat(t, l1, l2, "NSY T=3s", "EW=14")

	l1, l2 = formatYellowLines(RoadEW, 1, 9)
	assertFormat(t, l1, l2, "EWY T=1s", "NS=9")

	l1, l2 = formatPedestrianLines(8)
	assertFormat(t, l1, l2, "PEDESTRIAN", "T=8 WALK")

	l1, l2 = formatPedestrianStopLines()
	assertFormat(t, l1, l2, "PEDESTRIAN", "STOP")

	l1, l2 = formatCountLines(RoadNS, 14)
	assertFormat(t, l1, l2, "NS RED: Count", "NS=14")

	l1, l2 = formatCountLines(RoadEW, 2)
	assertFormat(t, l1, l2, "EW RED: Count", "EW=2")

	l1, l2 = formatRejectLines(RoadEW)
	assertFormat(t, l1, l2, "EW not RED", "No count")

	l1, l2 = formatPedestrianAckLines()
	assertFormat(t, l1, l2, "Pedestrian Req", "Stored")

	l1, l2 = formatStartupLines()
	assertFormat(t, l1, l2, "Traffic System", "Ready")
}

func TestDisplayFormats_FitSixteenColumns(t *testing.T) {
	// Worst realistic cases still fit the 16-character panel.
	l1, l2 := formatGreenLines(RoadNS, 10, 30, 40, 999)
	if len(l1) > 16 || len(l2) > 16 {
		t.Errorf("Green lines overflow the panel: %q / %q", l1, l2)
	}

	l1, l2 = formatCountLines(RoadEW, 99999)
	if len(l1) > 16 || len(l2) > 16 {
		t.Errorf("Count lines overflow the panel: %q / %q", l1, l2)
	}
}
