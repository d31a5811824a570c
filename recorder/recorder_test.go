package recorder

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslight/crosslight"
)

func openTestRecorder(t *testing.T) *Recorder {
	t.Helper()

	path := filepath.Join(t.TempDir(), "events.db")
	r, err := New(path, "test-controller")
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	return r
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	require.NoError(t, err)

	return n
}

func TestRecordsPhaseTransitions(t *testing.T) {
	r := openTestRecorder(t)

	snap := crosslight.Snapshot{Phase: crosslight.PhaseNSGreen, NSCount: 3, Tick: 7}
	r.OnPhaseEnter(crosslight.PhaseNSGreen, snap)
	snap.Tick = 17
	r.OnPhaseExit(crosslight.PhaseNSGreen, snap)

	require.NoError(t, r.Flush())
	assert.Equal(t, 2, countRows(t, r.db, "phase_events"))

	var event, phase string
	var tick int64
	err := r.db.QueryRow(
		"SELECT event, phase, tick FROM phase_events ORDER BY tick LIMIT 1").
		Scan(&event, &phase, &tick)
	require.NoError(t, err)
	assert.Equal(t, "enter", event)
	assert.Equal(t, "NSG", phase)
	assert.Equal(t, int64(7), tick)
}

func TestRecordsButtonEvents(t *testing.T) {
	r := openTestRecorder(t)

	snap := crosslight.Snapshot{Phase: crosslight.PhaseEWGreen, Tick: 4}
	r.OnVehicleCounted(crosslight.RoadNS, 1, snap)
	r.OnCountRejected(crosslight.RoadEW, snap)
	r.OnPedestrianRequested(snap)

	require.NoError(t, r.Flush())
	assert.Equal(t, 3, countRows(t, r.db, "button_events"))

	var accepted int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM button_events WHERE accepted = 1").Scan(&accepted)
	require.NoError(t, err)
	assert.Equal(t, 2, accepted)

	var kind string
	err = r.db.QueryRow(
		"SELECT kind FROM button_events WHERE road = ''").Scan(&kind)
	require.NoError(t, err)
	assert.Equal(t, "pedestrian", kind)
}

func TestFlushEmptyBufferIsNoOp(t *testing.T) {
	r := openTestRecorder(t)

	require.NoError(t, r.Flush())
	assert.Equal(t, 0, countRows(t, r.db, "phase_events"))
	assert.Equal(t, 0, countRows(t, r.db, "button_events"))
}

func TestAutomaticFlushOnFullBatch(t *testing.T) {
	r := openTestRecorder(t)
	r.batchSize = 2

	snap := crosslight.Snapshot{Phase: crosslight.PhaseNSGreen}
	r.OnPhaseEnter(crosslight.PhaseNSGreen, snap)
	assert.Equal(t, 0, countRows(t, r.db, "phase_events"))

	r.OnPhaseExit(crosslight.PhaseNSGreen, snap)
	assert.Equal(t, 2, countRows(t, r.db, "phase_events"))
}

func TestCloseFlushesPendingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	r, err := New(path, "test-controller")
	require.NoError(t, err)

	r.OnPhaseEnter(crosslight.PhaseNSGreen, crosslight.Snapshot{})
	require.NoError(t, r.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 1, countRows(t, db, "phase_events"))
}

func TestRecorderSatisfiesExtendedObserver(t *testing.T) {
	var _ crosslight.ExtendedObserver = openTestRecorder(t)
}
