// Package analysis computes summary statistics over a recorded run. It
// reads the SQLite database written by the recorder package and reports
// per-phase durations and button-press acceptance.
package analysis

import (
	"database/sql"
	"fmt"
	"sort"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"gonum.org/v1/gonum/stat"
)

// PhaseStats summarizes the tick durations of one phase across a run.
type PhaseStats struct {
	Phase       string
	Occurrences int
	MeanTicks   float64
	MaxTicks    float64
	P95Ticks    float64
}

// PressStats summarizes button activity across a run.
type PressStats struct {
	VehicleAccepted    int
	VehicleRejected    int
	PedestrianRequests int
}

// Report is the full result of analyzing one recorded run.
type Report struct {
	Phases  []PhaseStats
	Presses PressStats
}

// Analyzer reads a recorder database.
type Analyzer struct {
	db     *sql.DB
	ownsDB bool
}

// Open opens the database at path for analysis.
func Open(path string) (*Analyzer, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("analysis: cannot open %s: %w", path, err)
	}
	return &Analyzer{db: db, ownsDB: true}, nil
}

// NewWithDB builds an analyzer on an existing database handle. The caller
// keeps ownership of the handle.
func NewWithDB(db *sql.DB) *Analyzer {
	return &Analyzer{db: db}
}

// Close releases the database if the analyzer opened it.
func (a *Analyzer) Close() error {
	if a.ownsDB {
		return a.db.Close()
	}
	return nil
}

// Run produces the full report for the recorded data.
func (a *Analyzer) Run() (Report, error) {
	phases, err := a.phaseStats()
	if err != nil {
		return Report{}, err
	}

	presses, err := a.pressStats()
	if err != nil {
		return Report{}, err
	}

	return Report{Phases: phases, Presses: presses}, nil
}

// phaseStats pairs each phase enter with the following exit of the same
// phase and aggregates the tick deltas.
func (a *Analyzer) phaseStats() ([]PhaseStats, error) {
	rows, err := a.db.Query(
		"SELECT phase, event, tick FROM phase_events ORDER BY tick, event")
	if err != nil {
		return nil, fmt.Errorf("analysis: cannot query phase events: %w", err)
	}
	defer rows.Close()

	open := make(map[string]int64)
	durations := make(map[string][]float64)
	for rows.Next() {
		var phase, event string
		var tick int64
		if err := rows.Scan(&phase, &event, &tick); err != nil {
			return nil, fmt.Errorf("analysis: cannot scan phase event: %w", err)
		}

		switch event {
		case "enter":
			open[phase] = tick
		case "exit":
			start, ok := open[phase]
			if !ok {
				continue
			}
			delete(open, phase)
			durations[phase] = append(durations[phase], float64(tick-start))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analysis: phase event rows: %w", err)
	}

	names := make([]string, 0, len(durations))
	for name := range durations {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]PhaseStats, 0, len(names))
	for _, name := range names {
		samples := durations[name]
		sort.Float64s(samples)

		max := samples[len(samples)-1]
		stats = append(stats, PhaseStats{
			Phase:       name,
			Occurrences: len(samples),
			MeanTicks:   stat.Mean(samples, nil),
			MaxTicks:    max,
			P95Ticks:    stat.Quantile(0.95, stat.Empirical, samples, nil),
		})
	}

	return stats, nil
}

func (a *Analyzer) pressStats() (PressStats, error) {
	var p PressStats

	err := a.db.QueryRow(
		`SELECT
			COUNT(CASE WHEN kind = 'vehicle' AND accepted = 1 THEN 1 END),
			COUNT(CASE WHEN kind = 'vehicle' AND accepted = 0 THEN 1 END),
			COUNT(CASE WHEN kind = 'pedestrian' THEN 1 END)
		FROM button_events`).
		Scan(&p.VehicleAccepted, &p.VehicleRejected, &p.PedestrianRequests)
	if err != nil {
		return PressStats{}, fmt.Errorf("analysis: cannot query button events: %w", err)
	}

	return p, nil
}
