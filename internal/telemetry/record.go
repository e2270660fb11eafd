// Package telemetry samples sand worlds during headless runs and writes the
// samples and per-run summaries as CSV.
package telemetry

import (
	"sandca/internal/sims/sand"
)

// Run identifies one headless simulation in a sweep.
type Run struct {
	ID          int     `csv:"run"`
	Seed        int64   `csv:"seed"`
	Scene       string  `csv:"scene"`
	EvapRate    float64 `csv:"evap_rate"`
	CondensRate float64 `csv:"condens_rate"`
}

// Record is one sampled tick.
type Record struct {
	Run

	Tick    uint64  `csv:"tick"`
	SimTime float64 `csv:"sim_time"`

	Falls         int `csv:"falls"`
	Spreads       int `csv:"spreads"`
	Rises         int `csv:"rises"`
	Reactions     int `csv:"reactions"`
	Evaporations  int `csv:"evaporations"`
	Condensations int `csv:"condensations"`

	Water   int `csv:"water"`
	Steam   int `csv:"steam"`
	Sand    int `csv:"sand"`
	Bendium int `csv:"bendium"`
	Air     int `csv:"air"`
}

// Sample captures the world's last tick counters and census.
func Sample(run Run, w *sand.World) Record {
	s := w.LastStats()
	census := w.Census()
	return Record{
		Run:           run,
		Tick:          s.Tick,
		SimTime:       s.SimTime,
		Falls:         s.Falls,
		Spreads:       s.Spreads,
		Rises:         s.Rises,
		Reactions:     s.Reactions,
		Evaporations:  s.Evaporations,
		Condensations: s.Condensations,
		Water:         census[sand.Water],
		Steam:         census[sand.Steam],
		Sand:          census[sand.Sand],
		Bendium:       census[sand.Bendium],
		Air:           census[sand.Air],
	}
}

// Moves is the number of cells displaced by movement and buoyancy.
func (r Record) Moves() int { return r.Falls + r.Spreads + r.Rises }
