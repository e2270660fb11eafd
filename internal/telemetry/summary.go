package telemetry

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the records of one run.
type Summary struct {
	Run

	Samples int `csv:"samples"`

	MovesMean float64 `csv:"moves_mean"`
	MovesStd  float64 `csv:"moves_std"`
	MovesP50  float64 `csv:"moves_p50"`
	MovesP90  float64 `csv:"moves_p90"`

	// SettleTick is the first sampled tick with no movement, or -1.
	SettleTick int64 `csv:"settle_tick"`

	SteamMean     float64 `csv:"steam_mean"`
	SteamFinal    int     `csv:"steam_final"`
	WaterFinal    int     `csv:"water_final"`
	BendiumFinal  int     `csv:"bendium_final"`
	Evaporations  int     `csv:"evaporations"`
	Condensations int     `csv:"condensations"`
	Reactions     int     `csv:"reactions"`
}

// Summarize reduces records to a Summary. Records must belong to run.
func Summarize(run Run, records []Record) Summary {
	out := Summary{Run: run, Samples: len(records), SettleTick: -1}
	if len(records) == 0 {
		return out
	}

	moves := make([]float64, len(records))
	steam := make([]float64, len(records))
	for i, r := range records {
		moves[i] = float64(r.Moves())
		steam[i] = float64(r.Steam)
		out.Evaporations += r.Evaporations
		out.Condensations += r.Condensations
		out.Reactions += r.Reactions
		if out.SettleTick < 0 && r.Moves() == 0 {
			out.SettleTick = int64(r.Tick)
		}
	}
	out.MovesMean, out.MovesStd = stat.MeanStdDev(moves, nil)
	out.SteamMean = stat.Mean(steam, nil)

	sorted := slices.Clone(moves)
	slices.Sort(sorted)
	out.MovesP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	out.MovesP90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	last := records[len(records)-1]
	out.SteamFinal = last.Steam
	out.WaterFinal = last.Water
	out.BendiumFinal = last.Bendium
	return out
}
