package telemetry

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"sandca/internal/sims/sand"
)

type bufCloser struct{ bytes.Buffer }

func (b *bufCloser) Close() error { return nil }

func TestSummarize(t *testing.T) {
	run := Run{ID: 3, Seed: 7, Scene: "basin"}
	records := []Record{
		{Run: run, Tick: 1, Falls: 4, Steam: 2, Evaporations: 2},
		{Run: run, Tick: 2, Falls: 2, Rises: 2, Steam: 4, Reactions: 1},
		{Run: run, Tick: 3, Spreads: 2, Steam: 6, Water: 9, Condensations: 1},
		{Run: run, Tick: 4, Steam: 8, Water: 8, Bendium: 1},
	}
	s := Summarize(run, records)
	if s.Samples != 4 || s.Run != run {
		t.Fatalf("summary header = %+v", s)
	}
	if math.Abs(s.MovesMean-2.5) > 1e-9 {
		t.Fatalf("moves mean = %v, want 2.5", s.MovesMean)
	}
	if s.MovesStd <= 0 {
		t.Fatalf("moves std = %v", s.MovesStd)
	}
	if s.MovesP50 != 2 || s.MovesP90 != 4 {
		t.Fatalf("quantiles p50=%v p90=%v", s.MovesP50, s.MovesP90)
	}
	if s.SettleTick != 4 {
		t.Fatalf("settle tick = %d, want 4", s.SettleTick)
	}
	if s.SteamMean != 5 || s.SteamFinal != 8 || s.WaterFinal != 8 || s.BendiumFinal != 1 {
		t.Fatalf("census fields = %+v", s)
	}
	if s.Evaporations != 2 || s.Condensations != 1 || s.Reactions != 1 {
		t.Fatalf("totals = %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(Run{ID: 1}, nil)
	if s.Samples != 0 || s.SettleTick != -1 {
		t.Fatalf("empty summary = %+v", s)
	}
}

func TestOutputWritesHeaderOnce(t *testing.T) {
	ticks, summary := &bufCloser{}, &bufCloser{}
	out := NewWriterOutput(ticks, summary)
	run := Run{ID: 1, Seed: 2, Scene: "empty"}

	if err := out.WriteRecords([]Record{{Run: run, Tick: 1, Falls: 3}}); err != nil {
		t.Fatal(err)
	}
	if err := out.WriteRecords([]Record{{Run: run, Tick: 2}}); err != nil {
		t.Fatal(err)
	}
	if err := out.WriteSummary(Summarize(run, nil)); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(ticks.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("ticks.csv has %d lines:\n%s", len(lines), ticks.String())
	}
	if !strings.HasPrefix(lines[0], "run,seed,scene,evap_rate,condens_rate,tick,") {
		t.Fatalf("header = %q", lines[0])
	}
	if strings.Count(ticks.String(), "run,seed") != 1 {
		t.Fatal("header written more than once")
	}
	if !strings.Contains(summary.String(), "settle_tick") {
		t.Fatalf("summary.csv = %q", summary.String())
	}
}

func TestNilOutputDiscards(t *testing.T) {
	var out *Output
	if err := out.WriteRecords([]Record{{}}); err != nil {
		t.Fatal(err)
	}
	if err := out.WriteSummary(Summary{}); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	if o, err := NewOutput(""); o != nil || err != nil {
		t.Fatalf("NewOutput(\"\") = %v, %v", o, err)
	}
}

func TestNewOutputCreatesFiles(t *testing.T) {
	out, err := NewOutput(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	if err := out.WriteSummary(Summary{}); err != nil {
		t.Fatal(err)
	}
}

func TestSampleReadsWorld(t *testing.T) {
	w := sand.New(4, 4)
	w.PlaceAt(sand.Sand, 1, 0)
	w.PlaceAt(sand.Water, 2, 0)
	w.Step()
	r := Sample(Run{ID: 9}, w)
	if r.ID != 9 || r.Tick != 1 {
		t.Fatalf("record = %+v", r)
	}
	if r.Sand != 1 || r.Water+r.Steam != 1 || r.Air != 14 {
		t.Fatalf("census fields = %+v", r)
	}
	if r.Falls < 1 {
		t.Fatalf("falls = %d, want at least one", r.Falls)
	}
}
