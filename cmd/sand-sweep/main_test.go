package main

import (
	"strings"
	"testing"

	"github.com/logrusorgru/aurora"

	"sandca/internal/telemetry"
)

func TestBuildGrid(t *testing.T) {
	g, err := buildGrid(options{
		scenes:       "basin, terrain,,",
		evapRates:    "0.001,0",
		condensRates: "0.5",
		seeds:        "3,4,5",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Scenes) != 2 || len(g.EvapRates) != 2 || len(g.CondensRates) != 1 || len(g.Seeds) != 3 {
		t.Fatalf("grid = %+v", g)
	}
	if len(g.Runs()) != 12 {
		t.Fatalf("runs = %d", len(g.Runs()))
	}
}

func TestBuildGridRejectsBadValues(t *testing.T) {
	bad := []options{
		{evapRates: "fast"},
		{evapRates: "1.5"},
		{condensRates: "-0.1"},
		{seeds: "x"},
		{steps: -2},
	}
	for _, o := range bad {
		if _, err := buildGrid(o); err == nil {
			t.Fatalf("buildGrid(%+v) should fail", o)
		}
	}
}

func TestReportPlain(t *testing.T) {
	au := aurora.NewAurora(false)
	lines := report(au, []telemetry.Summary{
		{Run: telemetry.Run{ID: 1, Scene: "basin", Seed: 2}, SettleTick: -1},
		{Run: telemetry.Run{ID: 2, Scene: "terrain", Seed: 2}, SettleTick: 40},
	})
	if len(lines) != 3 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.Contains(lines[1], "never") || !strings.Contains(lines[2], " 40 ") {
		t.Fatalf("report = %q", lines)
	}
	if strings.Contains(strings.Join(lines, ""), "\x1b[") {
		t.Fatal("plain report must not contain escape codes")
	}
}
