package sand

import (
	"math"
	"slices"
	"testing"

	"sandca/internal/core"
)

func TestSandFallsOntoImmovableFloor(t *testing.T) {
	w := newScriptedWorld(3, 3, Params{CondensRadius: 3})
	w.PlaceAt(Sand, 1, 0)
	for x := 0; x < 3; x++ {
		w.PlaceAt(Stone, x, 2)
	}

	runPass(w, w.movePass)

	if got := kindAt(w, 1, 1); got != Sand {
		t.Fatalf("middle row = %s, want sand", got)
	}
	if got := kindAt(w, 1, 0); got != Air {
		t.Fatalf("top row = %s, want air", got)
	}
	for x := 0; x < 3; x++ {
		if got := kindAt(w, x, 2); got != Stone {
			t.Fatalf("floor (%d,2) = %s, want stone", x, got)
		}
	}

	runPass(w, w.movePass)
	if got := kindAt(w, 1, 1); got != Sand {
		t.Fatalf("sand resting on stone moved to another cell")
	}
	if e, _ := w.At(1, 1); e.Falling {
		t.Fatal("sand that failed to fall must stop falling")
	}
}

func TestFallMovesOneCellPerPass(t *testing.T) {
	w := newScriptedWorld(1, 6, Params{CondensRadius: 3})
	w.PlaceAt(Sand, 0, 0)
	for tick := 1; tick <= 5; tick++ {
		runPass(w, w.movePass)
		if got := kindAt(w, 0, tick); got != Sand {
			t.Fatalf("tick %d: sand not at row %d", tick, tick)
		}
	}
}

func TestImmovableNeverMoves(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 24, 20
	cfg.Scene = SceneEmpty
	cfg.Params.EvapRate = 0.05
	cfg.Params.CondensRate = 0.05
	empty, err := NewReactions(nil)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWithConfig(cfg, WithReactions(empty))
	w.Reset(21)

	rng := core.NewRNG(4)
	kinds := []ElementType{Water, Sand, Dirt, Stone, Metal, Steam, Bendium}
	for i := 0; i < w.Size().Area(); i++ {
		if rng.IntN(3) == 0 {
			continue
		}
		w.Place(kinds[rng.IntN(len(kinds))], i)
	}

	fixed := map[int]ElementType{}
	for i, c := range w.Cells() {
		if c.Is(Immovable) {
			fixed[i] = c.Type
		}
	}
	if len(fixed) == 0 {
		t.Fatal("setup placed no immovable cells")
	}

	for tick := 0; tick < 200; tick++ {
		w.Step()
		cells := w.Cells()
		for i, kind := range fixed {
			if cells[i].Type != kind {
				t.Fatalf("tick %d: immovable %s at %d replaced by %s", tick, kind, i, cells[i].Type)
			}
		}
	}
}

func TestCanSink(t *testing.T) {
	c := DefaultCatalog()
	cases := []struct {
		mover, dst ElementType
		want       bool
	}{
		{Sand, Air, true},
		{Sand, Water, true},
		{Water, Air, true},
		{Steam, Air, false},
		{Water, Sand, false},
		{Water, Steam, false},
		{Sand, Dirt, false},
		{Bendium, Sand, false},
		{Sand, Stone, false},
		{Sand, Metal, false},
		{Water, Water, false},
	}
	for _, tc := range cases {
		mover, dst := c.Template(tc.mover), c.Template(tc.dst)
		if got := canSink(&mover, &dst); got != tc.want {
			t.Fatalf("canSink(%s into %s) = %v, want %v", tc.mover, tc.dst, got, tc.want)
		}
	}
}

func TestSolidsNeverSwap(t *testing.T) {
	w := newScriptedWorld(1, 2, Params{CondensRadius: 3})
	w.PlaceAt(Sand, 0, 0)
	w.PlaceAt(Dirt, 0, 1)
	for i := 0; i < 3; i++ {
		runPass(w, w.movePass)
	}
	if kindAt(w, 0, 0) != Sand || kindAt(w, 0, 1) != Dirt {
		t.Fatal("heavier solid displaced a lighter solid")
	}
}

func TestRestingCellOnlyTriesStraightDown(t *testing.T) {
	w := newScriptedWorld(3, 2, Params{CondensRadius: 3})
	w.PlaceAt(Sand, 1, 0)
	w.PlaceAt(Sand, 1, 1)
	w.Cells()[w.Size().Index(1, 0)].Falling = false

	runPass(w, w.movePass)

	if kindAt(w, 1, 0) != Sand || kindAt(w, 2, 1) != Air {
		t.Fatal("resting sand must not slide diagonally")
	}
}

func TestBlockedBelowStopsDiagonals(t *testing.T) {
	w := newScriptedWorld(3, 2, Params{CondensRadius: 3})
	w.PlaceAt(Sand, 1, 0)
	w.PlaceAt(Metal, 1, 1)

	runPass(w, w.movePass)

	if kindAt(w, 1, 0) != Sand {
		t.Fatal("sand above an immovable cell must stay put")
	}
}

func TestLiquidSpreadsSideways(t *testing.T) {
	w := newScriptedWorld(3, 1, Params{CondensRadius: 3})
	w.PlaceAt(Water, 1, 0)

	runPass(w, w.movePass)

	if kindAt(w, 2, 0) != Water || kindAt(w, 1, 0) != Air {
		t.Fatal("water should spread one cell to the right")
	}
	if w.stats.Spreads != 1 {
		t.Fatalf("spreads = %d, want 1", w.stats.Spreads)
	}
}

func TestLiquidDoesNotSpreadIntoGas(t *testing.T) {
	w := newScriptedWorld(3, 1, Params{CondensRadius: 3})
	w.PlaceAt(Water, 1, 0)
	w.PlaceAt(Steam, 2, 0)

	runPass(w, w.movePass)

	if kindAt(w, 1, 0) != Water || kindAt(w, 2, 0) != Steam {
		t.Fatal("water must not displace steam")
	}
}

func TestGasRisesOneCellPerPass(t *testing.T) {
	w := newScriptedWorld(1, 3, Params{CondensRadius: 3})
	w.PlaceAt(Steam, 0, 2)

	runPass(w, w.risePass)
	if kindAt(w, 0, 1) != Steam {
		t.Fatal("steam should rise one row")
	}
	runPass(w, w.risePass)
	if kindAt(w, 0, 0) != Steam {
		t.Fatal("steam should reach the top row")
	}
	runPass(w, w.risePass)
	if kindAt(w, 0, 0) != Steam {
		t.Fatal("steam at the top edge must stay")
	}
}

func TestGasRisesThroughWater(t *testing.T) {
	w := newScriptedWorld(1, 2, Params{CondensRadius: 3})
	w.PlaceAt(Water, 0, 0)
	w.PlaceAt(Steam, 0, 1)

	runPass(w, w.risePass)

	if kindAt(w, 0, 0) != Steam || kindAt(w, 0, 1) != Water {
		t.Fatal("steam should swap upward with water")
	}
}

func TestCanRise(t *testing.T) {
	c := DefaultCatalog()
	cases := []struct {
		dst  ElementType
		want bool
	}{
		{Air, true},
		{Water, true},
		{Steam, false},
		{Sand, false},
		{Stone, false},
	}
	steam := c.Template(Steam)
	for _, tc := range cases {
		dst := c.Template(tc.dst)
		if got := canRise(&steam, &dst); got != tc.want {
			t.Fatalf("canRise(steam into %s) = %v, want %v", tc.dst, got, tc.want)
		}
	}
}

func TestSandStoneReaction(t *testing.T) {
	w := newScriptedWorld(1, 2, Params{CondensRadius: 3})
	w.PlaceAt(Sand, 0, 0)
	w.PlaceAt(Stone, 0, 1)

	runPass(w, w.reactPass)

	if kindAt(w, 0, 0) != Bendium || kindAt(w, 0, 1) != Air {
		t.Fatalf("after reaction got %s over %s", kindAt(w, 0, 0), kindAt(w, 0, 1))
	}
	census := w.Census()
	if census[Bendium] != 1 || census[Air] != 1 {
		t.Fatalf("census = %v", census)
	}

	before := slices.Clone(w.Cells())
	runPass(w, w.reactPass)
	if !slices.Equal(before, w.Cells()) {
		t.Fatal("second chemistry pass changed the grid")
	}
}

func TestReactionConsumesOnePartner(t *testing.T) {
	w := newScriptedWorld(3, 1, Params{CondensRadius: 3})
	w.PlaceAt(Stone, 0, 0)
	w.PlaceAt(Sand, 1, 0)
	w.PlaceAt(Stone, 2, 0)

	runPass(w, w.reactPass)

	census := w.Census()
	if census[Bendium] != 1 || census[Air] != 1 || census[Stone] != 1 {
		t.Fatalf("census = %v, want one of each", census)
	}
}

func TestEvaporationRates(t *testing.T) {
	for _, tc := range []struct {
		rate float64
		want ElementType
	}{{0, Water}, {1, Steam}} {
		w := newScriptedWorld(1, 1, Params{EvapRate: tc.rate, CondensRadius: 3})
		w.PlaceAt(Water, 0, 0)
		runPass(w, w.movePass)
		if got := kindAt(w, 0, 0); got != Water {
			t.Fatalf("rate %v: isolated water became %s", tc.rate, got)
		}

		w = newScriptedWorld(3, 1, Params{EvapRate: tc.rate, CondensRadius: 3})
		w.PlaceAt(Water, 0, 0)
		w.PlaceAt(Stone, 1, 0)
		runPass(w, w.movePass)
		if got := kindAt(w, 0, 0); got != Water {
			t.Fatalf("rate %v: water without air neighbours became %s", tc.rate, got)
		}

		w = newScriptedWorld(2, 2, Params{EvapRate: tc.rate, CondensRadius: 3})
		w.PlaceAt(Stone, 0, 1)
		w.PlaceAt(Stone, 1, 1)
		w.PlaceAt(Water, 0, 0)
		runPass(w, w.movePass)
		if got := w.Census()[tc.want]; got != 1 {
			t.Fatalf("rate %v: census = %v, want one %s", tc.rate, w.Census(), tc.want)
		}
	}
}

func TestCondensationRates(t *testing.T) {
	for _, tc := range []struct {
		rate float64
		want ElementType
	}{{0, Steam}, {1, Water}} {
		w := newScriptedWorld(1, 1, Params{CondensRate: tc.rate, CondensRadius: 1})
		w.PlaceAt(Steam, 0, 0)
		runPass(w, w.movePass)
		if got := kindAt(w, 0, 0); got != tc.want {
			t.Fatalf("rate %v: steam became %s, want %s", tc.rate, got, tc.want)
		}
	}
}

func TestPhaseChanceMonotonic(t *testing.T) {
	for _, rate := range []float64{0, 0.0002, 0.1, 0.4} {
		if got := phaseChance(rate, 0); got != 0 {
			t.Fatalf("phaseChance(%v, 0) = %v, want 0", rate, got)
		}
		prev := 0.0
		for n := 0; n <= 48; n++ {
			p := phaseChance(rate, n)
			if p < prev || p > 1 {
				t.Fatalf("phaseChance(%v, %d) = %v after %v", rate, n, p, prev)
			}
			prev = p
		}
	}
}

func TestNeighbourCounts(t *testing.T) {
	w := newScriptedWorld(3, 3, Params{CondensRadius: 1})
	w.PlaceAt(Steam, 1, 1)
	cells := w.Cells()
	if got := w.kinNeighbors(cells, 1, 1, 1); got != 0 {
		t.Fatalf("centre kin = %d, want 0", got)
	}
	if got := w.airNeighbors(cells, 1, 1); got != 4 {
		t.Fatalf("centre air = %d, want 4", got)
	}

	w.Clear()
	w.PlaceAt(Steam, 0, 0)
	w.PlaceAt(Steam, 1, 1)
	cells = w.Cells()
	if got := w.kinNeighbors(cells, 0, 0, 1); got != 6 {
		t.Fatalf("corner kin = %d, want 5 off-grid plus 1", got)
	}
	if got := w.airNeighbors(cells, 0, 0); got != 2 {
		t.Fatalf("corner air = %d, want 2", got)
	}
}

func TestPixelsPackReadBuffer(t *testing.T) {
	w := newScriptedWorld(2, 1, Params{CondensRadius: 3})
	w.PlaceAt(Stone, 1, 0)
	c := w.Catalog()
	want := []uint32{c.Template(Air).Color.Base.Pack(), c.Template(Stone).Color.Base.Pack()}
	if got := w.Pixels(); !slices.Equal(got, want) {
		t.Fatalf("Pixels = %x, want %x", got, want)
	}
	if want[1] != 0x3C3C3C {
		t.Fatalf("stone packs to %#06x", want[1])
	}
}

func TestStepUpdatesStats(t *testing.T) {
	w := newScriptedWorld(1, 4, Params{CondensRadius: 3})
	w.PlaceAt(Sand, 0, 0)
	w.Step()
	w.Advance(0.5)
	s := w.LastStats()
	if s.Tick != 2 || s.Falls != 1 {
		t.Fatalf("stats = %+v", s)
	}
	if math.Abs(s.SimTime-(defaultTickSeconds+0.5)) > 1e-9 {
		t.Fatalf("sim time = %v", s.SimTime)
	}
	if kindAt(w, 0, 2) != Sand {
		t.Fatal("two ticks should move sand two rows")
	}
}

func TestResetDeterministic(t *testing.T) {
	for _, scene := range Scenes() {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height = 40, 30
		cfg.Scene = scene
		a, b := NewWithConfig(cfg), NewWithConfig(cfg)
		a.Reset(42)
		b.Reset(42)
		for i := 0; i < 30; i++ {
			a.Step()
			b.Step()
		}
		if !slices.Equal(a.Pixels(), b.Pixels()) {
			t.Fatalf("scene %s diverged under the same seed", scene)
		}
	}

	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 40, 30
	cfg.Scene = SceneTerrain
	w := NewWithConfig(cfg)
	w.Reset(0)
	first := slices.Clone(w.Pixels())
	w.Reset(cfg.Seed)
	if !slices.Equal(first, w.Pixels()) {
		t.Fatal("Reset(0) should use the configured seed")
	}
}

func TestResetUnknownSceneIsEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	cfg.Scene = "volcano"
	w := NewWithConfig(cfg)
	w.Reset(3)
	if got := w.Census()[Air]; got != 64 {
		t.Fatalf("air cells = %d, want 64", got)
	}
}

func TestBasinSceneHasWallsAndWater(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 40, 30
	w := NewWithConfig(cfg)
	w.Reset(1)
	census := w.Census()
	if census[Stone] == 0 || census[Water] == 0 || census[Sand] == 0 {
		t.Fatalf("basin census = %v", census)
	}
}

func TestPlacePanicsOutsideGrid(t *testing.T) {
	w := newScriptedWorld(2, 2, Params{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range index")
		}
	}()
	w.Place(Sand, 4)
}

func TestPaintDisc(t *testing.T) {
	w := newScriptedWorld(5, 5, Params{})
	w.Paint(int(Sand), 2, 2, 1)
	if got := w.Census()[Sand]; got != 5 {
		t.Fatalf("radius 1 disc painted %d cells, want 5", got)
	}
	w.Paint(int(Stone), 0, 0, 0)
	if kindAt(w, 0, 0) != Stone {
		t.Fatal("radius 0 should paint a single cell")
	}
	w.Paint(99, 4, 4, 2)
	w.Paint(-1, 4, 4, 2)
	if kindAt(w, 4, 4) != Air {
		t.Fatal("invalid material must be ignored")
	}
}

func TestMaterialsFollowEnumeration(t *testing.T) {
	w := New(4, 4)
	names := w.Materials()
	if len(names) != int(elementTypeCount) || names[Sand] != "Sand" || names[Bendium] != "Bendium" {
		t.Fatalf("Materials = %v", names)
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":              "64",
		"h":              "-3",
		"seed":           "9",
		"scene":          "hourglass",
		"evap_rate":      "0.5",
		"condens_rate":   "2",
		"condens_radius": "5",
		"brush_radius":   "40",
	})
	def := DefaultConfig()
	if cfg.Width != 64 || cfg.Height != def.Height || cfg.Seed != 9 || cfg.Scene != SceneHourglass {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Params.EvapRate != 0.5 || cfg.Params.CondensRate != def.Params.CondensRate {
		t.Fatalf("rates = %+v", cfg.Params)
	}
	if cfg.Params.CondensRadius != 5 || cfg.Params.BrushRadius != def.Params.BrushRadius {
		t.Fatalf("radii = %+v", cfg.Params)
	}
}

func TestParameterSetters(t *testing.T) {
	w := New(8, 8)
	if !w.SetFloatParameter("evap_rate", 3) || w.Config().Params.EvapRate != 1 {
		t.Fatal("evap_rate should clamp to 1")
	}
	if !w.SetIntParameter("condens_radius", 0) || w.Config().Params.CondensRadius != 1 {
		t.Fatal("condens_radius should clamp to 1")
	}
	if w.SetIntParameter("nope", 1) || w.SetFloatParameter("nope", 1) {
		t.Fatal("unknown keys must be rejected")
	}
	p, ok := w.Parameters().Lookup("condens_radius")
	if !ok || p.Value != "1" {
		t.Fatalf("snapshot = %+v %v", p, ok)
	}
}

func TestRegistered(t *testing.T) {
	f, ok := core.Sims()["sand"]
	if !ok {
		t.Fatal("sand sim not registered")
	}
	sim := f(map[string]string{"w": "10", "h": "6"})
	if sim.Size() != (core.Size{W: 10, H: 6}) {
		t.Fatalf("size = %+v", sim.Size())
	}
}

func TestDensityFieldNormalised(t *testing.T) {
	w := newScriptedWorld(3, 1, Params{})
	w.PlaceAt(Metal, 0, 0)
	w.PlaceAt(Water, 1, 0)
	field := w.DensityField(nil)
	if field[0] != 1 {
		t.Fatalf("densest kind should map to 1, got %v", field[0])
	}
	if !(field[2] < field[1] && field[1] < field[0]) || field[2] <= 0 {
		t.Fatalf("field not ordered by density: %v", field)
	}

	mask := w.FallingMask(nil)
	if mask[0] != 0 || mask[1] != 1 || mask[2] != 0 {
		t.Fatalf("falling mask = %v", mask)
	}
}
