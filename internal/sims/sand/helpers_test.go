package sand

import "sandca/internal/core"

// fixedSource answers every draw with the same values so passes follow one
// scripted path: Bool true picks left-to-right scans and right-first moves,
// false mirrors both, and a float of 0.5 makes every color delta zero.
type fixedSource struct {
	b bool
	f float64
}

func (s fixedSource) Bool() bool       { return s.b }
func (s fixedSource) IntN(int) int     { return 0 }
func (s fixedSource) Float32() float32 { return float32(s.f) }
func (s fixedSource) Float64() float64 { return s.f }

func newScriptedWorld(w, h int, params Params) *World {
	return newWorldFrom(fixedSource{b: true, f: 0.5}, w, h, params)
}

// newMirroredWorld scans right to left and prefers left-hand moves.
func newMirroredWorld(w, h int, params Params) *World {
	return newWorldFrom(fixedSource{b: false, f: 0.5}, w, h, params)
}

func newWorldFrom(src fixedSource, w, h int, params Params) *World {
	cfg := Config{Width: w, Height: h, Seed: 1, Scene: SceneEmpty, Params: params}
	return NewWithConfig(cfg, WithSource(func(int64) core.Source { return src }))
}

// runPass executes a single pass the way Advance does.
func runPass(w *World, pass func([]Element)) {
	w.grid.Sync()
	pass(w.grid.Write())
	w.grid.Swap()
}

func kindAt(w *World, x, y int) ElementType {
	e, ok := w.At(x, y)
	if !ok {
		panic("kindAt outside grid")
	}
	return e.Type
}
