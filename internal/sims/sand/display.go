package sand

import (
	"fmt"
	"math"
)

// Pixels converts the read buffer into packed 0xRRGGBB values in row-major
// order. The returned slice is reused between calls.
func (w *World) Pixels() []uint32 {
	cells := w.grid.Read()
	if len(w.pixels) != len(cells) {
		w.pixels = make([]uint32, len(cells))
	}
	for i := range cells {
		w.pixels[i] = cells[i].Render.Pack()
	}
	return w.pixels
}

// Census counts cells per kind in the read buffer.
func (w *World) Census() map[ElementType]int {
	counts := make(map[ElementType]int, elementTypeCount)
	for _, c := range w.grid.Read() {
		counts[c.Type]++
	}
	return counts
}

// DensityField writes each cell's density on a log scale normalised to the
// densest kind in the catalog. dst is reused when it has the right length.
func (w *World) DensityField(dst []float32) []float32 {
	cells := w.grid.Read()
	if len(dst) != len(cells) {
		dst = make([]float32, len(cells))
	}
	var maxDensity float32
	for _, k := range ElementTypes() {
		maxDensity = max(maxDensity, w.catalog.Template(k).Density)
	}
	if maxDensity <= 0 {
		clear(dst)
		return dst
	}
	norm := math.Log1p(float64(maxDensity))
	for i := range cells {
		dst[i] = float32(math.Log1p(float64(max(cells[i].Density, 0))) / norm)
	}
	return dst
}

// FallingMask writes 1 for cells currently marked as falling and 0 elsewhere.
func (w *World) FallingMask(dst []float32) []float32 {
	cells := w.grid.Read()
	if len(dst) != len(cells) {
		dst = make([]float32, len(cells))
	}
	for i := range cells {
		dst[i] = 0
		if cells[i].Falling {
			dst[i] = 1
		}
	}
	return dst
}

// MaterialColors returns the packed base color of each material in
// Materials order.
func (w *World) MaterialColors() []uint32 {
	kinds := ElementTypes()
	out := make([]uint32, len(kinds))
	for i, k := range kinds {
		out[i] = w.catalog.Template(k).Color.Base.Pack()
	}
	return out
}

// StatusLines summarises the last tick for status panels.
func (w *World) StatusLines() []string {
	s := w.stats
	return []string{
		fmt.Sprintf("tick %d  t=%.2fs", s.Tick, s.SimTime),
		fmt.Sprintf("falls %d  spreads %d", s.Falls, s.Spreads),
		fmt.Sprintf("rises %d  reactions %d", s.Rises, s.Reactions),
		fmt.Sprintf("evap %d  condense %d", s.Evaporations, s.Condensations),
	}
}
