package sand

import "sandca/internal/core"

// Fall candidates: straight down first, then the diagonals in one of the
// two orders.
var (
	fallLeftFirst  = [3][2]int{{0, 1}, {-1, 1}, {1, 1}}
	fallRightFirst = [3][2]int{{0, 1}, {1, 1}, {-1, 1}}
)

// movePass is pass one: gravity, liquid spreading and phase change. Rows are
// visited top to bottom; cells see moves made earlier in the same pass.
func (w *World) movePass(cells []Element) {
	w.beginPass()
	start, end, step := w.columnOrder()
	for x := start; x != end; x += step {
		for y := 0; y < w.size.H; y++ {
			if w.movedThisPass(w.size.Index(x, y)) {
				continue
			}
			nx, ny := w.settle(cells, x, y)
			w.phaseChange(cells, nx, ny)
		}
	}
}

// settle moves the cell at (x, y) down, diagonally down or, for liquids,
// sideways, and returns where it ended up.
func (w *World) settle(cells []Element, x, y int) (int, int) {
	i := w.size.Index(x, y)
	if !cells[i].Is(CanFall) || cells[i].Is(Immovable) {
		return x, y
	}

	fell := false
	repeated := false
	for {
		nx, ny, ok, displacedFaller := w.tryFall(cells, x, y)
		if !ok {
			break
		}
		fell = true
		x, y = nx, ny
		// One chained attempt when the mover pushed another faller aside.
		if !displacedFaller || repeated {
			break
		}
		repeated = true
	}

	i = w.size.Index(x, y)
	if fell {
		w.stats.Falls++
		w.markMoved(i)
		return x, y
	}
	cells[i].Falling = false

	if cells[i].Is(Liquid) {
		if nx, ok := w.trySpread(cells, x, y); ok {
			w.stats.Spreads++
			w.markMoved(w.size.Index(nx, y))
			return nx, y
		}
	}
	return x, y
}

func (w *World) tryFall(cells []Element, x, y int) (int, int, bool, bool) {
	order := fallLeftFirst
	if w.rng.Bool() {
		order = fallRightFirst
	}
	if !w.size.InBounds(x, y+1) {
		return x, y, false, false
	}
	if cells[w.size.Index(x, y+1)].Is(Immovable) {
		return x, y, false, false
	}

	src := w.size.Index(x, y)
	candidates := order[:]
	if !cells[src].Falling {
		candidates = order[:1]
	}
	for _, off := range candidates {
		nx, ny := x+off[0], y+off[1]
		if !w.size.InBounds(nx, ny) {
			continue
		}
		dst := w.size.Index(nx, ny)
		if !canSink(&cells[src], &cells[dst]) {
			continue
		}
		displacedFaller := cells[dst].Is(CanFall)
		cells[src], cells[dst] = cells[dst], cells[src]
		cells[dst].Falling = true
		return nx, ny, true, displacedFaller
	}
	return x, y, false, false
}

// canSink reports whether mover may trade places with the cell below it.
// Solids never displace solids and liquids never displace gas; otherwise
// the destination must be strictly lighter.
func canSink(mover, dst *Element) bool {
	if dst.Is(Immovable) {
		return false
	}
	if mover.Is(Liquid) && dst.Is(Gas) {
		return false
	}
	if mover.Is(Solid) && dst.Is(Solid) {
		return false
	}
	return dst.Density < mover.Density
}

func (w *World) trySpread(cells []Element, x, y int) (int, bool) {
	dx := -1
	if w.rng.Bool() {
		dx = 1
	}
	nx := x + dx
	if !w.size.InBounds(nx, y) {
		return x, false
	}
	src := w.size.Index(x, y)
	dst := w.size.Index(nx, y)
	if cells[dst].Is(Immovable) || cells[dst].Is(Gas) {
		return x, false
	}
	if cells[dst].Density >= cells[src].Density {
		return x, false
	}
	cells[src], cells[dst] = cells[dst], cells[src]
	return nx, true
}

// phaseChange applies evaporation, condensation and sparkle to the cell at
// (x, y).
func (w *World) phaseChange(cells []Element, x, y int) {
	i := w.size.Index(x, y)
	e := &cells[i]

	if target, ok := e.Attrs.EvaporatesTo(); ok {
		p := phaseChance(w.cfg.Params.EvapRate, w.airNeighbors(cells, x, y))
		if core.Chance(w.rng, p) {
			cells[i] = w.catalog.Instantiate(target, w.rng)
			w.stats.Evaporations++
			return
		}
	}
	if target, ok := e.Attrs.CondensesTo(); ok {
		p := phaseChance(w.cfg.Params.CondensRate, w.kinNeighbors(cells, x, y, w.cfg.Params.CondensRadius))
		if core.Chance(w.rng, p) {
			cells[i] = w.catalog.Instantiate(target, w.rng)
			w.stats.Condensations++
			return
		}
	}
	if e.Is(Sparkle) {
		e.Render = e.Color.Vary(w.rng)
	}
}

// phaseChance is rate per qualifying neighbour, capped at certainty.
func phaseChance(rate float64, neighbours int) float64 {
	if rate <= 0 || neighbours <= 0 {
		return 0
	}
	p := rate * float64(neighbours)
	if p > 1 {
		return 1
	}
	return p
}

var neighbours4 = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (w *World) airNeighbors(cells []Element, x, y int) int {
	n := 0
	for _, off := range neighbours4 {
		nx, ny := x+off[0], y+off[1]
		if !w.size.InBounds(nx, ny) {
			continue
		}
		if cells[w.size.Index(nx, ny)].Is(AirLike) {
			n++
		}
	}
	return n
}

// kinNeighbors counts same-kind cells in the Chebyshev window around (x, y).
// Cells past the grid edge count as kin.
func (w *World) kinNeighbors(cells []Element, x, y, radius int) int {
	kind := cells[w.size.Index(x, y)].Type
	n := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !w.size.InBounds(nx, ny) || cells[w.size.Index(nx, ny)].Type == kind {
				n++
			}
		}
	}
	return n
}
