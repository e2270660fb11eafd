package sand

var (
	riseLeftFirst  = [3][2]int{{0, -1}, {-1, -1}, {1, -1}}
	riseRightFirst = [3][2]int{{0, -1}, {1, -1}, {-1, -1}}
)

// risePass is pass two: gas buoyancy. Rows are visited bottom to top.
func (w *World) risePass(cells []Element) {
	w.beginPass()
	start, end, step := w.columnOrder()
	for x := start; x != end; x += step {
		for y := w.size.H - 1; y >= 0; y-- {
			i := w.size.Index(x, y)
			if w.movedThisPass(i) || !cells[i].Is(Gas) || cells[i].Is(Immovable) {
				continue
			}
			w.rise(cells, x, y)
		}
	}
}

func (w *World) rise(cells []Element, x, y int) {
	rose := false
	repeated := false
	for {
		nx, ny, ok, displacedFaller := w.tryRise(cells, x, y)
		if !ok {
			break
		}
		rose = true
		x, y = nx, ny
		if !displacedFaller || repeated {
			break
		}
		repeated = true
	}
	if rose {
		w.stats.Rises++
		w.markMoved(w.size.Index(x, y))
	}
}

func (w *World) tryRise(cells []Element, x, y int) (int, int, bool, bool) {
	order := riseLeftFirst
	if w.rng.Bool() {
		order = riseRightFirst
	}
	side := -1
	if w.rng.Bool() {
		side = 1
	}

	src := w.size.Index(x, y)
	try := func(nx, ny int) (bool, bool) {
		if !w.size.InBounds(nx, ny) {
			return false, false
		}
		dst := w.size.Index(nx, ny)
		if !canRise(&cells[src], &cells[dst]) {
			return false, false
		}
		displacedFaller := cells[dst].Is(CanFall)
		cells[src], cells[dst] = cells[dst], cells[src]
		return true, displacedFaller
	}

	if w.size.InBounds(x, y-1) && !cells[w.size.Index(x, y-1)].Is(Immovable) {
		for _, off := range order {
			nx, ny := x+off[0], y+off[1]
			if ok, displaced := try(nx, ny); ok {
				return nx, ny, true, displaced
			}
		}
	}
	if ok, displaced := try(x+side, y); ok {
		return x + side, y, true, displaced
	}
	return x, y, false, false
}

// canRise reports whether a gas may trade places with dst: dst must be a
// fluid (gas, liquid or air), movable and strictly denser.
func canRise(mover, dst *Element) bool {
	if dst.Is(Immovable) {
		return false
	}
	if !dst.Attrs.Any(Gas | Liquid | AirLike) {
		return false
	}
	return dst.Density > mover.Density
}
