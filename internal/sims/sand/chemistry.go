package sand

// reactPass is pass three: pairwise reactions with 4-neighbours. The first
// matching neighbour wins and each cell reacts at most once per tick.
func (w *World) reactPass(cells []Element) {
	start, end, step := w.columnOrder()
	for x := start; x != end; x += step {
		for y := 0; y < w.size.H; y++ {
			i := w.size.Index(x, y)
			kind := cells[i].Type
			if !w.reactions.Reactive(kind) {
				continue
			}
			for _, off := range neighbours4 {
				nx, ny := x+off[0], y+off[1]
				if !w.size.InBounds(nx, ny) {
					continue
				}
				j := w.size.Index(nx, ny)
				product, ok := w.reactions.Lookup(kind, cells[j].Type)
				if !ok {
					continue
				}
				cells[i] = w.catalog.Instantiate(product, w.rng)
				cells[j] = w.catalog.Instantiate(Air, w.rng)
				w.stats.Reactions++
				break
			}
		}
	}
}
