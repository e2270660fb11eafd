package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Area returns the number of cells in a grid of this size.
func (s Size) Area() int { return s.W * s.H }

// Index returns the row-major slice index for coordinates (x, y).
func (s Size) Index(x, y int) int { return y*s.W + x }

// Coords is the inverse of Index.
func (s Size) Coords(i int) (int, int) { return i % s.W, i / s.W }

// InBounds reports whether (x, y) addresses a cell inside the grid.
func (s Size) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.W && y < s.H
}

// Sim defines the minimal contract a cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	// Pixels returns one packed 0xRRGGBB value per cell in row-major order.
	Pixels() []uint32
}

// Advancer is implemented by sims that accept an explicit frame delta.
type Advancer interface {
	Advance(dt float64)
}

// Painter is implemented by sims that accept placement commands from a
// front end. Materials lists the placeable materials; Paint fills a disc of
// the given radius centred on (x, y) with the material at that index.
type Painter interface {
	Materials() []string
	Paint(material, x, y, radius int)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
