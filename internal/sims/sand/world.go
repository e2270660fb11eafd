package sand

import (
	"fmt"

	"go.uber.org/zap"

	"sandca/internal/core"
)

// defaultTickSeconds is the dt used by Step.
const defaultTickSeconds = 1.0 / 60.0

// TickStats counts what happened during the most recent tick.
type TickStats struct {
	Tick          uint64
	SimTime       float64
	Falls         int
	Spreads       int
	Rises         int
	Reactions     int
	Evaporations  int
	Condensations int
}

// World is the falling-sand grid and its update pipeline.
type World struct {
	cfg  Config
	size core.Size

	grid      *core.SwapBuffer[Element]
	catalog   *Catalog
	reactions *Reactions

	newSource func(seed int64) core.Source
	rng       core.Source
	log       *zap.Logger

	// moved holds the pass stamp of cells that already moved this pass.
	moved []uint32
	stamp uint32

	pixels  []uint32
	stats   TickStats
	tick    uint64
	simTime float64
}

// Option customises a World at construction time.
type Option func(*World)

// WithCatalog replaces the embedded element catalog.
func WithCatalog(c *Catalog) Option {
	return func(w *World) {
		if c != nil {
			w.catalog = c
		}
	}
}

// WithReactions replaces the embedded reaction table.
func WithReactions(r *Reactions) Option {
	return func(w *World) {
		if r != nil {
			w.reactions = r
		}
	}
}

// WithSource installs a randomness factory. It is invoked on construction
// and on every Reset with the effective seed.
func WithSource(fn func(seed int64) core.Source) Option {
	return func(w *World) {
		if fn != nil {
			w.newSource = fn
		}
	}
}

// WithLogger attaches a logger for reset and seeding diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// New returns a sand world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world filled with air. Call Reset to seed the
// configured scene.
func NewWithConfig(cfg Config, opts ...Option) *World {
	if cfg.Width < 0 {
		cfg.Width = 0
	}
	if cfg.Height < 0 {
		cfg.Height = 0
	}
	w := &World{
		cfg:       cfg,
		size:      core.Size{W: cfg.Width, H: cfg.Height},
		newSource: func(seed int64) core.Source { return core.NewRNG(seed) },
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.catalog == nil {
		w.catalog = DefaultCatalog()
	}
	if w.reactions == nil {
		w.reactions = DefaultReactions()
	}
	total := w.size.Area()
	w.grid = core.NewSwapBuffer[Element](total)
	w.moved = make([]uint32, total)
	w.pixels = make([]uint32, total)
	w.rng = w.newSource(cfg.Seed)
	w.fill(Air)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.size }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Catalog exposes the registry used to instantiate cells.
func (w *World) Catalog() *Catalog { return w.catalog }

// Cells exposes the read view of the grid.
func (w *World) Cells() []Element { return w.grid.Read() }

// At returns the cell at (x, y). Out-of-bounds coordinates yield false.
func (w *World) At(x, y int) (Element, bool) {
	if !w.size.InBounds(x, y) {
		return Element{}, false
	}
	return w.grid.Read()[w.size.Index(x, y)], true
}

// LastStats reports the counters of the most recent tick.
func (w *World) LastStats() TickStats { return w.stats }

// Reset reseeds the randomness and rebuilds the configured scene. A zero
// seed selects Config.Seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = w.newSource(effective)
	w.tick = 0
	w.simTime = 0
	w.stats = TickStats{}
	w.fill(Air)
	scene := w.seedScene(w.cfg.Scene, effective)
	w.log.Debug("sand world reset",
		zap.Int64("seed", effective),
		zap.String("scene", scene),
		zap.Int("width", w.size.W),
		zap.Int("height", w.size.H),
	)
}

// Clear overwrites every cell with air.
func (w *World) Clear() { w.fill(Air) }

// Place writes a fresh instance of kind at the row-major index. An index
// outside the grid is a caller bug and panics.
func (w *World) Place(kind ElementType, index int) {
	cells := w.grid.Read()
	if index < 0 || index >= len(cells) {
		panic(fmt.Sprintf("sand: place index %d outside grid of %d cells", index, len(cells)))
	}
	cells[index] = w.catalog.Instantiate(kind, w.rng)
}

// PlaceAt writes kind at (x, y), ignoring coordinates outside the grid.
func (w *World) PlaceAt(kind ElementType, x, y int) {
	if !w.size.InBounds(x, y) {
		return
	}
	w.Place(kind, w.size.Index(x, y))
}

// Materials lists placeable materials in ElementType order.
func (w *World) Materials() []string {
	kinds := ElementTypes()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = w.catalog.Template(k).Name
	}
	return names
}

// Paint fills a disc with the material at index material in ElementTypes.
func (w *World) Paint(material, x, y, radius int) {
	kind := ElementType(material)
	if material < 0 || !kind.Valid() {
		return
	}
	if radius < 0 {
		radius = 0
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			w.PlaceAt(kind, x+dx, y+dy)
		}
	}
}

// Step advances one tick with the default frame delta.
func (w *World) Step() { w.Advance(defaultTickSeconds) }

// Advance runs one tick: the write buffer is reseeded from the read buffer,
// the movement, buoyancy and chemistry passes mutate it in place, and the
// buffers swap. Rates are per tick; dt only accumulates simulated time.
func (w *World) Advance(dt float64) {
	if w.size.Area() == 0 {
		return
	}
	w.tick++
	if dt > 0 {
		w.simTime += dt
	}
	w.stats = TickStats{Tick: w.tick, SimTime: w.simTime}

	w.grid.Sync()
	cells := w.grid.Write()
	w.movePass(cells)
	w.risePass(cells)
	w.reactPass(cells)
	w.grid.Swap()
}

func (w *World) fill(kind ElementType) {
	cells := w.grid.Read()
	for i := range cells {
		cells[i] = w.catalog.Instantiate(kind, w.rng)
	}
}

// columnOrder picks the horizontal scan direction for one pass.
func (w *World) columnOrder() (start, end, step int) {
	if w.rng.Bool() {
		return 0, w.size.W, 1
	}
	return w.size.W - 1, -1, -1
}

func (w *World) beginPass() {
	w.stamp++
	if w.stamp == 0 {
		clear(w.moved)
		w.stamp = 1
	}
}

func (w *World) markMoved(i int) { w.moved[i] = w.stamp }

func (w *World) movedThisPass(i int) bool { return w.moved[i] == w.stamp }

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
