//go:build ebiten

package app

import (
	"time"

	"go.uber.org/zap"

	"sandca/internal/core"
	"sandca/internal/render"
	"sandca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type brushProvider interface {
	BrushRadius() int
}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
	ebiten.KeyDigit9,
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.StepClock
	log     *zap.Logger

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64

	dragging     bool
	lastX, lastY int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		timer:    core.NewStepClock(cfg.TPS),
		log:      log,
		scale:    max(cfg.Scale, 1),
		hudWidth: max(cfg.HUDWidth, 0),
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.log.Info("reset", zap.Int64("seed", seed))
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if c, ok := g.sim.(interface{ Clear() }); ok {
			c.Clear()
		}
	}
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.hud.SetSelected(i)
		}
	}

	g.overlay.Update()
	size := g.sim.Size()
	consumed := g.hud.Update(size.W * g.scale)
	if !consumed {
		g.paint()
	}

	if !g.paused || g.tickOnce {
		g.advance()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) advance() {
	adv, ok := g.sim.(core.Advancer)
	if !ok {
		g.sim.Step()
		return
	}
	adv.Advance(g.timer.Seconds())
}

func (g *Game) paint() {
	p, ok := g.sim.(core.Painter)
	if !ok || !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
		return
	}
	size := g.sim.Size()
	mx, my := ebiten.CursorPosition()
	x, y, inside := cellAt(mx, my, g.scale, size.W, size.H)
	if !inside {
		g.dragging = false
		return
	}
	radius := 0
	if b, ok := g.sim.(brushProvider); ok {
		radius = b.BrushRadius()
	}
	material := g.hud.Selected()
	if !g.dragging {
		g.lastX, g.lastY = x, y
	}
	for _, c := range strokeCells(g.lastX, g.lastY, x, y) {
		p.Paint(material, c[0], c[1], radius)
	}
	g.dragging = true
	g.lastX, g.lastY = x, y
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Pixels(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
