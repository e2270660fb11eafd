//go:build ebiten

package ui

import (
	"sandca/internal/core"
	"sandca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type densityProvider interface {
	DensityField(dst []float32) []float32
}

type motionProvider interface {
	FallingMask(dst []float32) []float32
}

// Overlay draws optional debugging layers over the grid: D toggles the
// density heat map and F the falling-cell mask.
type Overlay struct {
	sim     core.Sim
	painter *render.GridPainter
	scale   int

	showDensity bool
	showMotion  bool
	field       []float32
}

// NewOverlay constructs an overlay sharing the grid painter's dimensions.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	s := sim.Size()
	return &Overlay{sim: sim, painter: render.NewGridPainter(s.W, s.H), scale: scale}
}

// Update polls the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.showDensity = !o.showDensity
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.showMotion = !o.showMotion
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showDensity {
		if p, ok := o.sim.(densityProvider); ok {
			o.field = p.DensityField(o.field)
			o.painter.BlitRamp(screen, o.field, DensityRamp, 0.8, o.scale)
		}
	}
	if o.showMotion {
		if p, ok := o.sim.(motionProvider); ok {
			o.field = p.FallingMask(o.field)
			o.painter.BlitRamp(screen, o.field, MotionRamp, 1, o.scale)
		}
	}
}
