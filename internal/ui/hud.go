//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"sandca/internal/core"
	"sandca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type swatchProvider interface {
	MaterialColors() []uint32
}

type statusProvider interface {
	StatusLines() []string
}

// HUD renders the material palette, tick counters and tunables to the right
// of the simulation view.
type HUD struct {
	sim   core.Sim
	width int

	panel      *ebiten.Image
	lastHeight int
	pixel      *ebiten.Image
	offsetX    int

	materials []string
	swatches  []color.RGBA
	palette   []image.Rectangle
	selected  int

	status   []string
	controls []controlState
	ints     core.IntParameterSetter
	floats   core.FloatParameterSetter
}

// NewHUD builds a panel of the given width for sim.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if p, ok := sim.(core.Painter); ok {
		h.materials = p.Materials()
	}
	if p, ok := sim.(swatchProvider); ok {
		for _, c := range p.MaterialColors() {
			h.swatches = append(h.swatches, render.Unpack(c))
		}
	}
	h.palette = paletteRects(len(h.materials), h.width, panelPadding+headerBaseline+10)
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range p.ParameterControls() {
			h.controls = append(h.controls, controlState{control: ctrl, value: "--"})
		}
	}
	h.ints, _ = sim.(core.IntParameterSetter)
	h.floats, _ = sim.(core.FloatParameterSetter)
	return h
}

// Selected returns the index of the active material.
func (h *HUD) Selected() int {
	if h == nil {
		return 0
	}
	return h.selected
}

// SetSelected changes the active material when i names one.
func (h *HUD) SetSelected(i int) {
	if h == nil || i < 0 || i >= len(h.materials) {
		return
	}
	h.selected = i
}

// Update refreshes cached values and handles clicks inside the panel. It
// reports whether the click was consumed.
func (h *HUD) Update(offsetX int) bool {
	if h == nil {
		return false
	}
	h.offsetX = offsetX
	if p, ok := h.sim.(core.ParameterProvider); ok {
		syncControls(h.controls, p.Parameters())
	}
	if p, ok := h.sim.(statusProvider); ok {
		h.status = p.StatusLines()
	}
	h.layout()
	return h.handleInput()
}

func (h *HUD) layout() {
	top := panelPadding + headerBaseline + 10
	if n := len(h.palette); n > 0 {
		top = h.palette[n-1].Max.Y
	}
	top += panelPadding + (len(h.status)+1)*statLine
	layoutControls(h.controls, h.width, top)
}

func (h *HUD) handleInput() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.offsetX {
		return false
	}
	px := mx - h.offsetX
	if i := hit(h.palette, px, my); i >= 0 {
		h.selected = i
		return true
	}
	for i := range h.controls {
		s := &h.controls[i]
		if !s.hasValue {
			continue
		}
		switch {
		case image.Pt(px, my).In(s.minusRect):
			h.apply(s, -1)
		case image.Pt(px, my).In(s.plusRect):
			h.apply(s, 1)
		default:
			continue
		}
		return true
	}
	return true
}

func (h *HUD) apply(s *controlState, dir int) {
	target, ok := nudge(s.control, s.number, dir)
	if !ok {
		return
	}
	var applied bool
	switch s.control.Type {
	case core.ParamTypeInt:
		applied = h.ints != nil && h.ints.SetIntParameter(s.control.Key, int(target))
	case core.ParamTypeFloat:
		applied = h.floats != nil && h.floats.SetFloatParameter(s.control.Key, target)
	}
	if applied {
		s.number = target
		s.value = formatValue(s.control, target)
	}
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	title := strings.ToUpper(h.sim.Name())
	if len(h.materials) > 0 {
		title += "  brush: " + h.materials[h.selected]
	}
	text.Draw(h.panel, title, face, panelPadding, panelPadding+headerBaseline, textColor)

	h.drawPalette()

	y := panelPadding + headerBaseline + 10
	if n := len(h.palette); n > 0 {
		y = h.palette[n-1].Max.Y
	}
	y += panelPadding
	for _, line := range h.status {
		y += statLine
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
	}

	for i := range h.controls {
		h.drawControl(&h.controls[i])
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawPalette() {
	face := basicfont.Face7x13
	for i, r := range h.palette {
		bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
		if i < len(h.swatches) {
			bg = h.swatches[i]
		}
		if i == h.selected {
			h.fillRect(r.Inset(-2), color.RGBA{R: 240, G: 240, B: 250, A: 255})
		}
		h.fillRect(r, bg)
		label := h.materials[i]
		text.Draw(h.panel, label, face, r.Min.X+4, r.Min.Y+r.Dy()/2+4, labelColorFor(bg))
	}
}

func (h *HUD) drawControl(s *controlState) {
	face := basicfont.Face7x13
	y := s.top + labelBaseline
	text.Draw(h.panel, s.control.Label, face, panelPadding, y, textColor)
	valueColor := textColor
	if !s.hasValue {
		valueColor = dimColor
	}
	w := text.BoundString(face, s.value).Dx()
	text.Draw(h.panel, s.value, face, s.minusRect.Min.X-buttonGap-w, y, valueColor)

	_, canDown := nudge(s.control, s.number, -1)
	_, canUp := nudge(s.control, s.number, 1)
	h.drawButton(s.minusRect, "-", s.hasValue && canDown)
	h.drawButton(s.plusRect, "+", s.hasValue && canUp)
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(r, bg)
	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) fillRect(r image.Rectangle, c color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}

var (
	textColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)
