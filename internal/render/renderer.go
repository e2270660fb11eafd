//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads packed cell colors into a single image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte

	overlay    *ebiten.Image
	overlayBuf []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the packed cells and draws them scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, packed []uint32, scale int) {
	if len(packed) != gp.w*gp.h {
		return
	}
	fillPackedRGBA(gp.buf, packed)
	gp.img.WritePixels(gp.buf)
	dst.DrawImage(gp.img, gp.scaled(scale))
}

// BlitRamp draws a translucent heat map of values over dst.
func (gp *GridPainter) BlitRamp(dst *ebiten.Image, values []float32, ramp func(t float64) color.RGBA, alpha float64, scale int) {
	if len(values) != gp.w*gp.h {
		return
	}
	if gp.overlay == nil {
		gp.overlay = ebiten.NewImage(gp.w, gp.h)
		gp.overlayBuf = make([]byte, 4*gp.w*gp.h)
	}
	fillRampRGBA(gp.overlayBuf, values, ramp, alpha)
	gp.overlay.WritePixels(gp.overlayBuf)
	dst.DrawImage(gp.overlay, gp.scaled(scale))
}

func (gp *GridPainter) scaled(scale int) *ebiten.DrawImageOptions {
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	return op
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
