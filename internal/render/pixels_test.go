package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestPackedRGBA(t *testing.T) {
	got := PackedRGBA([]uint32{0xFF8000, 0x0A0AFF})
	want := []byte{0xFF, 0x80, 0x00, 0xFF, 0x0A, 0x0A, 0xFF, 0xFF}
	if !slices.Equal(got, want) {
		t.Fatalf("PackedRGBA = %v, want %v", got, want)
	}
}

func TestUnpack(t *testing.T) {
	if got := Unpack(0x3C3C3C); got != (color.RGBA{R: 60, G: 60, B: 60, A: 255}) {
		t.Fatalf("Unpack = %+v", got)
	}
}

func TestFillRampClampsAndScalesAlpha(t *testing.T) {
	ramp := func(t float64) color.RGBA {
		v := uint8(t * 200)
		return color.RGBA{R: v, G: v, B: v, A: 200}
	}
	buf := make([]byte, 12)
	fillRampRGBA(buf, []float32{-1, 0.5, 3}, ramp, 0.5)
	want := []byte{0, 0, 0, 100, 100, 100, 100, 100, 200, 200, 200, 100}
	if !slices.Equal(buf, want) {
		t.Fatalf("fillRampRGBA = %v, want %v", buf, want)
	}
}
