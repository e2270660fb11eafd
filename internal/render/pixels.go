package render

import "image/color"

// fillPackedRGBA expands packed 0xRRGGBB cells into opaque RGBA pixels.
func fillPackedRGBA(buf []byte, packed []uint32) {
	for i, p := range packed {
		base := i * 4
		buf[base+0] = uint8(p >> 16)
		buf[base+1] = uint8(p >> 8)
		buf[base+2] = uint8(p)
		buf[base+3] = 0xFF
	}
}

// fillRampRGBA maps normalised values through ramp. Values outside [0, 1]
// are clamped; an alpha scale of zero leaves the pixel transparent.
func fillRampRGBA(buf []byte, values []float32, ramp func(t float64) color.RGBA, alpha float64) {
	for i, v := range values {
		base := i * 4
		t := float64(v)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		col := ramp(t)
		a := uint8(float64(col.A) * alpha)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = a
	}
}

// PackedRGBA returns a fresh RGBA byte slice for packed cells.
func PackedRGBA(packed []uint32) []byte {
	buf := make([]byte, 4*len(packed))
	fillPackedRGBA(buf, packed)
	return buf
}

// Unpack splits a packed cell color.
func Unpack(p uint32) color.RGBA {
	return color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 0xFF}
}
