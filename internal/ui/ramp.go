package ui

import "image/color"

var densityStops = []color.RGBA{
	{R: 20, G: 30, B: 90, A: 200},
	{R: 40, G: 150, B: 170, A: 200},
	{R: 240, G: 210, B: 80, A: 200},
	{R: 220, G: 60, B: 40, A: 220},
}

// DensityRamp maps t in [0, 1] from cool (light) to hot (heavy).
func DensityRamp(t float64) color.RGBA {
	t = clamp01(t)
	span := float64(len(densityStops) - 1)
	pos := t * span
	i := int(pos)
	if i >= len(densityStops)-1 {
		return densityStops[len(densityStops)-1]
	}
	return lerpRGBA(densityStops[i], densityStops[i+1], pos-float64(i))
}

// MotionRamp highlights falling cells and leaves resting ones clear.
func MotionRamp(t float64) color.RGBA {
	if t < 0.5 {
		return color.RGBA{}
	}
	return color.RGBA{R: 255, G: 80, B: 200, A: 160}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*clamp01(t) + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// labelColorFor picks dark or light text for legibility on bg.
func labelColorFor(bg color.RGBA) color.RGBA {
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma > 140 {
		return color.RGBA{R: 16, G: 16, B: 20, A: 255}
	}
	return color.RGBA{R: 240, G: 240, B: 245, A: 255}
}
