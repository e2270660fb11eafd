package sand

import (
	"math"

	"sandca/internal/core"
)

// ElementColor is a base color plus the bounds of its per-instance
// perturbation.
type ElementColor struct {
	Base RGB
	// RV, GV and BV bound the independent per-channel deltas.
	RV, GV, BV float32
	// DV bounds the brightness delta shared by all three channels.
	DV float32
	// MaxDist caps the Euclidean RGB distance from Base.
	MaxDist float32
}

// Vary draws a render color around Base. The result never lies further than
// MaxDist from Base.
func (c ElementColor) Vary(src core.Source) RGB {
	dr := core.Symmetric(src, c.RV)
	dg := core.Symmetric(src, c.GV)
	db := core.Symmetric(src, c.BV)
	dark := core.Symmetric(src, c.DV)

	out := RGB{
		R: clamp01(c.Base.R + dr + dark),
		G: clamp01(c.Base.G + dg + dark),
		B: clamp01(c.Base.B + db + dark),
	}
	return limitDrift(c.Base, out, c.MaxDist)
}

// limitDrift pulls v back inside the sphere of radius maxDist around base
// when it lies outside it. The scale is computed in float64 and shrunk until
// the float32 result measures within maxDist.
func limitDrift(base, v RGB, maxDist float32) RGB {
	dist := Distance(base, v)
	if dist <= maxDist || dist == 0 {
		return v
	}
	if maxDist <= 0 {
		return base
	}
	k := float64(maxDist) / float64(dist)
	out := scaleToward(base, v, k)
	for eps := 1e-7; Distance(base, out) > maxDist; eps *= 2 {
		k *= 1 - math.Min(eps, 1)
		out = scaleToward(base, v, k)
	}
	return out
}

// scaleToward returns base + (v-base)*k.
func scaleToward(base, v RGB, k float64) RGB {
	lerp := func(b, c float32) float32 {
		return float32(float64(b) + (float64(c)-float64(b))*k)
	}
	return RGB{R: lerp(base.R, v.R), G: lerp(base.G, v.G), B: lerp(base.B, v.B)}
}

// Distance is the Euclidean distance between two colors in RGB space.
func Distance(a, b RGB) float32 {
	dr := float64(a.R - b.R)
	dg := float64(a.G - b.G)
	db := float64(a.B - b.B)
	return float32(math.Sqrt(dr*dr + dg*dg + db*db))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
