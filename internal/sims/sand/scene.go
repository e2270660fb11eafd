package sand

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Scene names accepted by Config.Scene.
const (
	SceneEmpty     = "empty"
	SceneBasin     = "basin"
	SceneHourglass = "hourglass"
	SceneTerrain   = "terrain"
)

// Scenes lists the built-in scene names.
func Scenes() []string {
	return []string{SceneEmpty, SceneBasin, SceneHourglass, SceneTerrain}
}

// seedScene paints the named scene onto an air-filled read buffer and
// returns the scene actually used. Unknown names fall back to empty.
func (w *World) seedScene(name string, seed int64) string {
	switch name {
	case SceneBasin:
		w.seedBasin()
	case SceneHourglass:
		w.seedHourglass()
	case SceneTerrain:
		w.seedTerrain(seed)
	case SceneEmpty:
	default:
		name = SceneEmpty
	}
	return name
}

// seedBasin builds a stone bowl half full of water with a sand heap
// hanging above it.
func (w *World) seedBasin() {
	W, H := w.size.W, w.size.H
	if W < 4 || H < 4 {
		return
	}
	floor := H - 1
	for x := 0; x < W; x++ {
		w.PlaceAt(Stone, x, floor)
	}
	wall := H / 2
	for y := floor - wall; y < floor; y++ {
		w.PlaceAt(Stone, 0, y)
		w.PlaceAt(Stone, W-1, y)
	}
	for y := floor - wall/2; y < floor; y++ {
		for x := 1; x < W-1; x++ {
			w.PlaceAt(Water, x, y)
		}
	}
	cx := W / 2
	r := max(1, W/10)
	for y := 1; y < 1+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			w.PlaceAt(Sand, x, y)
		}
	}
}

// seedHourglass builds two metal funnels meeting at a one-cell neck with
// sand loaded in the upper bulb and a steam pocket in the lower one.
func (w *World) seedHourglass() {
	W, H := w.size.W, w.size.H
	if W < 5 || H < 6 {
		return
	}
	cx := W / 2
	neck := H / 2
	for y := 0; y < H; y++ {
		d := y - neck
		if d < 0 {
			d = -d
		}
		half := d * (W / 2) / max(1, neck)
		if half < 1 {
			half = 1
		}
		w.PlaceAt(Metal, cx-half-1, y)
		w.PlaceAt(Metal, cx+half+1, y)
		if y < neck/2 {
			for x := cx - half; x <= cx+half; x++ {
				w.PlaceAt(Sand, x, y)
			}
		}
		if y > H-1-neck/4 {
			for x := cx - half; x <= cx+half; x++ {
				w.PlaceAt(Steam, x, y)
			}
		}
	}
}

// seedTerrain lays noise-shaped stone hills capped with dirt and floods the
// valleys below a water line.
func (w *World) seedTerrain(seed int64) {
	W, H := w.size.W, w.size.H
	if W == 0 || H == 0 {
		return
	}
	noise := opensimplex.NewNormalized(seed)
	waterLine := H - H/4
	for x := 0; x < W; x++ {
		v := 0.65*noise.Eval2(float64(x)*0.02, 0) + 0.35*noise.Eval2(float64(x)*0.08, 7.5)
		surface := H - 1 - int(math.Round(v*float64(H)*0.6))
		surface = min(max(surface, 1), H-1)
		dirtDepth := 2 + int(noise.Eval2(float64(x)*0.15, 31)*4)
		for y := surface; y < H; y++ {
			switch {
			case y < surface+dirtDepth:
				w.PlaceAt(Dirt, x, y)
			default:
				w.PlaceAt(Stone, x, y)
			}
		}
		for y := waterLine; y < surface; y++ {
			w.PlaceAt(Water, x, y)
		}
	}
}
