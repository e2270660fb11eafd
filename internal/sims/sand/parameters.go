package sand

import (
	"strconv"

	"sandca/internal/core"
)

// Parameters publishes the world's tunables for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				{Key: "w", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(w.size.W)},
				{Key: "h", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(w.size.H)},
				{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(w.cfg.Seed, 10)},
				{Key: "scene", Label: "Scene", Type: core.ParamTypeString, Value: w.cfg.Scene},
			},
		},
		{
			Name: "Phase change",
			Params: []core.Parameter{
				{Key: "evap_rate", Label: "Evaporation rate", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(p.EvapRate, 'g', 4, 64)},
				{Key: "condens_rate", Label: "Condensation rate", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(p.CondensRate, 'g', 4, 64)},
				{Key: "condens_radius", Label: "Condensation radius", Type: core.ParamTypeInt, Value: strconv.Itoa(p.CondensRadius)},
			},
		},
		{
			Name: "Input",
			Params: []core.Parameter{
				{Key: "brush_radius", Label: "Brush radius", Type: core.ParamTypeInt, Value: strconv.Itoa(p.BrushRadius)},
			},
		},
	}}
}

// ParameterControls lists the values adjustable at runtime.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "evap_rate", Label: "Evaporation rate", Type: core.ParamTypeFloat, Step: 0.0001, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "condens_rate", Label: "Condensation rate", Type: core.ParamTypeFloat, Step: 0.0001, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "condens_radius", Label: "Condensation radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: maxCondensRadius, HasMin: true, HasMax: true},
		{Key: "brush_radius", Label: "Brush radius", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: maxBrushRadius, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a float tunable. Values are clamped to [0, 1].
func (w *World) SetFloatParameter(key string, value float64) bool {
	value = min(max(value, 0), 1)
	switch key {
	case "evap_rate":
		w.cfg.Params.EvapRate = value
	case "condens_rate":
		w.cfg.Params.CondensRate = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer tunable, clamping it to its range.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "condens_radius":
		w.cfg.Params.CondensRadius = min(max(value, 1), maxCondensRadius)
	case "brush_radius":
		w.cfg.Params.BrushRadius = min(max(value, 0), maxBrushRadius)
	default:
		return false
	}
	return true
}

// BrushRadius is the disc radius front ends should paint with.
func (w *World) BrushRadius() int { return w.cfg.Params.BrushRadius }
