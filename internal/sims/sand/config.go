package sand

import "strconv"

// Params holds the tunable rates of the update pipeline.
type Params struct {
	// EvapRate is the per-tick evaporation probability contributed by each
	// air 4-neighbour.
	EvapRate float64
	// CondensRate is the per-tick condensation probability contributed by
	// each same-kind cell inside the condensation window.
	CondensRate float64
	// CondensRadius is the Chebyshev radius of the condensation window.
	CondensRadius int
	// BrushRadius is the default disc radius used by front ends.
	BrushRadius int
}

// Config controls the sand world dimensions and seeding.
type Config struct {
	Width  int
	Height int

	Seed  int64
	Scene string

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  200,
		Height: 150,
		Seed:   1337,
		Scene:  SceneBasin,
		Params: Params{
			EvapRate:      0.0004,
			CondensRate:   0.0002,
			CondensRadius: 3,
			BrushRadius:   3,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["scene"]; ok && v != "" {
		c.Scene = v
	}
	if v, ok := cfg["evap_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.EvapRate = parsed
		}
	}
	if v, ok := cfg["condens_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.CondensRate = parsed
		}
	}
	if v, ok := cfg["condens_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= maxCondensRadius {
			c.Params.CondensRadius = parsed
		}
	}
	if v, ok := cfg["brush_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= maxBrushRadius {
			c.Params.BrushRadius = parsed
		}
	}
	return c
}

const (
	maxCondensRadius = 8
	maxBrushRadius   = 16
)
