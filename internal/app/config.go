package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"sandca/internal/logging"
)

// SandConfig mirrors the sand world's tunables for config files and flags.
type SandConfig struct {
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	Scene         string  `toml:"scene"`
	EvapRate      float64 `toml:"evap_rate"`
	CondensRate   float64 `toml:"condens_rate"`
	CondensRadius int     `toml:"condens_radius"`
	BrushRadius   int     `toml:"brush_radius"`
}

// Config represents the front-end settings. Zero-valued sand fields defer to
// the simulation's own defaults.
type Config struct {
	Sim      string `toml:"sim"`
	Scale    int    `toml:"scale"`
	TPS      int    `toml:"tps"`
	Seed     int64  `toml:"seed"`
	HUDWidth int    `toml:"hud_width"`

	Sand    SandConfig     `toml:"sand"`
	Logging logging.Config `toml:"logging"`

	path string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "sand",
		Scale:    4,
		TPS:      60,
		Seed:     42,
		HUDWidth: 220,
		Logging:  logging.Default(),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.path, "config", c.path, "TOML config file; flags override its values")
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.IntVar(&c.Sand.Width, "w", c.Sand.Width, "grid width in cells")
	fs.IntVar(&c.Sand.Height, "h", c.Sand.Height, "grid height in cells")
	fs.StringVar(&c.Sand.Scene, "scene", c.Sand.Scene, "initial scene: empty, basin, hourglass or terrain")
	fs.IntVar(&c.Sand.BrushRadius, "brush", c.Sand.BrushRadius, "brush radius in cells")
	fs.StringVar(&c.Logging.Level, "log-level", c.Logging.Level, "log level")
	fs.StringVar(&c.Logging.Format, "log-format", c.Logging.Format, "log format: console or json")
}

// LoadFile decodes a TOML document over the current values.
func (c *Config) LoadFile(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Parse builds a Config from command-line args. A -config file is applied
// first so explicit flags win over it.
func Parse(name string, args []string) (*Config, error) {
	cfg := NewConfig()
	if path := configPath(args); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPath(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// SimOptions renders the sand settings as factory options, omitting zero
// values.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{"seed": strconv.FormatInt(c.Seed, 10)}
	s := c.Sand
	if s.Width > 0 {
		opts["w"] = strconv.Itoa(s.Width)
	}
	if s.Height > 0 {
		opts["h"] = strconv.Itoa(s.Height)
	}
	if s.Scene != "" {
		opts["scene"] = s.Scene
	}
	if s.EvapRate > 0 {
		opts["evap_rate"] = strconv.FormatFloat(s.EvapRate, 'g', -1, 64)
	}
	if s.CondensRate > 0 {
		opts["condens_rate"] = strconv.FormatFloat(s.CondensRate, 'g', -1, 64)
	}
	if s.CondensRadius > 0 {
		opts["condens_radius"] = strconv.Itoa(s.CondensRadius)
	}
	if s.BrushRadius > 0 {
		opts["brush_radius"] = strconv.Itoa(s.BrushRadius)
	}
	return opts
}
