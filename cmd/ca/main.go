//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"sandca/internal/app"
	"sandca/internal/core"
	"sandca/internal/logging"
	_ "sandca/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.Parse("ca", os.Args[1:])
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		return fmt.Errorf("unknown sim %q", cfg.Sim)
	}

	sim := factory(cfg.SimOptions())
	sim.Reset(cfg.Seed)
	size := sim.Size()
	log.Info("starting",
		zap.String("sim", sim.Name()),
		zap.Int("width", size.W),
		zap.Int("height", size.H),
		zap.Int64("seed", cfg.Seed),
	)

	game := app.New(sim, cfg, log)

	ebiten.SetWindowTitle("sandca - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
