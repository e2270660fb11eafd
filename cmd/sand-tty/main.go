// Command sand-tty runs the sand simulation inside a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"sandca/internal/app"
	"sandca/internal/logging"
	"sandca/internal/sims/sand"
	"sandca/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.Parse("sand-tty", os.Args[1:])
	if err != nil {
		return err
	}
	// The screen owns stdout, so logs default to quiet JSON on stderr.
	if cfg.Logging.Level == logging.Default().Level {
		cfg.Logging.Level = "warn"
	}
	cfg.Logging.Format = "json"
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	opts := cfg.SimOptions()
	if cfg.Sand.Width == 0 || cfg.Sand.Height == 0 {
		cols, rows := screen.Size()
		opts["w"] = fmt.Sprint(max(cols, 1))
		opts["h"] = fmt.Sprint(max((rows-1)*2, 2))
	}
	world := sand.NewWithConfig(sand.FromMap(opts), sand.WithLogger(log))
	world.Reset(cfg.Seed)
	log.Info("terminal viewer", zap.Int("width", world.Size().W), zap.Int("height", world.Size().H))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewer := term.NewViewer(screen, world, cfg.TPS, cfg.Seed, log)
	if err := viewer.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
