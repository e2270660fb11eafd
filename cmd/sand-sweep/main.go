// Command sand-sweep runs headless sand worlds across a grid of scenes and
// phase-change rates and reports how quickly each settles.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"

	"sandca/internal/logging"
	"sandca/internal/sims/sand"
	"sandca/internal/sweep"
	"sandca/internal/telemetry"
)

type options struct {
	width, height int
	steps         int
	sampleEvery   int
	workers       int
	scenes        string
	evapRates     string
	condensRates  string
	seeds         string
	outDir        string
	timeout       time.Duration
	logLevel      string
	noColor       bool
}

func main() {
	o := options{
		width:        120,
		height:       90,
		steps:        600,
		sampleEvery:  10,
		workers:      runtime.NumCPU(),
		scenes:       strings.Join(sand.Scenes()[1:], ","),
		evapRates:    "0.0002,0.0004,0.001",
		condensRates: "0.0001,0.0002,0.0005",
		seeds:        "1,2",
		logLevel:     "info",
	}

	flaggy.SetName("sand-sweep")
	flaggy.SetDescription("Sweep phase-change rates over headless sand worlds")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&o.width, "x", "width", "Grid width in cells")
	flaggy.Int(&o.height, "y", "height", "Grid height in cells")
	flaggy.Int(&o.steps, "s", "steps", "Ticks to simulate per run")
	flaggy.Int(&o.sampleEvery, "e", "every", "Record one tick out of every N")
	flaggy.Int(&o.workers, "w", "workers", "Number of worker goroutines")
	flaggy.String(&o.scenes, "c", "scenes", "Comma-separated scenes ["+strings.Join(sand.Scenes(), "|")+"]")
	flaggy.String(&o.evapRates, "v", "evap", "Comma-separated evaporation rates")
	flaggy.String(&o.condensRates, "n", "condens", "Comma-separated condensation rates")
	flaggy.String(&o.seeds, "r", "seeds", "Comma-separated seeds")
	flaggy.String(&o.outDir, "o", "out", "Directory for ticks.csv and summary.csv (empty disables)")
	flaggy.Duration(&o.timeout, "t", "timeout", "Abort the sweep after this long, for example 90s")
	flaggy.String(&o.logLevel, "l", "log-level", "Log level")
	flaggy.Bool(&o.noColor, "", "no-color", "Disable colored output")
	flaggy.Parse()

	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()).String())
		os.Exit(1)
	}
}

func run(o options) error {
	log, err := logging.New(logging.Config{Level: o.logLevel, Format: "console"})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	grid, err := buildGrid(o)
	if err != nil {
		return err
	}
	runs := grid.Runs()
	if len(runs) == 0 {
		flaggy.ShowHelpAndExit("the sweep grid is empty")
	}

	out, err := telemetry.NewOutput(o.outDir)
	if err != nil {
		return err
	}
	defer out.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	log.Info("sweeping",
		zap.Int("runs", len(runs)),
		zap.Int("workers", o.workers),
		zap.Int("steps", o.steps),
		zap.String("out", o.outDir),
	)
	start := time.Now()
	runner := sweep.NewRunner(sweep.Options{
		Width:       o.width,
		Height:      o.height,
		Steps:       o.steps,
		SampleEvery: o.sampleEvery,
		Workers:     o.workers,
	}, out, log)
	summaries, err := runner.Run(ctx, runs)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	log.Info("done", zap.Duration("elapsed", time.Since(start)))

	au := aurora.NewAurora(!o.noColor)
	for _, line := range report(au, summaries) {
		fmt.Println(line)
	}
	return nil
}

func buildGrid(o options) (sweep.Grid, error) {
	g := sweep.Grid{Scenes: splitList(o.scenes)}
	if o.steps < 0 {
		return g, fmt.Errorf("steps must not be negative, got %d", o.steps)
	}
	var err error
	if g.EvapRates, err = parseFloats(o.evapRates); err != nil {
		return g, fmt.Errorf("evap: %w", err)
	}
	if g.CondensRates, err = parseFloats(o.condensRates); err != nil {
		return g, fmt.Errorf("condens: %w", err)
	}
	for _, s := range splitList(o.seeds) {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return g, fmt.Errorf("seed %q: %w", s, err)
		}
		g.Seeds = append(g.Seeds, seed)
	}
	return g, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range splitList(s) {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, err)
		}
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("%q: rate outside [0,1]", part)
		}
		out = append(out, v)
	}
	return out, nil
}

func report(au aurora.Aurora, summaries []telemetry.Summary) []string {
	lines := []string{au.Bold(fmt.Sprintf("%-4s %-10s %-6s %-8s %-8s %10s %10s %8s %8s",
		"run", "scene", "seed", "evap", "condens", "moves", "settle", "steam", "water")).String()}
	for _, s := range summaries {
		settle := au.Yellow("never").String()
		if s.SettleTick >= 0 {
			settle = au.Green(strconv.FormatInt(s.SettleTick, 10)).String()
		}
		lines = append(lines, fmt.Sprintf("%-4d %-10s %-6d %-8g %-8g %10.1f %10s %8d %8d",
			s.ID, s.Scene, s.Seed, s.EvapRate, s.CondensRate, s.MovesMean, settle, s.SteamFinal, s.WaterFinal))
	}
	return lines
}
