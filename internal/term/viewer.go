package term

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"sandca/internal/core"
)

// Sim is what the viewer needs from a simulation.
type Sim interface {
	core.Sim
	core.Painter
}

type statusSource interface {
	StatusLines() []string
}

// Viewer runs a Sim inside a tcell screen.
type Viewer struct {
	screen tcell.Screen
	sim    Sim
	timer  *core.StepClock
	log    *zap.Logger

	materials []string
	material  int
	brush     int
	paused    bool
	seed      int64
}

// NewViewer prepares a viewer. The screen must already be initialised.
func NewViewer(screen tcell.Screen, sim Sim, tps int, seed int64, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		screen:    screen,
		sim:       sim,
		timer:     core.NewStepClock(tps),
		log:       log,
		materials: sim.Materials(),
		brush:     1,
		seed:      seed,
	}
	if len(v.materials) > 2 {
		v.material = 2
	}
	return v
}

// Run pumps events and ticks until ctx is cancelled or the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	defer v.screen.DisableMouse()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(v.timer.Period())
	defer ticker.Stop()
	v.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.handle(ev) {
				return nil
			}
			v.draw()
		case now := <-ticker.C:
			due := v.timer.Due(now)
			if v.paused || due == 0 {
				continue
			}
			for i := 0; i < due; i++ {
				v.step()
			}
			v.draw()
		}
	}
}

func (v *Viewer) step() {
	if adv, ok := v.sim.(core.Advancer); ok {
		adv.Advance(v.timer.Seconds())
		return
	}
	v.sim.Step()
}

// handle applies one event and reports whether the viewer should keep
// running.
func (v *Viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return v.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return true
		}
		col, row := ev.Position()
		if x, y, ok := gridAt(col, row, v.sim.Size()); ok {
			v.sim.Paint(v.material, x, y, v.brush)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		v.paused = !v.paused
	case 'n':
		v.step()
	case 'r':
		v.sim.Reset(v.seed)
		v.log.Info("reset", zap.Int64("seed", v.seed))
	case 's':
		v.seed = time.Now().UnixNano()
		v.sim.Reset(v.seed)
		v.log.Info("reseed", zap.Int64("seed", v.seed))
	case 'c':
		if c, ok := v.sim.(interface{ Clear() }); ok {
			c.Clear()
		}
	case '+', '=':
		v.brush = min(v.brush+1, 16)
	case '-':
		v.brush = max(v.brush-1, 0)
	default:
		if i, ok := materialKey(r, len(v.materials)); ok {
			v.material = i
		}
	}
	return true
}

func (v *Viewer) draw() {
	v.screen.Clear()
	drawGrid(v.screen, v.sim.Pixels(), v.sim.Size())
	drawStatus(v.screen, v.status())
	v.screen.Show()
}

func (v *Viewer) status() string {
	var b strings.Builder
	name := "?"
	if v.material < len(v.materials) {
		name = v.materials[v.material]
	}
	fmt.Fprintf(&b, "[%d] %s r=%d", v.material+1, name, v.brush)
	if v.paused {
		b.WriteString(" PAUSED")
	}
	if s, ok := v.sim.(statusSource); ok {
		if lines := s.StatusLines(); len(lines) > 0 {
			b.WriteString(" | ")
			b.WriteString(lines[0])
		}
	}
	return b.String()
}
