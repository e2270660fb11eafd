package ui

import (
	"image"
	"math"
	"strconv"

	"sandca/internal/core"
)

type controlState struct {
	control core.ParameterControl
	value   string

	number   float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// syncControls copies snapshot values into the control states.
func syncControls(states []controlState, snapshot core.ParameterSnapshot) {
	for i := range states {
		s := &states[i]
		s.hasValue = false
		s.value = "--"
		param, ok := snapshot.Lookup(s.control.Key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			continue
		}
		s.number = v
		s.value = formatValue(s.control, v)
		s.hasValue = true
	}
}

// nudge returns the value one step away from current in direction dir and
// whether it differs from current after clamping.
func nudge(ctrl core.ParameterControl, current float64, dir int) (float64, bool) {
	if dir == 0 {
		return current, false
	}
	step := ctrl.Step
	switch {
	case ctrl.Type == core.ParamTypeInt:
		step = math.Max(1, math.Round(step))
	case step <= 0:
		step = 0.05
	}
	target := ctrl.Clamp(current + float64(dir)*step)
	if ctrl.Type == core.ParamTypeInt {
		target = math.Round(target)
	}
	if math.Abs(target-current) < 1e-12 {
		return current, false
	}
	return target, true
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// layoutControls stacks the controls below top inside a panel of width.
func layoutControls(states []controlState, width, top int) {
	for i := range states {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		states[i].top = rowTop
		states[i].minusRect = minus
		states[i].plusRect = plus
	}
}

// paletteRects lays out n swatches in rows of paletteColumns.
func paletteRects(n, width, top int) []image.Rectangle {
	cols := paletteColumns
	inner := width - 2*panelPadding
	cell := (inner - (cols-1)*buttonGap) / cols
	if cell < 1 {
		cell = 1
	}
	out := make([]image.Rectangle, n)
	for i := range out {
		x := panelPadding + (i%cols)*(cell+buttonGap)
		y := top + (i/cols)*(swatchHeight+buttonGap)
		out[i] = image.Rect(x, y, x+cell, y+swatchHeight)
	}
	return out
}

// hit returns the index of the rectangle containing (x, y) or -1.
func hit(rects []image.Rectangle, x, y int) int {
	p := image.Pt(x, y)
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	statLine       = 16
	swatchHeight   = 28
	paletteColumns = 2
)
