// Package term renders a simulation in a terminal with half-block glyphs,
// two grid rows per character cell.
package term

import (
	"github.com/gdamore/tcell/v2"

	"sandca/internal/core"
)

const halfBlock = '▀'

// canvas is the subset of tcell.Screen the renderer writes to.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

func rgb(p uint32) tcell.Color {
	return tcell.NewRGBColor(int32(p>>16&0xFF), int32(p>>8&0xFF), int32(p&0xFF))
}

// pairStyle colors the upper half of a cell with top and the lower half with
// bottom.
func pairStyle(top, bottom uint32) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
}

// drawGrid paints packed pixels, clipped to the canvas minus the status row.
// An odd final grid row is drawn over black.
func drawGrid(dst canvas, pixels []uint32, size core.Size) {
	cols, rows := dst.Size()
	rows-- // status line
	for cy := 0; cy < rows; cy++ {
		top := cy * 2
		if top >= size.H {
			break
		}
		for x := 0; x < cols && x < size.W; x++ {
			upper := pixels[size.Index(x, top)]
			var lower uint32
			if top+1 < size.H {
				lower = pixels[size.Index(x, top+1)]
			}
			dst.SetContent(x, cy, halfBlock, nil, pairStyle(upper, lower))
		}
	}
}

// drawStatus writes text on the last canvas row, padding with blanks.
func drawStatus(dst canvas, text string) {
	cols, rows := dst.Size()
	if rows <= 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range text {
		if x >= cols {
			return
		}
		dst.SetContent(x, rows-1, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		dst.SetContent(x, rows-1, ' ', nil, style)
	}
}

// gridAt maps a terminal cell to the grid cell under its upper half.
func gridAt(col, row int, size core.Size) (int, int, bool) {
	x, y := col, row*2
	if !size.InBounds(x, y) {
		return 0, 0, false
	}
	return x, y, true
}

// materialKey maps '1'..'9' to a material index below n.
func materialKey(r rune, n int) (int, bool) {
	if r < '1' || r > '9' {
		return 0, false
	}
	i := int(r - '1')
	if i >= n {
		return 0, false
	}
	return i, true
}
