// Package chart renders time-aligned braille panels.
package chart

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

type lineStyle struct {
	name   string
	period int
	on     int
}

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
	{name: "dashdot", period: 8, on: 3},
}

var colorPalette = []lipgloss.Color{
	lipgloss.Color("6"),
	lipgloss.Color("5"),
	lipgloss.Color("3"),
	lipgloss.Color("2"),
	lipgloss.Color("4"),
}

// canvas holds one braille mask layer per series.
type canvas struct {
	width  int
	height int
	layers [][][]uint8
}

func newCanvas(layers, width, height int) *canvas {
	c := &canvas{width: width, height: height}
	for i := 0; i < layers; i++ {
		c.layers = append(c.layers, makeCells(height, width))
	}
	return c
}

func (c *canvas) dotWidth() int {
	return c.width * 2
}

func (c *canvas) dotHeight() int {
	return c.height * 4
}

func (c *canvas) line(layer, x0, y0, x1, y1 int) {
	style := lineStyles[layer%len(lineStyles)]
	drawLine(x0, y0, x1, y1, func(x, y int) {
		if style.shouldPlot(x) {
			setBrailleDot(c.layers[layer], x, y)
		}
	})
}

func (c *canvas) dot(layer, x, y int) {
	setBrailleDot(c.layers[layer], x, y)
}

// cell returns the combined mask at a cell and the first layer drawn there.
func (c *canvas) cell(x, y int) (uint8, int) {
	return composeCell(c.layers, x, y)
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	colorIdx := -1
	for i, cells := range layers {
		if y < 0 || y >= len(cells) {
			continue
		}
		if x < 0 || x >= len(cells[y]) {
			continue
		}
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if colorIdx == -1 {
			colorIdx = i
		}
		mask |= cellMask
	}
	return mask, colorIdx
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

// drawLine walks the dots from (x0, y0) to (x1, y1) inclusive.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, sx := absStep(x1 - x0)
	dy, sy := absStep(y1 - y0)
	dy = -dy
	acc := dx + dy
	for x, y := x0, y0; ; {
		plot(x, y)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * acc
		if e2 >= dy {
			acc += dy
			x += sx
		}
		if e2 <= dx {
			acc += dx
			y += sy
		}
	}
}

func absStep(d int) (int, int) {
	if d < 0 {
		return -d, -1
	}
	return d, 1
}

// brailleDots maps a dot inside a 2x4 cell to its bit in U+2800 braille.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if x < 0 || y < 0 || y/4 >= len(cells) || x/2 >= len(cells[y/4]) {
		return
	}
	cells[y/4][x/2] |= brailleDots[x%2][y%4]
}

func brailleFromMask(mask uint8) rune {
	return '\u2800' + rune(mask)
}
