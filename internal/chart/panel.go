package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/jb4plot/internal/channels"
	"github.com/verte-zerg/jb4plot/internal/cursor"
)

const (
	axisLabelWidth = 7
	axisSeparator  = " │ "
	minPlotWidth   = 10
	cursorRune     = '│'
	markerRune     = '●'
	axisTitle      = "Time (s)"
)

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	readoutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3A"))
	axisStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true)
)

// Cursor is the snapped sample drawn over every panel.
type Cursor struct {
	Index int
	Time  float64
}

// Options controls panel rendering.
type Options struct {
	Width  int
	Height int
	Color  bool
}

// GutterWidth is the number of cells left of the plot area.
func GutterWidth() int {
	return axisLabelWidth + runewidth.StringWidth(axisSeparator)
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - GutterWidth()
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

type overlayCell struct {
	r     rune
	style lipgloss.Style
}

// RenderPanel draws one panel: a header line with the label and legend,
// then opts.Height plot rows. cur may be nil.
func RenderPanel(data channels.PanelData, times []float64, win Window, cur *Cursor, opts Options) []string {
	width := opts.Width
	if width < minPlotWidth {
		width = minPlotWidth
	}
	height := opts.Height
	if height < 1 {
		height = 1
	}
	p := data.Panel

	cv := newCanvas(len(data.Series), width, height)
	for si, s := range data.Series {
		plotSeries(cv, si, s.Values, times, win, p.Min, p.Max)
	}

	overlay := make(map[[2]int]overlayCell)
	if cur != nil && cur.Index >= 0 && cur.Index < len(times) {
		placeCursor(overlay, data, cur, win, width, height)
	}

	lines := make([]string, 0, height+1)
	lines = append(lines, renderHeader(data, opts.Color))
	labels := axisLabels(p.Min, p.Max, height)
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(axisStyle.Render(fmt.Sprintf("%*s", axisLabelWidth, labels[y]) + axisSeparator))
		row.WriteString(renderRow(cv, overlay, y, width, opts.Color))
		lines = append(lines, row.String())
	}
	return lines
}

// RenderAxis draws the shared time axis under the last panel.
func RenderAxis(win Window, width int) string {
	if width < minPlotWidth {
		width = minPlotWidth
	}
	cells := []rune(strings.Repeat(" ", width))
	put := func(col int, s string) {
		for i, r := range []rune(s) {
			if col+i >= 0 && col+i < len(cells) {
				cells[col+i] = r
			}
		}
	}
	start := formatTime(win.Start)
	end := formatTime(win.End)
	mid := formatTime(win.Start + win.Span()/2)
	midCol := width/2 - len(mid)/2
	put(0, start)
	put(midCol, mid)
	put(width-len(end), end)
	if col := width/4 - len(axisTitle)/2; col > len(start) && col+len(axisTitle) < midCol {
		put(col, axisTitle)
	}
	gutter := strings.Repeat(" ", GutterWidth())
	return axisStyle.Render(gutter + string(cells))
}

func plotSeries(cv *canvas, layer int, values, times []float64, win Window, minVal, maxVal float64) {
	first, last := visibleRange(times, win)
	if first < 0 {
		return
	}
	prevOK := false
	var prevX, prevY float64
	for i := first; i <= last && i < len(values); i++ {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			prevOK = false
			continue
		}
		x := dotPos(times[i], win, cv.dotWidth())
		y := float64(valueToRow(v, minVal, maxVal, cv.dotHeight()))
		if prevOK {
			x0, y0, x1, y1, ok := clipSegment(prevX, prevY, x, y, float64(cv.dotWidth()))
			if ok {
				cv.line(layer, int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
			}
		} else if x >= 0 && x < float64(cv.dotWidth()) {
			cv.dot(layer, int(math.Round(x)), int(y))
		}
		prevX, prevY, prevOK = x, y, true
	}
}

// visibleRange returns the sample range covering win plus one neighbour on
// each side so lines run to the edges.
func visibleRange(times []float64, win Window) (int, int) {
	if len(times) == 0 {
		return -1, -1
	}
	first := cursor.NearestIndex(times, win.Start)
	if first > 0 {
		first--
	}
	last := cursor.NearestIndex(times, win.End)
	if last < len(times)-1 {
		last++
	}
	return first, last
}

func dotPos(t float64, win Window, dotWidth int) float64 {
	span := win.Span()
	if span <= 0 {
		return 0
	}
	return (t - win.Start) / span * float64(dotWidth-1)
}

// clipSegment trims a segment to x in [-1, limit] so off-screen neighbours
// do not produce long Bresenham walks.
func clipSegment(x0, y0, x1, y1, limit float64) (float64, float64, float64, float64, bool) {
	lo, hi := -1.0, limit
	if (x0 < lo && x1 < lo) || (x0 > hi && x1 > hi) {
		return 0, 0, 0, 0, false
	}
	clip := func(x, y, ox, oy, edge float64) (float64, float64) {
		if ox == x {
			return edge, y
		}
		return edge, y + (oy-y)*(edge-x)/(ox-x)
	}
	if x0 < lo {
		x0, y0 = clip(x0, y0, x1, y1, lo)
	} else if x0 > hi {
		x0, y0 = clip(x0, y0, x1, y1, hi)
	}
	if x1 < lo {
		x1, y1 = clip(x1, y1, x0, y0, lo)
	} else if x1 > hi {
		x1, y1 = clip(x1, y1, x0, y0, hi)
	}
	return x0, y0, x1, y1, true
}

func placeCursor(overlay map[[2]int]overlayCell, data channels.PanelData, cur *Cursor, win Window, width, height int) {
	col := win.Column(cur.Time, width)
	if col < 0 || col >= width {
		return
	}
	for y := 0; y < height; y++ {
		overlay[[2]int{col, y}] = overlayCell{r: cursorRune, style: cursorStyle}
	}

	p := data.Panel
	anchor := height / 2
	texts := make([]string, len(data.Series))
	for si, s := range data.Series {
		v := math.NaN()
		if cur.Index < len(s.Values) {
			v = s.Values[cur.Index]
		}
		texts[si] = cursor.Label(s.Name, v)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		row := valueToRow(v, p.Min, p.Max, height*4) / 4
		if si == 0 {
			anchor = row
		}
		overlay[[2]int{col, row}] = overlayCell{r: markerRune, style: seriesStyle(si)}
	}

	rows := cursor.StackRows(anchor, len(texts), height)
	taken := make(map[int][]cellRange, height)
	for y := 0; y < height; y++ {
		taken[y] = []cellRange{{col, col + 1}}
	}
	for si, text := range texts {
		row := rows[si]
		textWidth := runewidth.StringWidth(text)
		start, ok := readoutStart(taken[row], col, textWidth, width)
		if !ok {
			start = 0
			text = runewidth.Truncate(text, width, "")
			textWidth = runewidth.StringWidth(text)
		}
		taken[row] = append(taken[row], cellRange{start, start + textWidth})
		x := start
		for _, r := range text {
			if x >= width {
				break
			}
			overlay[[2]int{x, row}] = overlayCell{r: r, style: readoutStyle.Foreground(colorPalette[si%len(colorPalette)])}
			x += runewidth.RuneWidth(r)
		}
	}
}

// cellRange is a half-open cell range [start, end) on one plot row.
type cellRange struct {
	start, end int
}

// readoutStart finds where a readout of textWidth cells fits on a row that
// already holds taken. It prefers the right of the cursor column, then its
// left, then the gaps beside readouts already placed on the row.
func readoutStart(taken []cellRange, col, textWidth, width int) (int, bool) {
	candidates := []int{col + 2, col - 1 - textWidth}
	for _, s := range taken {
		candidates = append(candidates, s.end+1, s.start-1-textWidth)
	}
	for _, start := range candidates {
		end := start + textWidth
		if start < 0 || end > width {
			continue
		}
		free := true
		for _, s := range taken {
			if start < s.end && s.start < end {
				free = false
				break
			}
		}
		if free {
			return start, true
		}
	}
	return 0, false
}

func renderRow(cv *canvas, overlay map[[2]int]overlayCell, y, width int, color bool) string {
	var out strings.Builder
	var run strings.Builder
	runStyle := -2
	var runOverlay *lipgloss.Style
	flush := func() {
		if run.Len() == 0 {
			return
		}
		switch {
		case !color:
			out.WriteString(run.String())
		case runOverlay != nil:
			out.WriteString(runOverlay.Render(run.String()))
		case runStyle >= 0:
			out.WriteString(seriesStyle(runStyle).Render(run.String()))
		default:
			out.WriteString(run.String())
		}
		run.Reset()
	}
	for x := 0; x < width; x++ {
		if oc, ok := overlay[[2]int{x, y}]; ok {
			style := oc.style
			if runOverlay == nil || !sameStyle(*runOverlay, style) {
				flush()
				runOverlay = &style
				runStyle = -2
			}
			run.WriteRune(oc.r)
			continue
		}
		mask, idx := cv.cell(x, y)
		if runOverlay != nil || idx != runStyle {
			flush()
			runOverlay = nil
			runStyle = idx
		}
		run.WriteRune(brailleFromMask(mask))
	}
	flush()
	return out.String()
}

func sameStyle(a, b lipgloss.Style) bool {
	return a.GetForeground() == b.GetForeground() && a.GetBackground() == b.GetBackground()
}

func seriesStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorPalette[i%len(colorPalette)])
}

func renderHeader(data channels.PanelData, color bool) string {
	parts := make([]string, 0, len(data.Series)+1)
	label := data.Panel.Label
	if color {
		label = labelStyle.Render(label)
	}
	parts = append(parts, label)
	marker := brailleFromMask(0x01)
	for i, s := range data.Series {
		styleName := lineStyles[i%len(lineStyles)].name
		entry := fmt.Sprintf("%c %s (%s)", marker, s.Name, styleName)
		if color {
			entry = seriesStyle(i).Render(entry)
		}
		parts = append(parts, entry)
	}
	return strings.Repeat(" ", GutterWidth()) + strings.Join(parts, "  ")
}

func axisLabels(minVal, maxVal float64, height int) []string {
	labels := make([]string, height)
	labels[0] = formatTick(maxVal)
	if height > 2 {
		labels[height/2] = formatTick(minVal + (maxVal-minVal)/2)
	}
	if height > 1 {
		labels[height-1] = formatTick(minVal)
	}
	return labels
}

func formatTime(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTick(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if len(s) <= axisLabelWidth {
		return s
	}
	s = strconv.FormatFloat(v, 'f', 1, 64)
	if len(s) <= axisLabelWidth {
		return s
	}
	return strconv.FormatFloat(v, 'g', 3, 64)
}
