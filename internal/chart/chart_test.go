package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/jb4plot/internal/channels"
)

func boostPanel(n int) ([]float64, channels.PanelData) {
	times := make([]float64, n)
	boost := make([]float64, n)
	boost2 := make([]float64, n)
	target := make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = float64(i)
		boost[i] = float64(i) * 2
		boost2[i] = float64(i)*2 + 0.5
		target[i] = 15
	}
	return times, channels.PanelData{
		Panel: channels.Panel{Channel: "Boost", Label: "Boost (psi)", Min: 0, Max: 25, Aux: []string{"Boost2", "Target"}},
		Series: []channels.Series{
			{Name: "Boost", Values: boost},
			{Name: "Boost2", Values: boost2},
			{Name: "Target", Values: target},
		},
	}
}

func TestWindowColumnRoundTrip(t *testing.T) {
	win := Window{Start: 3, End: 42.5}
	for _, width := range []int{10, 37, 80} {
		if got := win.TimeAt(0, width); got != win.Start {
			t.Fatalf("width %d: first column should map to start, got %v", width, got)
		}
		if got := win.TimeAt(width-1, width); got != win.End {
			t.Fatalf("width %d: last column should map to end, got %v", width, got)
		}
		for col := 0; col < width; col++ {
			if got := win.Column(win.TimeAt(col, width), width); got != col {
				t.Fatalf("width %d: column %d round-tripped to %d", width, col, got)
			}
		}
	}
}

func TestWindowZoomAndPan(t *testing.T) {
	bounds := Window{Start: 0, End: 10}
	zoomed := bounds.Zoom(0.5, 5, bounds, 0)
	if zoomed.Start != 2.5 || zoomed.End != 7.5 {
		t.Fatalf("unexpected zoom result: %+v", zoomed)
	}
	if out := zoomed.Zoom(4, 5, bounds, 0); out != bounds {
		t.Fatalf("zoom out should clamp to bounds, got %+v", out)
	}
	if tight := bounds.Zoom(0.001, 5, bounds, 1); math.Abs(tight.Span()-1) > 1e-9 {
		t.Fatalf("zoom should respect min span, got %+v", tight)
	}
	panned := zoomed.Pan(0.5, bounds)
	if panned.Start != 5 || panned.End != 10 {
		t.Fatalf("unexpected pan result: %+v", panned)
	}
	if again := panned.Pan(1, bounds); again != panned {
		t.Fatalf("pan past end should clamp, got %+v", again)
	}
	if left := panned.Pan(-10, bounds); left.Start != 0 || left.End != 5 {
		t.Fatalf("pan past start should clamp, got %+v", left)
	}
	edge := bounds.Zoom(0.5, 0, bounds, 0)
	if edge.Start != 0 || edge.End != 5 {
		t.Fatalf("zoom at left edge should keep start, got %+v", edge)
	}
}

func TestMinSpan(t *testing.T) {
	if got := MinSpan([]float64{0, 0.1, 0.1, 0.3}); math.Abs(got-0.4) > 1e-9 {
		t.Fatalf("expected 0.4, got %v", got)
	}
	if got := MinSpan([]float64{1}); got != 0 {
		t.Fatalf("expected 0 for a single sample, got %v", got)
	}
}

func TestRenderPanelWithCursor(t *testing.T) {
	times, data := boostPanel(10)
	win := FullWindow(times)
	lines := RenderPanel(data, times, win, &Cursor{Index: 5, Time: 5}, Options{Width: 40, Height: 6})
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Boost (psi)") || !strings.Contains(lines[0], "Target") {
		t.Fatalf("header missing label or legend: %q", lines[0])
	}
	out := strings.Join(lines, "\n")
	for _, want := range []string{"Boost: 10", "Boost2: 10.50", "Target: 15"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected readout %q in output:\n%s", want, out)
		}
	}
	if !strings.ContainsRune(out, markerRune) {
		t.Fatalf("expected point markers in output")
	}
	for i, line := range lines[1:] {
		plot := strings.SplitN(line, axisSeparator, 2)
		if len(plot) != 2 || !strings.ContainsRune(plot[1], cursorRune) && !strings.ContainsRune(plot[1], markerRune) {
			t.Fatalf("row %d missing cursor column: %q", i, line)
		}
	}
}

func TestRenderPanelReadoutsShareShortRows(t *testing.T) {
	times, data := boostPanel(10)
	lines := RenderPanel(data, times, FullWindow(times), &Cursor{Index: 5, Time: 5}, Options{Width: 40, Height: 2})
	out := strings.Join(lines, "\n")
	for _, want := range []string{"Boost: 10", "Boost2: 10.50", "Target: 15"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected readout %q in output:\n%s", want, out)
		}
	}
}

func TestReadoutStart(t *testing.T) {
	cursorCol := []cellRange{{20, 21}}
	if start, ok := readoutStart(cursorCol, 20, 5, 40); !ok || start != 22 {
		t.Fatalf("expected right of cursor, got %d %v", start, ok)
	}
	if start, ok := readoutStart(cursorCol, 36, 5, 40); !ok || start != 30 {
		t.Fatalf("expected left of cursor near the edge, got %d %v", start, ok)
	}
	taken := []cellRange{{20, 21}, {22, 27}, {14, 19}}
	if start, ok := readoutStart(taken, 20, 5, 40); !ok || start != 28 {
		t.Fatalf("expected after the placed readout, got %d %v", start, ok)
	}
	if _, ok := readoutStart([]cellRange{{5, 6}}, 5, 12, 10); ok {
		t.Fatalf("text wider than the plot should not fit")
	}
}

func TestRenderPanelWithoutCursor(t *testing.T) {
	times, data := boostPanel(10)
	lines := RenderPanel(data, times, FullWindow(times), nil, Options{Width: 30, Height: 4})
	out := strings.Join(lines, "\n")
	if strings.ContainsRune(out, markerRune) || strings.Contains(out, "Boost:") {
		t.Fatalf("hidden cursor must not draw markers or readouts:\n%s", out)
	}
}

func TestRenderAxis(t *testing.T) {
	axis := RenderAxis(Window{Start: 0, End: 12}, 60)
	for _, want := range []string{"0.00", "6.00", "12.00", axisTitle} {
		if !strings.Contains(axis, want) {
			t.Fatalf("axis missing %q: %q", want, axis)
		}
	}
}

func TestPlotWidthFor(t *testing.T) {
	total := 80
	if got := PlotWidthFor(total); got != total-GutterWidth() {
		t.Fatalf("expected width %d, got %d", total-GutterWidth(), got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestClipSegment(t *testing.T) {
	x0, y0, x1, y1, ok := clipSegment(-100, 0, 10, 110, 20)
	if !ok {
		t.Fatalf("expected visible segment")
	}
	if x0 != -1 || x1 != 10 || y1 != 110 || math.Abs(y0-99) > 1e-9 {
		t.Fatalf("unexpected clip: %v %v %v %v", x0, y0, x1, y1)
	}
	if _, _, _, _, ok := clipSegment(30, 0, 40, 0, 20); ok {
		t.Fatalf("expected off-screen segment to be dropped")
	}
}

func TestDrawLineVisitsEndpoints(t *testing.T) {
	cases := [][4]int{{0, 0, 5, 2}, {5, 2, 0, 0}, {3, 7, 3, 0}, {0, 0, 0, 0}, {-2, 4, 6, -3}}
	for _, tc := range cases {
		var pts [][2]int
		drawLine(tc[0], tc[1], tc[2], tc[3], func(x, y int) {
			pts = append(pts, [2]int{x, y})
		})
		if pts[0] != [2]int{tc[0], tc[1]} || pts[len(pts)-1] != [2]int{tc[2], tc[3]} {
			t.Fatalf("line %v: unexpected endpoints %v", tc, pts)
		}
		for i := 1; i < len(pts); i++ {
			dx, dy := pts[i][0]-pts[i-1][0], pts[i][1]-pts[i-1][1]
			if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
				t.Fatalf("line %v: gap between %v and %v", tc, pts[i-1], pts[i])
			}
		}
	}
}

func TestBrailleCell(t *testing.T) {
	cells := makeCells(1, 1)
	for x := 0; x < 2; x++ {
		for y := 0; y < 4; y++ {
			setBrailleDot(cells, x, y)
		}
	}
	setBrailleDot(cells, 2, 0)
	setBrailleDot(cells, 0, 4)
	if got := brailleFromMask(cells[0][0]); got != '⣿' {
		t.Fatalf("expected full cell, got %q", got)
	}
	if got := brailleFromMask(brailleDots[0][0]); got != '⠁' {
		t.Fatalf("expected top-left dot, got %q", got)
	}
}
