package chart

import "math"

// Window is the visible time range shared by every panel.
type Window struct {
	Start float64
	End   float64
}

// FullWindow spans an ascending time column.
func FullWindow(times []float64) Window {
	if len(times) == 0 {
		return Window{}
	}
	return Window{Start: times[0], End: times[len(times)-1]}
}

// Span returns End - Start.
func (w Window) Span() float64 {
	return w.End - w.Start
}

// Contains reports whether t lies inside the window.
func (w Window) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

// Column maps t to a cell column of a plot width cells wide. The result is
// outside [0, width) when t is outside the window.
func (w Window) Column(t float64, width int) int {
	dx := w.dotX(t, width)
	if dx < 0 {
		return (dx - 1) / 2
	}
	return dx / 2
}

// TimeAt maps a cell column back to time. The first and last columns map
// to Start and End.
func (w Window) TimeAt(col, width int) float64 {
	if width <= 1 || w.Span() <= 0 {
		return w.Start
	}
	if col <= 0 {
		return w.Start
	}
	if col >= width-1 {
		return w.End
	}
	return w.Start + float64(col)/float64(width-1)*w.Span()
}

func (w Window) dotX(t float64, width int) int {
	span := w.Span()
	if span <= 0 || width <= 0 {
		return 0
	}
	pos := (t - w.Start) / span * float64(width*2-1)
	return int(math.Floor(pos + 0.5))
}

// Zoom scales the window by factor around anchor, keeping anchor at the
// same relative position. The span stays within [minSpan, bounds.Span()].
func (w Window) Zoom(factor, anchor float64, bounds Window, minSpan float64) Window {
	span := w.Span()
	if span <= 0 || factor <= 0 {
		return w.clamp(bounds)
	}
	newSpan := span * factor
	if newSpan < minSpan {
		newSpan = minSpan
	}
	if full := bounds.Span(); newSpan > full {
		newSpan = full
	}
	rel := (anchor - w.Start) / span
	if rel < 0 {
		rel = 0
	}
	if rel > 1 {
		rel = 1
	}
	start := anchor - rel*newSpan
	return Window{Start: start, End: start + newSpan}.clamp(bounds)
}

// Pan shifts the window by fraction of its span.
func (w Window) Pan(fraction float64, bounds Window) Window {
	shift := fraction * w.Span()
	return Window{Start: w.Start + shift, End: w.End + shift}.clamp(bounds)
}

func (w Window) clamp(bounds Window) Window {
	span := w.Span()
	if span >= bounds.Span() {
		return bounds
	}
	if w.Start < bounds.Start {
		return Window{Start: bounds.Start, End: bounds.Start + span}
	}
	if w.End > bounds.End {
		return Window{Start: bounds.End - span, End: bounds.End}
	}
	return w
}

// MinSpan returns the smallest useful zoom span for times: a few sample
// intervals, or the whole range when there is only one distinct time.
func MinSpan(times []float64) float64 {
	step := math.Inf(1)
	for i := 1; i < len(times); i++ {
		if d := times[i] - times[i-1]; d > 0 && d < step {
			step = d
		}
	}
	if math.IsInf(step, 1) {
		return 0
	}
	return step * 4
}
