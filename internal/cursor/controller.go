package cursor

import "math"

// Controller tracks the cursor over one ascending time column.
type Controller struct {
	times []float64
	state State
	index int
}

// NewController returns a Hidden cursor over times.
func NewController(times []float64) *Controller {
	return &Controller{times: times, index: -1}
}

// Move handles a pointer move at time x. inPlot reports whether the pointer
// is over any panel's plot area.
func (c *Controller) Move(x float64, inPlot bool) State {
	if !inPlot || len(c.times) == 0 || x < c.times[0] || x > c.times[len(c.times)-1] {
		return c.hide()
	}
	c.state = Shown
	c.index = NearestIndex(c.times, x)
	return c.state
}

// Leave handles the pointer leaving the window.
func (c *Controller) Leave() State {
	return c.hide()
}

// Step moves a Shown cursor by delta samples, clamped to the data.
func (c *Controller) Step(delta int) State {
	if c.state != Shown {
		return c.state
	}
	idx := c.index + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.times) {
		idx = len(c.times) - 1
	}
	c.index = idx
	return c.state
}

// State returns the current visibility.
func (c *Controller) State() State {
	return c.state
}

// Index returns the snapped sample index, or -1 while Hidden.
func (c *Controller) Index() int {
	if c.state != Shown {
		return -1
	}
	return c.index
}

// Time returns the snapped sample time. ok is false while Hidden.
func (c *Controller) Time() (t float64, ok bool) {
	if c.state != Shown {
		return 0, false
	}
	return c.times[c.index], true
}

// Value returns values[idx] at the snapped index, or NaN.
func (c *Controller) Value(values []float64) float64 {
	idx := c.Index()
	if idx < 0 || idx >= len(values) {
		return math.NaN()
	}
	return values[idx]
}

func (c *Controller) hide() State {
	c.state = Hidden
	c.index = -1
	return c.state
}
