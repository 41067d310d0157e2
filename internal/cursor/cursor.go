// Package cursor implements the synchronized sample cursor.
package cursor

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// State is the cursor visibility.
type State int

const (
	// Hidden means no cursor artifacts are drawn.
	Hidden State = iota
	// Shown means the cursor is snapped to a sample.
	Shown
)

func (s State) String() string {
	if s == Shown {
		return "shown"
	}
	return "hidden"
}

const integerTolerance = 1e-9

// NearestIndex returns the index of the element of the ascending slice
// times closest to x. Queries beyond either end clamp to the first or last
// index, and ties go to the earlier index. Empty input returns -1.
func NearestIndex(times []float64, x float64) int {
	n := len(times)
	if n == 0 {
		return -1
	}
	i := sort.SearchFloat64s(times, x)
	if i <= 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	if times[i]-x < x-times[i-1] {
		return i
	}
	return i - 1
}

// FormatValue renders a readout value: integers without decimals, the rest
// fixed to two places.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	r := math.Round(v)
	if math.Abs(v-r) < integerTolerance {
		if math.Abs(r) < 1<<53 {
			return strconv.FormatInt(int64(r), 10)
		}
		return fmt.Sprintf("%.0f", r)
	}
	return fmt.Sprintf("%.2f", v)
}

// Label renders "name: value".
func Label(name string, v float64) string {
	return name + ": " + FormatValue(v)
}

// StackRows places n readouts around anchor using the fixed offsets
// 0, -1, +1, -2, +2, ... and shifts the block to fit in [0, height).
func StackRows(anchor, n, height int) []int {
	if n <= 0 || height <= 0 {
		return nil
	}
	offsets := make([]int, n)
	lo, hi := 0, 0
	for i := 1; i < n; i++ {
		step := (i + 1) / 2
		if i%2 == 1 {
			offsets[i] = -step
		} else {
			offsets[i] = step
		}
		if offsets[i] < lo {
			lo = offsets[i]
		}
		if offsets[i] > hi {
			hi = offsets[i]
		}
	}
	shift := 0
	if anchor+lo < 0 {
		shift = -(anchor + lo)
	}
	if anchor+hi+shift >= height {
		shift = height - 1 - (anchor + hi)
	}
	rows := make([]int, n)
	for i, off := range offsets {
		row := anchor + off + shift
		if row < 0 {
			row = 0
		}
		if row >= height {
			row = height - 1
		}
		rows[i] = row
	}
	return rows
}
