package cursor

import (
	"math"
	"testing"
)

func TestNearestIndex(t *testing.T) {
	times := []float64{0.0, 1.5, 2.5, 3.5}
	cases := []struct {
		x    float64
		want int
	}{
		{2.7, 2},
		{-1.0, 0},
		{10.0, 3},
		{0.0, 0},
		{3.5, 3},
		{1.4, 1},
		{2.0, 1},
		{3.1, 3},
	}
	for _, tc := range cases {
		if got := NearestIndex(times, tc.x); got != tc.want {
			t.Fatalf("NearestIndex(%v): expected %d, got %d", tc.x, tc.want, got)
		}
	}
	if got := NearestIndex(nil, 1); got != -1 {
		t.Fatalf("expected -1 for empty input, got %d", got)
	}
	if got := NearestIndex([]float64{4}, -3); got != 0 {
		t.Fatalf("expected 0 for single element, got %d", got)
	}
}

func TestFormatValue(t *testing.T) {
	cases := map[float64]string{
		3000.0000000001: "3000",
		14.567:          "14.57",
		-2:              "-2",
		-1e-12:          "0",
		0.5:             "0.50",
		12.1:            "12.10",
	}
	for v, want := range cases {
		if got := FormatValue(v); got != want {
			t.Fatalf("FormatValue(%v): expected %q, got %q", v, want, got)
		}
	}
	if got := FormatValue(math.NaN()); got != "NaN" {
		t.Fatalf("expected NaN, got %q", got)
	}
	if got := Label("Boost", 14.567); got != "Boost: 14.57" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestStackRows(t *testing.T) {
	cases := []struct {
		anchor, n, height int
		want              []int
	}{
		{5, 1, 10, []int{5}},
		{5, 3, 10, []int{5, 4, 6}},
		{0, 3, 10, []int{1, 0, 2}},
		{9, 3, 10, []int{8, 7, 9}},
		{4, 4, 10, []int{4, 3, 5, 2}},
	}
	for _, tc := range cases {
		got := StackRows(tc.anchor, tc.n, tc.height)
		if len(got) != len(tc.want) {
			t.Fatalf("StackRows(%d,%d,%d): expected %v, got %v", tc.anchor, tc.n, tc.height, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("StackRows(%d,%d,%d): expected %v, got %v", tc.anchor, tc.n, tc.height, tc.want, got)
			}
		}
	}
}

func TestStackRowsNoOverlap(t *testing.T) {
	for height := 3; height < 8; height++ {
		for anchor := 0; anchor < height; anchor++ {
			rows := StackRows(anchor, 3, height)
			seen := map[int]bool{}
			for _, r := range rows {
				if r < 0 || r >= height {
					t.Fatalf("row %d outside panel of height %d", r, height)
				}
				if seen[r] {
					t.Fatalf("duplicate row %d for anchor %d height %d", r, anchor, height)
				}
				seen[r] = true
			}
		}
	}
}

func TestControllerStates(t *testing.T) {
	c := NewController([]float64{0, 1, 2, 3})
	if c.State() != Hidden || c.Index() != -1 {
		t.Fatalf("expected initial Hidden state")
	}
	if c.Move(1.6, true) != Shown {
		t.Fatalf("expected Shown after in-range move")
	}
	if c.Index() != 2 {
		t.Fatalf("expected index 2, got %d", c.Index())
	}
	if ts, ok := c.Time(); !ok || ts != 2 {
		t.Fatalf("expected snapped time 2, got %v %v", ts, ok)
	}
	if c.Move(3.5, true) != Hidden {
		t.Fatalf("expected Hidden beyond data range")
	}
	c.Move(1, true)
	if c.Move(1, false) != Hidden {
		t.Fatalf("expected Hidden outside plot area")
	}
	c.Move(1, true)
	if c.Leave() != Hidden {
		t.Fatalf("expected Hidden after leave")
	}
	if _, ok := c.Time(); ok {
		t.Fatalf("expected no time while hidden")
	}
}

func TestControllerStepAndValue(t *testing.T) {
	c := NewController([]float64{0, 1, 2})
	if c.Step(1) != Hidden {
		t.Fatalf("step must not show a hidden cursor")
	}
	c.Move(0.2, true)
	c.Step(5)
	if c.Index() != 2 {
		t.Fatalf("expected clamp to last index, got %d", c.Index())
	}
	c.Step(-1)
	if got := c.Value([]float64{10, 20, 30}); got != 20 {
		t.Fatalf("expected value 20, got %v", got)
	}
	c.Leave()
	if !math.IsNaN(c.Value([]float64{10, 20, 30})) {
		t.Fatalf("expected NaN while hidden")
	}
}
