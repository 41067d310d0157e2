package report

import (
	"strings"
	"testing"
	"time"

	"github.com/valyala/fastjson"

	"github.com/verte-zerg/jb4plot/internal/channels"
	"github.com/verte-zerg/jb4plot/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Channel", "Column", "Rows"}
	rows := [][]string{
		{"RPM", "RPM", "12"},
		{"Speed", "GPS Speed", "3"},
	}
	lines := formatTable(headers, rows, map[int]bool{2: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Channel  Column     Rows" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "RPM      RPM          12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Speed    GPS Speed     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestWrapWords(t *testing.T) {
	lines := wrapWords([]string{"timestamp", "RPM", "Boost", "Target"}, ", ", 16)
	want := []string{"timestamp, RPM", "Boost, Target"}
	if len(lines) != len(want) {
		t.Fatalf("unexpected wrap: %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func sampleColumns() Columns {
	table := model.NewTable(
		[]string{"timestamp", "RPM", "GPS Speed"},
		[][]float64{{0, 1000, 10}, {1.5, 2000, 20}},
		4,
	)
	aliases := []channels.Alias{
		{Logical: "RPM", Accepted: []string{"RPM"}},
		{Logical: "Boost", Accepted: []string{"Boost", "ECU Boost"}},
		{Logical: "Speed", Accepted: []string{"Speed", "GPS Speed"}},
	}
	return NewColumns("/logs/run.csv", table, aliases)
}

func TestColumnsLines(t *testing.T) {
	out := strings.Join(sampleColumns().Lines(80), "\n")
	for _, want := range []string{
		"header line: 4",
		"rows:        2",
		"time:        0.00 - 1.50 s",
		"timestamp, RPM, GPS Speed",
		"Speed    GPS Speed",
		"Boost    MISSING",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestColumnsJSON(t *testing.T) {
	var p fastjson.Parser
	v, err := p.ParseBytes(sampleColumns().JSON())
	if err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if v.GetInt("header_line") != 4 || v.GetInt("rows") != 2 {
		t.Fatalf("unexpected counts: %s", v)
	}
	if v.GetFloat64("end") != 1.5 {
		t.Fatalf("unexpected end: %s", v)
	}
	if string(v.GetStringBytes("channels", "Speed")) != "GPS Speed" {
		t.Fatalf("unexpected Speed mapping: %s", v)
	}
	if boost := v.Get("channels", "Boost"); boost == nil || boost.Type() != fastjson.TypeNull {
		t.Fatalf("missing channel should be null: %s", v)
	}
	missing := v.GetArray("missing")
	if len(missing) != 1 || string(missing[0].GetStringBytes()) != "Boost" {
		t.Fatalf("unexpected missing list: %s", v)
	}
	if cols := v.GetArray("columns"); len(cols) != 3 {
		t.Fatalf("expected 3 columns: %s", v)
	}
}

func TestRecentLines(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	lines := RecentLines([]model.OpenRecord{
		{Path: "/logs/a.csv", OpenedAt: now.Add(-2 * time.Hour), Rows: 12345, StartTime: 0, EndTime: 61.5, SizeBytes: 2048},
	}, now)
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d", len(lines))
	}
	for _, want := range []string{"2 hours ago", "a.csv", "12,345", "61.50s", "2.0 kB", "/logs/a.csv"} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("row missing %q: %q", want, lines[1])
		}
	}
	if RecentLines(nil, now) != nil {
		t.Fatalf("expected nil for empty history")
	}
}
