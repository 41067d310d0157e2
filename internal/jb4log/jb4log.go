// Package jb4log reads JB4 CSV logs that carry a metadata preamble.
package jb4log

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/jb4plot/internal/model"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// FindHeaderLine returns the 0-based index of the first line whose
// left-trimmed content starts with marker.
func FindHeaderLine(r io.Reader, marker string) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, &model.ParseError{Reason: "failed to read log", Err: err}
	}
	line, _, ok := headerOffset(normalizeInput(data), marker)
	if !ok {
		return 0, headerNotFound(marker)
	}
	return line, nil
}

// Read parses a log from r. Lines before the header are skipped and rows
// keep their file order.
func Read(r io.Reader) (*model.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &model.ParseError{Reason: "failed to read log", Err: err}
	}
	data = normalizeInput(data)
	headerLine, offset, ok := headerOffset(data, model.TimeField)
	if !ok {
		return nil, headerNotFound(model.TimeField)
	}

	reader := csv.NewReader(bytes.NewReader(data[offset:]))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, &model.ParseError{Reason: "failed to read header row", Err: err}
	}
	fields := NormalizeFields(header)

	timeIdx := -1
	for i, f := range fields {
		if f == model.TimeField {
			timeIdx = i
			break
		}
	}
	if timeIdx < 0 {
		return nil, &model.SchemaError{
			Missing:   []string{model.TimeField},
			Available: append([]string(nil), fields...),
		}
	}

	var rows [][]float64
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &model.ParseError{Reason: "malformed row after header", Err: err}
		}
		if timeIdx >= len(record) {
			continue
		}
		ts, ok := parseCell(record[timeIdx])
		if !ok || math.IsInf(ts, 0) {
			continue
		}
		row := make([]float64, len(fields))
		for i := range row {
			if i >= len(record) {
				row[i] = math.NaN()
				continue
			}
			v, ok := parseCell(record[i])
			if !ok {
				v = math.NaN()
			}
			row[i] = v
		}
		row[timeIdx] = ts
		rows = append(rows, row)
	}

	return model.NewTable(fields, rows, headerLine), nil
}

// NormalizeFields trims field names, collapses whitespace runs to a single
// space and suffixes repeated names with .1, .2 and so on.
func NormalizeFields(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, name := range raw {
		name = strings.Join(strings.Fields(name), " ")
		base := name
		if n, ok := seen[base]; ok {
			for {
				n++
				name = base + "." + strconv.Itoa(n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

func headerOffset(data []byte, marker string) (line, offset int, ok bool) {
	pos := 0
	for pos <= len(data) {
		end := bytes.IndexByte(data[pos:], '\n')
		next := len(data) + 1
		lineBytes := data[pos:]
		if end >= 0 {
			lineBytes = data[pos : pos+end]
			next = pos + end + 1
		}
		if strings.HasPrefix(strings.TrimLeft(string(lineBytes), " \t\r\v\f"), marker) {
			return line, pos, true
		}
		line++
		pos = next
	}
	return 0, 0, false
}

func normalizeInput(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	return bytes.ToValidUTF8(data, []byte("\uFFFD"))
}

func parseCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func headerNotFound(marker string) error {
	return &model.ParseError{
		Reason: fmt.Sprintf("could not find a header line starting with %q", marker),
	}
}
