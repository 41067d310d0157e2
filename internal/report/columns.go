package report

import (
	"fmt"
	"strconv"

	"github.com/valyala/fastjson"

	"github.com/verte-zerg/jb4plot/internal/channels"
	"github.com/verte-zerg/jb4plot/internal/model"
)

// Columns summarizes a parsed log and how its columns resolve.
type Columns struct {
	Path       string
	HeaderLine int
	Fields     []string
	Rows       int
	Start      float64
	End        float64
	Resolved   channels.Map
	Missing    []string
	aliases    []channels.Alias
}

// NewColumns describes table against aliases.
func NewColumns(path string, table *model.Table, aliases []channels.Alias) Columns {
	resolved, missing := channels.Match(table.Fields, aliases)
	start, end := table.Span()
	return Columns{
		Path:       path,
		HeaderLine: table.HeaderLine,
		Fields:     append([]string(nil), table.Fields...),
		Rows:       table.Len(),
		Start:      start,
		End:        end,
		Resolved:   resolved,
		Missing:    missing,
		aliases:    aliases,
	}
}

// Lines renders the summary as text wrapped to width.
func (c Columns) Lines(width int) []string {
	lines := []string{
		"file:        " + c.Path,
		"header line: " + strconv.Itoa(c.HeaderLine),
		fmt.Sprintf("rows:        %d", c.Rows),
		fmt.Sprintf("time:        %s - %s s", formatSeconds(c.Start), formatSeconds(c.End)),
		"",
		fmt.Sprintf("columns (%d):", len(c.Fields)),
	}
	for _, l := range wrapWords(c.Fields, ", ", width-2) {
		lines = append(lines, "  "+l)
	}
	lines = append(lines, "", "channels:")

	rows := make([][]string, 0, len(c.aliases))
	for _, alias := range c.aliases {
		col, ok := c.Resolved[alias.Logical]
		if !ok {
			col = "MISSING"
		}
		rows = append(rows, []string{alias.Logical, col})
	}
	for _, l := range formatTable([]string{"Channel", "Column"}, rows, nil) {
		lines = append(lines, "  "+l)
	}
	return lines
}

// JSON renders the summary as a JSON object.
func (c Columns) JSON() []byte {
	var a fastjson.Arena
	obj := a.NewObject()
	obj.Set("path", a.NewString(c.Path))
	obj.Set("header_line", a.NewNumberInt(c.HeaderLine))
	obj.Set("rows", a.NewNumberInt(c.Rows))
	obj.Set("start", a.NewNumberFloat64(c.Start))
	obj.Set("end", a.NewNumberFloat64(c.End))

	fields := a.NewArray()
	for i, f := range c.Fields {
		fields.SetArrayItem(i, a.NewString(f))
	}
	obj.Set("columns", fields)

	resolved := a.NewObject()
	for _, alias := range c.aliases {
		if col, ok := c.Resolved[alias.Logical]; ok {
			resolved.Set(alias.Logical, a.NewString(col))
		} else {
			resolved.Set(alias.Logical, a.NewNull())
		}
	}
	obj.Set("channels", resolved)

	missing := a.NewArray()
	for i, name := range c.Missing {
		missing.SetArrayItem(i, a.NewString(name))
	}
	obj.Set("missing", missing)
	return obj.MarshalTo(nil)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
