package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/jb4plot/internal/channels"
	"github.com/verte-zerg/jb4plot/internal/jb4log"
	"github.com/verte-zerg/jb4plot/internal/model"
)

type loadedLog struct {
	path    string
	size    int64
	table   *model.Table
	mapping channels.Map
	panels  []channels.PanelData
}

// loadLog parses path, resolves every channel the panels need and extracts
// their series.
func loadLog(path string, panels []channels.Panel) (*loadedLog, error) {
	table, err := jb4log.Open(path)
	if err != nil {
		return nil, err
	}
	mapping, err := channels.Resolve(table.Fields, channels.RequiredAliases(panels, channels.DefaultAliases))
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	return &loadedLog{
		path:    abs,
		size:    size,
		table:   table,
		mapping: mapping,
		panels:  channels.Build(table, mapping, panels),
	}, nil
}

func (l *loadedLog) record() model.OpenRecord {
	start, end := l.table.Span()
	return model.OpenRecord{
		Path:       l.path,
		OpenedAt:   time.Now(),
		SizeBytes:  l.size,
		Rows:       l.table.Len(),
		HeaderLine: l.table.HeaderLine,
		StartTime:  start,
		EndTime:    end,
		BoostCol:   l.mapping.Column("Boost"),
		SpeedCol:   l.mapping.Column("Speed"),
	}
}
