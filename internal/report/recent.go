package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/jb4plot/internal/model"
)

// RecentLines renders open history as an aligned table. now anchors the
// relative times.
func RecentLines(records []model.OpenRecord, now time.Time) []string {
	if len(records) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			humanize.RelTime(rec.OpenedAt, now, "ago", "from now"),
			filepath.Base(rec.Path),
			humanize.Comma(int64(rec.Rows)),
			fmt.Sprintf("%ss", formatSeconds(rec.EndTime-rec.StartTime)),
			humanize.Bytes(uint64(maxInt64(rec.SizeBytes, 0))),
			rec.Path,
		})
	}
	headers := []string{"Opened", "File", "Rows", "Length", "Size", "Path"}
	return formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true})
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
