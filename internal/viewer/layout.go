package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// frame joins the viewer lines into one screen. Every line is clipped to
// width. With a known height the frame is cut or padded to exactly height
// rows, each width cells wide, so stale cells from a taller frame are
// overwritten.
func frame(lines []string, width, height int) string {
	clip := lipgloss.NewStyle().MaxWidth(width)
	for i, line := range lines {
		if width > 0 && lipgloss.Width(line) > width {
			lines[i] = clip.Render(line)
		}
	}
	if height <= 0 || width <= 0 {
		return strings.Join(lines, "\n")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + strings.Repeat(" ", gap)
		}
	}
	blank := strings.Repeat(" ", width)
	for len(lines) < height {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}
