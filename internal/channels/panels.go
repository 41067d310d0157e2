package channels

import (
	"fmt"

	"github.com/verte-zerg/jb4plot/internal/model"
)

// Panel describes one stacked subplot.
type Panel struct {
	Channel string
	Label   string
	Min     float64
	Max     float64
	Aux     []string
}

// Series is one named line inside a panel.
type Series struct {
	Name   string
	Values []float64
}

// PanelData holds a panel and the series drawn in it. The primary channel
// is always Series[0].
type PanelData struct {
	Panel  Panel
	Series []Series
}

// DefaultPanels returns the standard stacked layout.
func DefaultPanels() []Panel {
	return []Panel{
		{Channel: "RPM", Label: "RPM", Min: 0, Max: 7000},
		{Channel: "Boost", Label: "Boost (psi)", Min: 0, Max: 25, Aux: []string{"Boost2", "Target"}},
		{Channel: "Pedal", Label: "Pedal / Throttle (%)", Min: 0, Max: 110, Aux: []string{"Throttle"}},
		{Channel: "AFR", Label: "AFR", Min: 10, Max: 22},
		{Channel: "IAT", Label: "IAT (°F)", Min: 0, Max: 160},
		{Channel: "Speed", Label: "Speed (mph)", Min: 0, Max: 120},
	}
}

// WithLimits returns a copy of panels with y limits replaced from
// overrides, keyed by logical channel.
func WithLimits(panels []Panel, overrides map[string][2]float64) ([]Panel, error) {
	out := make([]Panel, len(panels))
	for i, p := range panels {
		p.Aux = append([]string(nil), p.Aux...)
		if lim, ok := overrides[p.Channel]; ok {
			p.Min, p.Max = lim[0], lim[1]
		}
		if !(p.Min < p.Max) {
			return nil, fmt.Errorf("invalid limits for %s: min %v must be below max %v", p.Channel, p.Min, p.Max)
		}
		out[i] = p
	}
	for name := range overrides {
		if !hasPanel(out, name) {
			return nil, fmt.Errorf("limits given for unknown channel %q", name)
		}
	}
	return out, nil
}

// Build pulls every panel's series out of the table through the map.
func Build(table *model.Table, m Map, panels []Panel) []PanelData {
	out := make([]PanelData, 0, len(panels))
	for _, p := range panels {
		data := PanelData{Panel: p}
		data.Series = append(data.Series, Series{Name: p.Channel, Values: table.Column(m.Column(p.Channel))})
		for _, aux := range p.Aux {
			data.Series = append(data.Series, Series{Name: aux, Values: table.Column(m.Column(aux))})
		}
		out = append(out, data)
	}
	return out
}

func hasPanel(panels []Panel, channel string) bool {
	for _, p := range panels {
		if p.Channel == channel {
			return true
		}
	}
	return false
}
