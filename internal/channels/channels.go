// Package channels maps logical channel names to the columns a log uses.
package channels

import (
	"sort"

	"github.com/verte-zerg/jb4plot/internal/model"
)

// Alias lists the accepted physical names for a logical channel, in
// priority order.
type Alias struct {
	Logical  string
	Accepted []string
}

// Map resolves logical channel names to physical column names.
type Map map[string]string

// DefaultAliases covers the firmware variants seen in JB4 logs.
// Boost2, Target and Throttle have no fallback.
var DefaultAliases = []Alias{
	{Logical: "RPM", Accepted: []string{"RPM"}},
	{Logical: "Boost", Accepted: []string{"Boost", "ECU Boost"}},
	{Logical: "Pedal", Accepted: []string{"Pedal"}},
	{Logical: "Throttle", Accepted: []string{"Throttle"}},
	{Logical: "AFR", Accepted: []string{"AFR"}},
	{Logical: "IAT", Accepted: []string{"IAT"}},
	{Logical: "Speed", Accepted: []string{"Speed", "GPS Speed"}},
	{Logical: "Boost2", Accepted: []string{"Boost2"}},
	{Logical: "Target", Accepted: []string{"Target"}},
}

// Resolve picks the first accepted alias present for every logical name.
// Any unresolved name fails the whole resolution with a SchemaError.
func Resolve(available []string, aliases []Alias) (Map, error) {
	out, missing := Match(available, aliases)
	if len(missing) > 0 {
		sorted := append([]string(nil), available...)
		sort.Strings(sorted)
		return nil, &model.SchemaError{Missing: missing, Available: sorted}
	}
	return out, nil
}

// Match resolves every logical name it can and returns the rest, in alias
// order.
func Match(available []string, aliases []Alias) (Map, []string) {
	present := make(map[string]struct{}, len(available))
	for _, name := range available {
		present[name] = struct{}{}
	}

	out := make(Map, len(aliases))
	var missing []string
	for _, alias := range aliases {
		resolved := ""
		for _, candidate := range alias.Accepted {
			if _, ok := present[candidate]; ok {
				resolved = candidate
				break
			}
		}
		if resolved == "" {
			missing = append(missing, alias.Logical)
			continue
		}
		out[alias.Logical] = resolved
	}
	return out, missing
}

// Column returns the physical column for a logical name. Names outside the
// map resolve to themselves.
func (m Map) Column(logical string) string {
	if col, ok := m[logical]; ok {
		return col
	}
	return logical
}

// RequiredAliases keeps the alias rows a panel set needs, in alias order.
// Logical names without an alias row are required verbatim.
func RequiredAliases(panels []Panel, aliases []Alias) []Alias {
	needed := map[string]struct{}{}
	for _, p := range panels {
		needed[p.Channel] = struct{}{}
		for _, aux := range p.Aux {
			needed[aux] = struct{}{}
		}
	}
	out := make([]Alias, 0, len(needed))
	for _, alias := range aliases {
		if _, ok := needed[alias.Logical]; ok {
			out = append(out, alias)
			delete(needed, alias.Logical)
		}
	}
	rest := make([]string, 0, len(needed))
	for name := range needed {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, Alias{Logical: name, Accepted: []string{name}})
	}
	return out
}
