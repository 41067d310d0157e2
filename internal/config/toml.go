// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Viewer  ViewerConfig         `toml:"viewer"`
	History HistoryConfig        `toml:"history"`
	Limits  map[string][]float64 `toml:"limits"`
}

// ViewerConfig maps viewer-related settings.
type ViewerConfig struct {
	Dir         *string `toml:"dir"`
	PanelHeight *int    `toml:"panel-height"`
	Mouse       *bool   `toml:"mouse"`
}

// HistoryConfig maps recently-opened history settings.
type HistoryConfig struct {
	Enabled *bool `toml:"enabled"`
	Limit   *int  `toml:"limit"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// LimitOverrides converts the [limits] table into per-channel y limits.
func (c FileConfig) LimitOverrides() (map[string][2]float64, error) {
	if len(c.Limits) == 0 {
		return nil, nil
	}
	out := make(map[string][2]float64, len(c.Limits))
	for name, lim := range c.Limits {
		if len(lim) != 2 {
			return nil, fmt.Errorf("limits.%s must be [min, max], got %d values", name, len(lim))
		}
		out[name] = [2]float64{lim[0], lim[1]}
	}
	return out, nil
}
