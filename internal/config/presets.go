package config

import "sort"

// Presets are named rendering profiles. A preset can still be overridden
// by a config file or explicit CLI flags.
var Presets = map[string]*Config{
	"draft": {
		Format: "gif", Frames: 24, Box: DefaultBox, Dim: 2, Duration: DefaultDuration,
		Width: 320, Height: 240,
	},
	"standard": {
		Format: "gif", Frames: 60, Box: DefaultBox, Dim: 2, Duration: DefaultDuration,
		Width: DefaultWidth, Height: DefaultHeight,
	},
	"smooth": {
		Format: "gif", Frames: 120, Box: DefaultBox, Dim: 2, Duration: DefaultDuration,
		Width: DefaultWidth, Height: DefaultHeight,
	},
	"pairs": {
		Format: "gif", Frames: 60, Box: DefaultBox, Dim: 2, Duration: DefaultDuration,
		Width: DefaultWidth, Height: DefaultHeight,
		PairLines: true,
	},
	"cube": {
		Format: "gif", Frames: 60, Box: DefaultBox, Dim: 3, Duration: DefaultDuration,
		Width: DefaultWidth, Height: DefaultHeight,
		NeighborBoxes: true,
	},
	"video": {
		Format: "avi", Frames: 120, Box: DefaultBox, Dim: 2, Duration: 4.0,
		Width: DefaultWidth, Height: DefaultHeight,
	},
}

// GetPreset returns the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
