package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"sparse": {
		Name: "sparse", Width: 1000, Height: 700, Count: 12,
		Radius: 16, MaxSpeed: 2.0,
	},
	"dense": {
		Name: "dense", Width: 800, Height: 600, Count: 140,
		Radius: 7, MaxSpeed: 3.0,
	},
	"billiards": {
		Name: "billiards", Width: 900, Height: 450, Count: 16,
		Radius: 18, MaxSpeed: 4.0,
		Palette: []string{"forestgreen", "firebrick", "goldenrod", "navy"},
	},
	"swirl": {
		Name: "swirl", Width: 800, Height: 600, Count: 80,
		Radius: 9, MaxSpeed: 2.0,
		Velocity: VelocityConfig{Mode: "swirl", Speed: 2.0, Scale: DefaultSwirlScale},
	},
	"heavy": {
		Name: "heavy", Width: 800, Height: 600, Count: 14,
		Radius: 20, Mass: 6, MaxSpeed: 1.2,
	},
}

// GetPreset returns a private copy so callers can overlay flags without
// touching the shared map. Nil when the name is unknown.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	cp.Palette = append([]string(nil), cfg.Palette...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
