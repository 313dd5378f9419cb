package config

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Preset is a named bundle of mission exclusion terms. Players keep presets
// for playstyles they avoid, e.g. skipping endurance modes or open worlds.
type Preset struct {
	Description string   `yaml:"description"`
	Exclude     []string `yaml:"exclude"`
}

// Presets maps preset name to its terms.
type Presets map[string]Preset

// BuiltinPresets are available without a presets file.
var BuiltinPresets = Presets{
	"solo-friendly": {
		Description: "skip modes that drag on without a squad",
		Exclude:     []string{"Defense", "Interception", "Survival"},
	},
	"no-railjack": {
		Description: "skip Railjack and Empyrean content",
		Exclude:     []string{"Railjack", "Skirmish", "Volatile", "Orphix"},
	},
	"quick-runs": {
		Description: "only fast one-and-done missions",
		Exclude:     []string{"Defense", "Interception", "Survival", "Excavation", "Disruption"},
	},
}

// LoadPresets reads presets from a YAML file and merges them over the
// builtins. File entries win on name collisions. An empty path returns the
// builtins alone.
func LoadPresets(path string) (Presets, error) {
	merged := make(Presets, len(BuiltinPresets))
	for name, p := range BuiltinPresets {
		merged[name] = p
	}
	if path == "" {
		return merged, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read presets %s", path)
	}

	var wrapper struct {
		Presets Presets `yaml:"presets"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrapf(err, "config: parse presets %s", path)
	}

	for name, p := range wrapper.Presets {
		merged[name] = p
	}
	return merged, nil
}

// Resolve returns the exclusion terms for a preset name.
func (p Presets) Resolve(name string) ([]string, error) {
	preset, ok := p[name]
	if !ok {
		return nil, eris.Errorf("config: unknown preset %q (have: %v)", name, p.Names())
	}
	return preset.Exclude, nil
}

// Names returns the sorted preset names.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
