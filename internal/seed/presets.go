package seed

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset is a named seeding profile loaded from YAML.
type Preset struct {
	Name  string `yaml:"name"`
	Users int    `yaml:"users"`
	Posts int    `yaml:"posts"`
	Clean bool   `yaml:"clean"`
}

// builtInPresets ship with the binary so `-preset` works without extra files.
const builtInPresets = `
presets:
  - name: minimal
    users: 5
    posts: 10
    clean: true
  - name: demo
    users: 50
    posts: 200
    clean: true
  - name: mega
    users: 500
    posts: 5000
    clean: true
`

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// ParsePresets decodes a YAML preset document.
func ParsePresets(data []byte) (map[string]Preset, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	presets := make(map[string]Preset, len(file.Presets))
	for _, p := range file.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset with empty name")
		}
		if p.Users < 0 || p.Posts < 0 {
			return nil, fmt.Errorf("preset %q has negative counts", p.Name)
		}
		presets[p.Name] = p
	}
	return presets, nil
}

// LoadPresets returns the built-in presets, merged with overrides from the
// given YAML file when path is non-empty. File entries win on name clashes.
func LoadPresets(path string) (map[string]Preset, error) {
	presets, err := ParsePresets([]byte(builtInPresets))
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304: operator-supplied path
		if err != nil {
			return nil, fmt.Errorf("read preset file: %w", err)
		}
		extra, err := ParsePresets(data)
		if err != nil {
			return nil, err
		}
		for name, p := range extra {
			presets[name] = p
		}
	}

	return presets, nil
}

// PresetNames lists available preset names in stable order.
func PresetNames(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
