package brand

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Brand is the theming metadata consumed by the dashboard UI. It carries no
// computational semantics — the API serves it verbatim for visual styling.
type Brand struct {
	Name    string  `yaml:"name" json:"name"`
	Tagline string  `yaml:"tagline" json:"tagline"`
	Colors  Palette `yaml:"colors" json:"colors"`
	Logo    Logo    `yaml:"logo" json:"logo"`
}

// Palette holds the brand color tokens as hex strings.
type Palette struct {
	Primary    string `yaml:"primary" json:"primary"`
	Secondary  string `yaml:"secondary" json:"secondary"`
	Success    string `yaml:"success" json:"success"`
	Warning    string `yaml:"warning" json:"warning"`
	Background string `yaml:"background" json:"background"`
	Foreground string `yaml:"foreground" json:"foreground"`
}

// Logo holds the asset references for light/dark contexts.
type Logo struct {
	Light string `yaml:"light" json:"light"`
	Dark  string `yaml:"dark" json:"dark"`
	Icon  string `yaml:"icon" json:"icon"`
}

// Default returns the Pulse Mobile house style.
func Default() *Brand {
	return &Brand{
		Name:    "Pulse Mobile",
		Tagline: "AI-powered telecom insights",
		Colors: Palette{
			Primary:    "#8a2be2",
			Secondary:  "#5856d6",
			Success:    "#4cd964",
			Warning:    "#ffc107",
			Background: "#ffffff",
			Foreground: "#1c1c1e",
		},
		Logo: Logo{
			Light: "assets/pulse-logo-light.svg",
			Dark:  "assets/pulse-logo-dark.svg",
			Icon:  "assets/pulse-icon.svg",
		},
	}
}

// Load reads brand metadata from a YAML file, layering it over the defaults
// so a partial file only overrides what it names. A missing file falls back
// to the defaults without error.
func Load(path string) (*Brand, error) {
	b := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading brand file: %w", err)
	}
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parsing brand file: %w", err)
	}
	return b, nil
}
