package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Settings are the runtime knobs of the simulator. Scenario data lives in the catalog.
type Settings struct {
	LogLevel  string `yaml:"log_level"`
	Workers   int    `yaml:"workers"`
	Seed      int64  `yaml:"seed"` // 0 = seed from the clock
	Edge      string `yaml:"edge"`
	Scenarios string `yaml:"scenarios"` // catalog path, empty = built-in battery
}

func DefaultSettings() Settings {
	return Settings{
		LogLevel: "info",
		Workers:  runtime.NumCPU(),
		Edge:     "clamp",
	}
}

// LoadSettings reads settings from path on top of the defaults.
// A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
