package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/funprob/internal/config"
)

// RunConfig describes one inference run. It can be loaded from a YAML file
// and selectively overridden by flags.
type RunConfig struct {
	Model        string             `yaml:"model"`
	Seed         uint64             `yaml:"seed"`
	Samples      int                `yaml:"samples"`
	Store        string             `yaml:"store"`
	Params       map[string]float64 `yaml:"params"`
	Observations []bool             `yaml:"observations"`
}

// DefaultRunConfig returns the built-in defaults before file and flag
// overrides are applied.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Seed:    config.DefaultSeed,
		Samples: config.DefaultSampleCount,
		Params:  map[string]float64{},
	}
}

// LoadRunConfig merges the YAML file at path over the defaults.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Params == nil {
		cfg.Params = map[string]float64{}
	}
	return cfg, nil
}

// param returns a model parameter with a default.
func (c RunConfig) param(name string, def float64) float64 {
	if v, ok := c.Params[name]; ok {
		return v
	}
	return def
}
