package monty

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mwildehahn/monty/internal/eval"
)

// Config is the host-facing knob set for a Monty instance (§6, AMBIENT
// STACK "Configuration"): resource limits plus the script's display
// name. cmd/monty loads this from a YAML file (`--config limits.yaml`)
// with github.com/goccy/go-yaml; an embedder linking pkg/monty directly
// can just populate the struct literal instead.
type Config struct {
	MaxCallDepth int    `yaml:"max_call_depth"`
	MaxMemory    int64  `yaml:"max_memory"`
	ScriptName   string `yaml:"script_name"`
}

// Limits converts Config's resource knobs to eval.Limits.
func (c Config) Limits() eval.Limits {
	return eval.Limits{MaxCallDepth: c.MaxCallDepth, MaxMemory: c.MaxMemory}
}

// DefaultConfig limits call depth to 1000 and leaves memory unbounded
// (MaxMemory 0), with script name "<monty>". The evaluator's zero-value
// Limits leave call depth unbounded as well.
func DefaultConfig() Config {
	return Config{MaxCallDepth: 1000, ScriptName: "<monty>"}
}

// LoadConfig reads a YAML config file, starting from DefaultConfig so
// a file that only overrides one field still leaves sane values for
// the rest.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("monty: reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("monty: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
