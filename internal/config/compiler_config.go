package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CompilerConfig is the optional enumc.yaml a driver may load, following
// the teacher's ext.Config load/validate/default shape
// (mcgru-funxy/internal/ext/config.go — LoadConfig/ParseConfig/validate/
// setDefaults) scaled down to the handful of knobs a semantic core needs:
// whether to warn on unused variables, and a safety cap on monomorphized
// instantiations per generic item.
type CompilerConfig struct {
	// WarnUnusedVariables toggles the Check pass's unused-variable
	// warning (spec.md §6's warning category). Defaults to true.
	WarnUnusedVariables bool `yaml:"warn_unused_variables"`

	// MaxInstantiationsPerItem caps how many distinct type-argument
	// tuples a single generic item may be instantiated with. The driver
	// compares the Generic Resolver's counts against it after the
	// pipeline has run and reports a generic error for each item over
	// the cap; the Resolver itself does not stop expanding. Defaults to 256.
	MaxInstantiationsPerItem int `yaml:"max_instantiations_per_item"`
}

// DefaultConfig returns the configuration a driver uses when no
// enumc.yaml is present.
func DefaultConfig() CompilerConfig {
	return CompilerConfig{
		WarnUnusedVariables:      true,
		MaxInstantiationsPerItem: 256,
	}
}

// LoadCompilerConfig reads and parses an enumc.yaml file.
func LoadCompilerConfig(path string) (CompilerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CompilerConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseCompilerConfig(data)
}

// ParseCompilerConfig parses enumc.yaml content from bytes, filling in
// defaults for any field the document omits.
func ParseCompilerConfig(data []byte) (CompilerConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CompilerConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.MaxInstantiationsPerItem <= 0 {
		cfg.MaxInstantiationsPerItem = 256
	}
	return cfg, nil
}
