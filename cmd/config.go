package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusched/sim"
)

// Config represents the --config YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
}

// DefaultsConfig holds the run settings used when no flag or process file sets them.
type DefaultsConfig struct {
	Algorithm string `yaml:"algorithm"`
	Quantum   int64  `yaml:"quantum"`
	Format    string `yaml:"format"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// loadConfig parses a config file with strict field checking: typos must cause errors.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Defaults.Algorithm != "" && !sim.IsValidAlgorithm(cfg.Defaults.Algorithm) {
		return nil, fmt.Errorf("config %s: unknown algorithm %q; valid: fcfs, sjf, rr", path, cfg.Defaults.Algorithm)
	}
	if cfg.Defaults.Quantum < 0 {
		return nil, fmt.Errorf("config %s: %w: %d", path, sim.ErrInvalidQuantum, cfg.Defaults.Quantum)
	}
	if cfg.Defaults.Format != "" && !validFormats[cfg.Defaults.Format] {
		return nil, fmt.Errorf("config %s: unknown format %q; valid: table, json", path, cfg.Defaults.Format)
	}
	return &cfg, nil
}

// applyConfig copies config values into flags the user did not set.
// The flag values are written without marking them Changed, so a process file
// can still take precedence over the config file.
func applyConfig(flags *pflag.FlagSet, cfg *Config) error {
	settings := map[string]string{
		"algorithm": cfg.Defaults.Algorithm,
		"format":    cfg.Defaults.Format,
		"db":        cfg.Store.Path,
		"addr":      cfg.Server.Addr,
	}
	if cfg.Defaults.Quantum != 0 {
		settings["quantum"] = strconv.FormatInt(cfg.Defaults.Quantum, 10)
	}
	for name, value := range settings {
		f := flags.Lookup(name)
		if f == nil || f.Changed || value == "" {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("config value for --%s: %w", name, err)
		}
	}
	return nil
}
