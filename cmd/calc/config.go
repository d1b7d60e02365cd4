package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// config is the contents of a configuration file.
type config struct {
	// Mode is the starting mode, "i" or "f".
	Mode string `yaml:"mode"`
	Echo bool   `yaml:"echo"`
	LLVM bool   `yaml:"llvm"`
	// Warnings controls truncated division warnings. They are on unless
	// explicitly disabled.
	Warnings *bool `yaml:"warnings"`
	MaxDepth int   `yaml:"max_depth"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parseMode gets the mode for its name in a configuration file.
func parseMode(name string) (calc.Mode, error) {
	switch name {
	case "i", "i128", "int":
		return calc.ModeInt, nil
	case "f", "f64", "float":
		return calc.ModeFloat, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", name)
	}
}

// configure applies a configuration to the shell.
func (s *shell) configure(cfg config) error {
	if cfg.Mode != "" {
		m, err := parseMode(cfg.Mode)
		if err != nil {
			return err
		}
		s.mode = m
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max_depth (%d) must not be negative", cfg.MaxDepth)
	}
	s.echo = cfg.Echo
	s.emit = cfg.LLVM
	if cfg.Warnings != nil {
		s.warnings = *cfg.Warnings
	}
	s.maxdepth = cfg.MaxDepth
	return nil
}
