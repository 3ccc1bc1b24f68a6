package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Evaluator names
const (
	EvalCPS    = "cps"
	EvalDirect = "direct"
)

// Config holds the settings of the interpreter.
type Config struct {
	Evaluator string `yaml:"evaluator"`
	Trace     bool   `yaml:"trace"`
	History   string `yaml:"history"`
	Prompt    string `yaml:"prompt"`
}

// DefaultConfig returns the settings used without a configuration file.
func DefaultConfig() *Config {
	return &Config{
		Evaluator: EvalCPS,
		History:   ".proc_history",
		Prompt:    "> ",
	}
}

// DecodeConfig reads YAML settings over the defaults.
// Unknown keys are errors.
func DecodeConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads settings from a YAML file.
func LoadConfig(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg, err := DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Evaluator = strings.ToLower(strings.TrimSpace(c.Evaluator))
	switch c.Evaluator {
	case "":
		c.Evaluator = EvalCPS
	case EvalCPS, EvalDirect:
	default:
		return fmt.Errorf("config: unknown evaluator %q", c.Evaluator)
	}
	return nil
}
