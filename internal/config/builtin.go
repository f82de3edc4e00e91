package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var builtinYAML []byte

const (
	// EnvTerminal overrides terminal.command.
	EnvTerminal = "FRAMEWM_TERMINAL"
	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "FRAMEWM_LOG_LEVEL"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg, err := parse(builtinYAML)
	if err != nil {
		// The embedded document is part of the binary.
		panic(fmt.Sprintf("config: invalid built-in defaults: %v", err))
	}
	return cfg
}

// Load returns the built-in configuration with environment overrides applied
// and validated.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvTerminal)); v != "" {
		fields := strings.Fields(v)
		cfg.Terminal.Command = fields[0]
		cfg.Terminal.Args = fields[1:]
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
