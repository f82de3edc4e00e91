package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/framewm/internal/decor"
	"github.com/1broseidon/framewm/internal/hotkeys"
	"github.com/1broseidon/framewm/internal/interaction"
)

// Config is the manager's complete runtime configuration. There is no
// configuration file: values come from the built-in defaults plus a small
// set of environment overrides.
type Config struct {
	Theme       Theme       `yaml:"theme"`
	Decorations Decorations `yaml:"decorations"`
	Keys        Keys        `yaml:"keys"`
	Terminal    Terminal    `yaml:"terminal"`
	Logging     Logging     `yaml:"logging"`
}

// Theme holds the decoration colors.
type Theme struct {
	Frame  Color `yaml:"frame"`
	Title  Color `yaml:"title"`
	Edge   Color `yaml:"edge"`
	Corner Color `yaml:"corner"`
}

// Decorations holds the decoration sizes in pixels.
type Decorations struct {
	TitleHeight int  `yaml:"title_height"`
	EdgeWidth   int  `yaml:"edge_width"`
	CornerWidth int  `yaml:"corner_width"`
	Corners     bool `yaml:"corners"`
	// TopMargin is the smallest y a dragged frame may take.
	TopMargin int `yaml:"top_margin"`
}

// Keys holds the fixed key sequences.
type Keys struct {
	SpawnTerminal string `yaml:"spawn_terminal"`
	Close         string `yaml:"close"`
	CycleFocus    string `yaml:"cycle_focus"`
}

// Terminal is the program started by the spawn-terminal binding.
type Terminal struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

// Logging configures the manager log.
type Logging struct {
	Level string `yaml:"level"`
	// File is the log file path (default: $XDG_STATE_HOME/framewm/framewm.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation
	MaxSizeMB int `yaml:"max_size_mb"`
	// MaxFiles is the number of rotated files to keep
	MaxFiles int `yaml:"max_files"`
}

// Metrics returns the decoration sizes in the form the framing code uses.
func (c *Config) Metrics() decor.Metrics {
	return decor.Metrics{
		TitleHeight: c.Decorations.TitleHeight,
		EdgeWidth:   c.Decorations.EdgeWidth,
		CornerWidth: c.Decorations.CornerWidth,
		Corners:     c.Decorations.Corners,
	}
}

// Limits returns the bounds applied to drags and resizes.
func (c *Config) Limits() interaction.Limits {
	w, h := c.Metrics().MinSize()
	return interaction.Limits{
		TopMargin: c.Decorations.TopMargin,
		MinWidth:  w,
		MinHeight: h,
	}
}

// KeyTable parses the fixed key bindings.
func (c *Config) KeyTable() (*hotkeys.Table, error) {
	return hotkeys.NewTable(hotkeys.Keys{
		SpawnTerminal: c.Keys.SpawnTerminal,
		Close:         c.Keys.Close,
		CycleFocus:    c.Keys.CycleFocus,
	})
}

// TerminalArgv returns the spawn command followed by its arguments.
func (c *Config) TerminalArgv() []string {
	argv := []string{c.Terminal.Command}
	return append(argv, c.Terminal.Args...)
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() Logging {
	if c == nil {
		return Logging{Level: "info"}
	}
	cfg := c.Logging
	if cfg.File == "" {
		cfg.File = defaultLogFile()
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

func defaultLogFile() string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "framewm", "framewm.log")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.Getenv("HOME")
	}
	if home == "" {
		// Last resort fallback - use current directory
		home = "."
	}
	return filepath.Join(home, ".local/state/framewm/framewm.log")
}

// Validate checks the configuration for values the manager cannot run with.
func (c *Config) Validate() error {
	if c.Decorations.TitleHeight <= 0 {
		return &ValidationError{Path: "decorations.title_height", Err: fmt.Errorf("title_height must be > 0")}
	}
	if c.Decorations.EdgeWidth <= 0 {
		return &ValidationError{Path: "decorations.edge_width", Err: fmt.Errorf("edge_width must be > 0")}
	}
	if c.Decorations.Corners && c.Decorations.CornerWidth <= 0 {
		return &ValidationError{Path: "decorations.corner_width", Err: fmt.Errorf("corner_width must be > 0 when corners are enabled")}
	}
	if c.Decorations.TopMargin < 0 {
		return &ValidationError{Path: "decorations.top_margin", Err: fmt.Errorf("top_margin must be >= 0")}
	}
	if err := c.Metrics().Validate(); err != nil {
		return &ValidationError{Path: "decorations", Err: err}
	}
	if _, err := c.KeyTable(); err != nil {
		return &ValidationError{Path: "keys", Err: err}
	}
	if strings.TrimSpace(c.Terminal.Command) == "" {
		return &ValidationError{Path: "terminal.command", Err: fmt.Errorf("command must not be empty")}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging", Err: fmt.Errorf("max_size_mb and max_files must be >= 0")}
	}
	return nil
}

// ValidationError reports which configuration value failed validation.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
