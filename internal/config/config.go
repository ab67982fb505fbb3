// Package config loads dragstream settings from TOML or YAML files and
// DRAGSTREAM_ environment variables.
//
// Precedence, lowest first: built-in defaults, the config file, the
// environment. A missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/dragstream/internal/input/mouse"
	"github.com/dshills/dragstream/internal/logging"
	"github.com/dshills/dragstream/internal/surface/terminal"
)

// Default values.
const (
	DefaultScriptFunction = "on_drag"
	DefaultScriptTimeout  = 50 * time.Millisecond
	DefaultLogLevel       = "info"
)

// Config is the full dragstream configuration.
type Config struct {
	Drag     DragConfig     `toml:"drag" yaml:"drag"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Script   ScriptConfig   `toml:"script" yaml:"script"`
	Trace    TraceConfig    `toml:"trace" yaml:"trace"`
}

// DragConfig configures the drag listener.
type DragConfig struct {
	// ContextMenuCooldown is how long after a right release a context
	// menu is suppressed.
	ContextMenuCooldown Duration `toml:"context_menu_cooldown" yaml:"context_menu_cooldown"`
}

// TerminalConfig configures the terminal event source.
type TerminalConfig struct {
	// ContextMenuOn is "release" or "press".
	ContextMenuOn string `toml:"context_menu_on" yaml:"context_menu_on"`

	// NativeCapture gives the drag surface native pointer capture instead
	// of the window-level fallback.
	NativeCapture bool `toml:"native_capture" yaml:"native_capture"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty discards logs in interactive mode.
	File string `toml:"file" yaml:"file"`
}

// ScriptConfig configures the Lua gesture sink.
type ScriptConfig struct {
	Path     string   `toml:"path" yaml:"path"`
	Function string   `toml:"function" yaml:"function"`
	Timeout  Duration `toml:"timeout" yaml:"timeout"`
}

// TraceConfig configures sample recording.
type TraceConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Drag: DragConfig{
			ContextMenuCooldown: Duration(mouse.DefaultContextMenuCooldown),
		},
		Terminal: TerminalConfig{
			ContextMenuOn: terminal.ContextMenuOnRelease.String(),
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
		Script: ScriptConfig{
			Function: DefaultScriptFunction,
			Timeout:  Duration(DefaultScriptTimeout),
		},
	}
}

// Load reads path over the defaults. An empty or missing path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := Decode(path, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads path, applies environment overrides and validates the
// result.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode decodes data into cfg, choosing the format from name's extension.
// Keys absent from data keep their current values.
func Decode(name string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return newParseError(name, err)
	}
	return nil
}

func newParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	return pe
}

// Validate checks value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Drag.ContextMenuCooldown < 0 {
		errs = append(errs, fmt.Errorf("%w: drag.context_menu_cooldown %s is negative", ErrInvalidValue, c.Drag.ContextMenuCooldown))
	}
	if _, err := terminal.ParseContextMenuTrigger(c.Terminal.ContextMenuOn); err != nil {
		errs = append(errs, fmt.Errorf("%w: terminal.context_menu_on: %w", ErrInvalidValue, err))
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level))
	}
	if c.Script.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: script.timeout %s is negative", ErrInvalidValue, c.Script.Timeout))
	}
	if c.Script.Path != "" && c.Script.Function == "" {
		errs = append(errs, fmt.Errorf("%w: script.function is empty", ErrInvalidValue))
	}
	return errors.Join(errs...)
}

// ContextMenuTrigger returns the parsed terminal trigger. Call Validate
// first; an invalid value yields the release trigger.
func (c *Config) ContextMenuTrigger() terminal.ContextMenuTrigger {
	t, _ := terminal.ParseContextMenuTrigger(c.Terminal.ContextMenuOn)
	return t
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	l, _ := logging.ParseLevel(c.Logging.Level)
	return l
}
