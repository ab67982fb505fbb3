package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DRAGSTREAM_"

// envSetting maps one environment variable onto a config field.
type envSetting struct {
	name  string
	apply func(c *Config, value string) error
}

var envSettings = []envSetting{
	{"CONTEXT_MENU_COOLDOWN", func(c *Config, v string) error {
		return c.Drag.ContextMenuCooldown.UnmarshalText([]byte(v))
	}},
	{"CONTEXT_MENU_ON", func(c *Config, v string) error {
		c.Terminal.ContextMenuOn = v
		return nil
	}},
	{"NATIVE_CAPTURE", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
		}
		c.Terminal.NativeCapture = b
		return nil
	}},
	{"LOG_LEVEL", func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	}},
	{"LOG_FILE", func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	}},
	{"SCRIPT", func(c *Config, v string) error {
		c.Script.Path = v
		return nil
	}},
	{"SCRIPT_FUNCTION", func(c *Config, v string) error {
		c.Script.Function = v
		return nil
	}},
	{"TRACE", func(c *Config, v string) error {
		c.Trace.Path = v
		return nil
	}},
}

// EnvNames returns the full names of the recognized environment variables.
func EnvNames() []string {
	names := make([]string, len(envSettings))
	for i, s := range envSettings {
		names[i] = EnvPrefix + s.name
	}
	return names
}

// ApplyEnv overrides cfg with any DRAGSTREAM_ variables that are set.
// An empty value is a valid value, not an unset one.
func ApplyEnv(cfg *Config) error {
	for _, s := range envSettings {
		name := EnvPrefix + s.name
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := s.apply(cfg, v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
