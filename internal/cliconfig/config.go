// Package cliconfig holds the CLI-facing configuration for sasport and the
// precedence machinery that merges it from file, environment, and flags.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultConverterCmd is the external converter invoked when none is
// configured. The contract is positional: <cmd> <input.xpt> <output.sas7bdat>.
const DefaultConverterCmd = "xpt2sas"

// Config holds CLI configuration for sasport.
type Config struct {
	InputDir  string
	OutputDir string

	ConverterCmd   string
	ConvertTimeout time.Duration

	Archive bool
	Report  bool

	Port int

	Watch         bool
	WatchDebounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ConverterCmd:   DefaultConverterCmd,
		ConvertTimeout: 2 * time.Minute,
		Report:         true,
		Port:           8080,
		WatchDebounce:  500 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.ConverterCmd == "" {
		c.ConverterCmd = DefaultConverterCmd
	}

	if c.OutputDir == "" {
		c.OutputDir = c.InputDir
	}
	if c.OutputDir == "" {
		// Explicit file arguments with no dirs configured: write next to
		// where sasport runs.
		c.OutputDir = "."
	}

	if c.ConvertTimeout < 0 {
		return fmt.Errorf("convert timeout must not be negative")
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("watch debounce must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
