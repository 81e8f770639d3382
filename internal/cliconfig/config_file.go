package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	InputDir       string `toml:"input_dir"`
	OutputDir      string `toml:"output_dir"`
	ConverterCmd   string `toml:"converter_cmd"`
	ConvertTimeout string `toml:"convert_timeout"`
	Archive        *bool  `toml:"archive"`
	Report         *bool  `toml:"report"`
	Port           int    `toml:"port"`
	Watch          *bool  `toml:"watch"`
	WatchDebounce  string `toml:"watch_debounce"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.sasport/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".sasport", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input-dir", fc.InputDir, &cfg.InputDir)
	s.setString("output-dir", fc.OutputDir, &cfg.OutputDir)
	s.setString("converter", fc.ConverterCmd, &cfg.ConverterCmd)

	if err := s.setDuration("convert-timeout", fc.ConvertTimeout, &cfg.ConvertTimeout); err != nil {
		return err
	}
	if err := s.setDuration("watch-debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setInt("port", fc.Port, &cfg.Port)

	s.setBool("archive", fc.Archive, &cfg.Archive)
	s.setBool("report", fc.Report, &cfg.Report)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
