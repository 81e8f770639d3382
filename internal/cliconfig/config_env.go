package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (SASPORT_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input-dir", os.Getenv("SASPORT_INPUT_DIR"), &cfg.InputDir)
	s.setString("output-dir", os.Getenv("SASPORT_OUTPUT_DIR"), &cfg.OutputDir)
	s.setString("converter", os.Getenv("SASPORT_CONVERTER_CMD"), &cfg.ConverterCmd)

	if err := s.setDuration("convert-timeout", os.Getenv("SASPORT_CONVERT_TIMEOUT"), &cfg.ConvertTimeout); err != nil {
		return err
	}
	if err := s.setDuration("watch-debounce", os.Getenv("SASPORT_WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}

	if err := s.setIntFromString("port", os.Getenv("SASPORT_PORT"), &cfg.Port); err != nil {
		return err
	}

	s.setBoolFromString("archive", os.Getenv("SASPORT_ARCHIVE"), &cfg.Archive)
	s.setBoolFromString("report", os.Getenv("SASPORT_REPORT"), &cfg.Report)
	s.setBoolFromString("watch", os.Getenv("SASPORT_WATCH"), &cfg.Watch)

	return nil
}
