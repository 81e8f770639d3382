package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ConverterCmd != DefaultConverterCmd {
		t.Errorf("expected default converter %q, got %q", DefaultConverterCmd, cfg.ConverterCmd)
	}
	if cfg.ConvertTimeout != 2*time.Minute {
		t.Errorf("unexpected default timeout %v", cfg.ConvertTimeout)
	}
	if !cfg.Report {
		t.Error("report should be on by default")
	}
	if cfg.Archive {
		t.Error("archive should be off by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "output dir defaults to input dir",
			mutate: func(c *Config) { c.InputDir = "/data/xpt" },
		},
		{
			name:   "empty converter falls back to default",
			mutate: func(c *Config) { c.ConverterCmd = "" },
		},
		{
			name:        "negative convert timeout",
			mutate:      func(c *Config) { c.ConvertTimeout = -time.Second },
			expectError: true,
		},
		{
			name:        "zero watch debounce",
			mutate:      func(c *Config) { c.WatchDebounce = 0 },
			expectError: true,
		},
		{
			name:        "port out of range",
			mutate:      func(c *Config) { c.Port = 70000 },
			expectError: true,
		},
		{
			name:        "port zero",
			mutate:      func(c *Config) { c.Port = 0 },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError && err == nil {
				t.Error("Validate() expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateDerivedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir = "/data/xpt"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.OutputDir != "/data/xpt" {
		t.Errorf("output dir not derived from input dir: %q", cfg.OutputDir)
	}

	cfg = DefaultConfig()
	cfg.InputDir = "/data/xpt"
	cfg.OutputDir = "/data/out"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.OutputDir != "/data/out" {
		t.Errorf("explicit output dir was overridden: %q", cfg.OutputDir)
	}
}
