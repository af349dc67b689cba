// Package config loads the device/squelch tuning configuration from
// YAML, grounded on the same decode-into-struct convention the
// teacher's deviceid.go uses for its alias tables.
package config

import (
	"fmt"
	"os"

	"github.com/sdrcore/rfsense/rferrs"
	"gopkg.in/yaml.v3"
)

// SquelchPreset names a named squelch tuning, including deprecated
// presets kept for backward compatibility with older captures.
type SquelchPreset struct {
	Name            string  `yaml:"name"`
	SquelchMarginDB float64 `yaml:"squelch_margin_db"`
	MinPulseTicks   int     `yaml:"min_pulse_ticks"`
	Deprecated      bool    `yaml:"deprecated"`
}

// DeviceOverride toggles or re-tunes one catalog device by name.
type DeviceOverride struct {
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled"`
}

// Config is the top-level document.
type Config struct {
	SampleRate int              `yaml:"sample_rate"`
	CenterFreq uint32           `yaml:"center_freq"`
	ProbeAll   bool             `yaml:"probe_all"`
	Squelch    []SquelchPreset  `yaml:"squelch_presets"`
	Devices    []DeviceOverride `yaml:"devices"`
}

// DefaultSquelchMarginDB and DefaultMinPulseTicks are the current
// (newest-variant) squelch defaults; older tunings observed in the
// field are recorded as deprecated presets rather than dropped.
const (
	DefaultSquelchMarginDB = 3.0
	DefaultMinPulseTicks   = 2
)

// Default returns a Config seeded with the current squelch defaults
// and no device overrides.
func Default() *Config {
	return &Config{
		Squelch: []SquelchPreset{
			{Name: "current", SquelchMarginDB: DefaultSquelchMarginDB, MinPulseTicks: DefaultMinPulseTicks},
			{Name: "legacy-rtl433-0.x", SquelchMarginDB: 1.5, MinPulseTicks: 1, Deprecated: true},
		},
	}
}

// Load reads and validates a Config from a YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &rferrs.ConfigError{Field: path, Err: err}
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &rferrs.ConfigError{Field: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields Load cannot verify through YAML typing
// alone.
func (c *Config) Validate() error {
	if c.SampleRate < 0 {
		return &rferrs.ConfigError{Field: "sample_rate", Err: fmt.Errorf("must be non-negative, got %d", c.SampleRate)}
	}
	for _, p := range c.Squelch {
		if p.SquelchMarginDB < 0 {
			return &rferrs.ConfigError{Field: "squelch_presets." + p.Name, Err: fmt.Errorf("squelch_margin_db must be non-negative")}
		}
	}
	return nil
}

// Preset looks up a named squelch preset, falling back to the current
// default if name is empty or unknown.
func (c *Config) Preset(name string) SquelchPreset {
	for _, p := range c.Squelch {
		if p.Name == name {
			return p
		}
	}
	return SquelchPreset{Name: "current", SquelchMarginDB: DefaultSquelchMarginDB, MinPulseTicks: DefaultMinPulseTicks}
}
