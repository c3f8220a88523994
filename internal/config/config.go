package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"solar-roi/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// City queried for current weather (e.g. "Austin" or "Berlin,DE").
	City string `yaml:"city"`
	// Optional: load system parameters from a separate YAML (e.g. examples/systems/*.yaml).
	// If both SystemFile and System are provided, System overrides SystemFile.
	SystemFile string       `yaml:"system_file"`
	System     SystemConfig `yaml:"system"`
	Usage      UsageConfig  `yaml:"usage"`
}

type SystemConfig struct {
	Name         string  `yaml:"name"`
	RatedPowerKw float64 `yaml:"rated_power_kw"`
}

type UsageConfig struct {
	MonthlyUsageKwh float64 `yaml:"monthly_usage_kwh"`
	TariffPerKwh    float64 `yaml:"tariff_per_kwh"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If system_file is set, load it and merge in any explicit overrides from c.System.
	if c.SystemFile != "" {
		systemPath := c.SystemFile
		if !filepath.IsAbs(systemPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), systemPath)
			if _, err := os.Stat(cand); err == nil {
				systemPath = cand
			}
		}
		loaded, err := LoadSystemFile(systemPath)
		if err != nil {
			return nil, err
		}
		c.System = MergeSystem(loaded, c.System)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.City == "" {
		return errors.New("city is required")
	}
	if err := c.ToInputs().Validate(); err != nil {
		return fmt.Errorf("inputs invalid: %w", err)
	}
	return nil
}

// ToInputs flattens the system and usage sections into calculator inputs.
func (c *Config) ToInputs() model.EstimateInputs {
	return model.EstimateInputs{
		RatedPowerKw:    c.System.RatedPowerKw,
		MonthlyUsageKwh: c.Usage.MonthlyUsageKwh,
		TariffPerKwh:    c.Usage.TariffPerKwh,
	}
}

func (s SystemConfig) ToModelParams() model.SystemParams {
	return model.SystemParams{
		Name:         s.Name,
		RatedPowerKw: s.RatedPowerKw,
	}
}

type systemFileWrapper struct {
	System SystemConfig `yaml:"system"`
}

// LoadSystemFile reads a standalone system preset (examples/systems/*.yaml).
func LoadSystemFile(path string) (SystemConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SystemConfig{}, err
	}
	var w systemFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return SystemConfig{}, err
	}
	return w.System, nil
}

// MergeSystem overlays non-zero fields from override onto base.
// This is used when loading a system file and then applying overrides from the request.
func MergeSystem(base, override SystemConfig) SystemConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.RatedPowerKw != 0 {
		out.RatedPowerKw = override.RatedPowerKw
	}
	return out
}
