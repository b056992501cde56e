// Package config provides configuration loading and management for
// shardsto3d. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Depth estimation parameters
	Depth struct {
		// KernelSize is the Gaussian smoothing kernel size (odd)
		KernelSize int `yaml:"kernelSize"`

		// EdgeWeight blends the edge-derived depth cue
		EdgeWeight float64 `yaml:"edgeWeight"`

		// GradientWeight blends the shading-gradient depth cue
		GradientWeight float64 `yaml:"gradientWeight"`
	} `yaml:"depth"`

	// Projection parameters
	Projection struct {
		// DepthScale converts normalized depth into world units
		DepthScale float64 `yaml:"depthScale"`

		// BackgroundThreshold rejects background pixels after scaling
		BackgroundThreshold float64 `yaml:"backgroundThreshold"`
	} `yaml:"projection"`

	// Reconstruction parameters
	Reconstruction struct {
		// LatheSegments is the number of angular steps for the mesh
		LatheSegments int `yaml:"latheSegments"`
	} `yaml:"reconstruction"`

	// Output parameters
	Output struct {
		// SaveIntermediary determines whether depth maps and point clouds
		// are dumped alongside the final mesh
		SaveIntermediary bool `yaml:"saveIntermediary"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Depth.KernelSize = 3
	cfg.Depth.EdgeWeight = 0.6
	cfg.Depth.GradientWeight = 0.4

	cfg.Projection.DepthScale = 10
	cfg.Projection.BackgroundThreshold = 0.1

	cfg.Reconstruction.LatheSegments = 64

	cfg.Output.SaveIntermediary = false
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
