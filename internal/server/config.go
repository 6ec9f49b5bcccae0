package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/pokersim/holdem/internal/montecarlo"
)

// Config represents the complete service configuration
type Config struct {
	Server     Settings   `hcl:"server,block"`
	Simulation Simulation `hcl:"simulation,block"`
}

// Settings contains server-level configuration
type Settings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Simulation bounds and defaults for simulation requests
type Simulation struct {
	DefaultTrials    int   `hcl:"default_trials,optional"`
	MaxTrials        int   `hcl:"max_trials,optional"`
	DefaultOpponents int   `hcl:"default_opponents,optional"`
	Workers          int   `hcl:"workers,optional"`
	Seed             int64 `hcl:"seed,optional"`
}

// DefaultConfig returns the default service configuration
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Simulation: Simulation{
			DefaultTrials:    montecarlo.DefaultTrials,
			MaxTrials:        500000,
			DefaultOpponents: montecarlo.DefaultOpponents,
			Workers:          1,
		},
	}
}

// LoadConfig loads service configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Simulation.DefaultTrials == 0 {
		config.Simulation.DefaultTrials = defaults.Simulation.DefaultTrials
	}
	if config.Simulation.MaxTrials == 0 {
		config.Simulation.MaxTrials = defaults.Simulation.MaxTrials
	}
	if config.Simulation.DefaultOpponents == 0 {
		config.Simulation.DefaultOpponents = defaults.Simulation.DefaultOpponents
	}
	if config.Simulation.Workers == 0 {
		config.Simulation.Workers = defaults.Simulation.Workers
	}

	return &config, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Simulation.MaxTrials < c.Simulation.DefaultTrials {
		return fmt.Errorf("max_trials %d below default_trials %d",
			c.Simulation.MaxTrials, c.Simulation.DefaultTrials)
	}
	if c.Simulation.DefaultOpponents < 1 || c.Simulation.DefaultOpponents > montecarlo.MaxOpponents {
		return fmt.Errorf("default_opponents must be 1-%d, got %d",
			montecarlo.MaxOpponents, c.Simulation.DefaultOpponents)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Simulation.Workers)
	}
	return nil
}
