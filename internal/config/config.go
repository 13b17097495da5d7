package config

import (
	"os"
	"strconv"
	"strings"

	"gofit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig
	Test       TestConfig
	Simulation SimulationConfig
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// TestConfig holds defaults for goodness-of-fit test runs
type TestConfig struct {
	Statistic    string // ks, cvm or ad
	AssumeSorted bool
}

// SimulationConfig holds Monte Carlo simulator defaults
type SimulationConfig struct {
	Precision int
	Rounds    int
	Workers   int
	Seed      uint64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Log:        *loadLogConfig(),
		Test:       *loadTestConfig(),
		Simulation: *loadSimulationConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level: getEnvOrDefault("GOFIT_LOG_LEVEL", "INFO"),
	}
}

func loadTestConfig() *TestConfig {
	return &TestConfig{
		Statistic:    strings.ToLower(getEnvOrDefault("GOFIT_STATISTIC", "ks")),
		AssumeSorted: getEnvBoolOrDefault("GOFIT_ASSUME_SORTED", false),
	}
}

func loadSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		Precision: getEnvIntOrDefault("GOFIT_SIM_PRECISION", 100),
		Rounds:    getEnvIntOrDefault("GOFIT_SIM_ROUNDS", 100000),
		Workers:   getEnvIntOrDefault("GOFIT_SIM_WORKERS", 4),
		Seed:      getEnvUintOrDefault("GOFIT_SIM_SEED", 1),
	}
}

func validateConfig(config *Config) error {
	switch config.Test.Statistic {
	case "ks", "cvm", "ad":
	default:
		return errors.ConfigInvalid("GOFIT_STATISTIC must be one of ks, cvm, ad")
	}
	sim := config.Simulation
	if sim.Precision < 2 {
		return errors.ConfigInvalid("GOFIT_SIM_PRECISION must be at least 2")
	}
	if sim.Rounds < sim.Precision || sim.Rounds%sim.Precision != 0 {
		return errors.ConfigInvalid("GOFIT_SIM_ROUNDS must be a positive multiple of GOFIT_SIM_PRECISION")
	}
	if sim.Workers < 1 {
		return errors.ConfigInvalid("GOFIT_SIM_WORKERS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUintOrDefault(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
