// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg, err := config.LoadOrEnv()
//	if err != nil {
//		return err
//	}
//	engineCfg, err := cfg.Matching.EngineConfig()
//	if err != nil {
//		return err
//	}
//	engine := matcher.NewEngine(engineCfg, logger)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"garage-reconciliation/internal/matcher"
)

// Config represents the entire application configuration
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
}

// MatchingConfig holds the reconciliation windows and tolerance
type MatchingConfig struct {
	SearchWindowDays int    `yaml:"search_window_days"`
	GracePeriodDays  int    `yaml:"grace_period_days"`
	AmountTolerance  string `yaml:"amount_tolerance"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string `yaml:"port"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			SearchWindowDays: 7,
			GracePeriodDays:  3,
			AmountTolerance:  "0.01",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Port: "8080",
		},
	}
}

// Load reads and parses the config file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${RECON_GRACE_PERIOD_DAYS})
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only. Unset
// variables keep their defaults; malformed or out-of-range values are errors.
func LoadFromEnv() (*Config, error) {
	defaults := Default()
	var errs []error

	searchWindow, err := getEnvInt("RECON_SEARCH_WINDOW_DAYS", defaults.Matching.SearchWindowDays)
	errs = append(errs, err)
	gracePeriod, err := getEnvInt("RECON_GRACE_PERIOD_DAYS", defaults.Matching.GracePeriodDays)
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	cfg := &Config{
		Matching: MatchingConfig{
			SearchWindowDays: searchWindow,
			GracePeriodDays:  gracePeriod,
			AmountTolerance:  getEnv("RECON_AMOUNT_TOLERANCE", defaults.Matching.AmountTolerance),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", defaults.Logging.Level),
			Format: getEnv("LOG_FORMAT", defaults.Logging.Format),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", defaults.Server.Port),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment config: %w", err)
	}
	return cfg, nil
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() (*Config, error) {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath loads the file at path. Only a missing file falls back to
// environment variables; a file that exists but does not parse or validate is
// returned as an error.
func LoadOrEnvWithPath(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the matching parameters are usable.
func (c *Config) Validate() error {
	_, err := c.Matching.EngineConfig()
	return err
}

// EngineConfig converts the matching section into the engine's config and
// validates it.
func (m MatchingConfig) EngineConfig() (matcher.Config, error) {
	tolerance, err := decimal.NewFromString(m.AmountTolerance)
	if err != nil {
		return matcher.Config{}, fmt.Errorf("amount tolerance %q: %w", m.AmountTolerance, err)
	}
	cfg := matcher.Config{
		SearchWindowDays: m.SearchWindowDays,
		GracePeriodDays:  m.GracePeriodDays,
		AmountTolerance:  tolerance,
	}
	if err := cfg.Validate(); err != nil {
		return matcher.Config{}, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	result, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, val)
	}
	return result, nil
}
