// Package config loads the calculator's runtime configuration: remote
// stats endpoints, HTTP timeout and logging level. Values come from an
// optional YAML file with environment variable overrides on top.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	EnvStatsURL  = "FOOTPRINT_STATS_URL"
	EnvSubmitURL = "FOOTPRINT_SUBMIT_URL"
	EnvLogLevel  = "FOOTPRINT_LOG_LEVEL"
)

// defaultTimeoutSeconds bounds both remote calls.
const defaultTimeoutSeconds = 10

// Config is the full runtime configuration.
type Config struct {
	Stats   StatsConfig   `yaml:"stats"`
	Logging LoggingConfig `yaml:"logging"`
}

// StatsConfig configures the remote stats collaborator. Empty URLs disable
// the corresponding call; the calculator then runs fully offline with the
// built-in averages.
type StatsConfig struct {
	URL            string `yaml:"url"`
	SubmitURL      string `yaml:"submit_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration.
func (s StatsConfig) Timeout() time.Duration {
	secs := s.TimeoutSeconds
	if secs <= 0 {
		secs = defaultTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Stats:   StatsConfig{TimeoutSeconds: defaultTimeoutSeconds},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file entirely; a missing
// file at an explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvStatsURL); v != "" {
		cfg.Stats.URL = v
	}
	if v := os.Getenv(EnvSubmitURL); v != "" {
		cfg.Stats.SubmitURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}
