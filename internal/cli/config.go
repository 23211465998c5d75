package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration for the limiterctl demo binary.
// Grounded directly on ChuLiYu-raft-recovery's internal/cli.Config:
// one struct per section, mapped through yaml tags, loaded by
// loadConfig below.
type Config struct {
	Limiter struct {
		MinInterval   time.Duration `yaml:"min_interval"`
		MaxQueued     int           `yaml:"max_queued"`
		MaxConcurrent int           `yaml:"max_concurrent"`
	} `yaml:"limiter"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`

	Demo struct {
		JobCount    int           `yaml:"job_count"`
		JobDuration time.Duration `yaml:"job_duration"`
	} `yaml:"demo"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Limiter.MinInterval = 200 * time.Millisecond
	cfg.Limiter.MaxQueued = 64
	cfg.Limiter.MaxConcurrent = 4
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = 9090
	cfg.Demo.JobCount = 20
	cfg.Demo.JobDuration = 50 * time.Millisecond
	return cfg
}

// loadConfig reads path as YAML. A missing file is not an error: the
// demo falls back to defaultConfig, since limiterctl exists to show
// the limiter working, not to enforce a real deployment's config
// hygiene.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}
