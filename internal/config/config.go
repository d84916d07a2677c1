package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds awsposture configuration loaded from .awsposture.yaml.
type Config struct {
	BaseURL         string   `yaml:"base_url"`
	ListenAddr      string   `yaml:"listen_addr"`
	DBPath          string   `yaml:"db_path"`
	RefreshInterval string   `yaml:"refresh_interval"`
	Regions         []string `yaml:"regions"`
	Profile         string   `yaml:"profile"`
	Timeout         string   `yaml:"timeout"`
}

// RefreshIntervalDuration parses the refresh interval, 0 when unset or
// invalid.
func (c Config) RefreshIntervalDuration() time.Duration {
	if c.RefreshInterval == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.RefreshInterval)
	return d
}

// TimeoutDuration parses the timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Load searches for .awsposture.yaml or .awsposture.yml in the given
// directory and returns the parsed config. Returns an empty Config if
// no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".awsposture.yaml"),
		filepath.Join(dir, ".awsposture.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
