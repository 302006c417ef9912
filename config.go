package embedctl

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized by LoadConfig
const (
	// EnvService overrides the managed service name
	EnvService = "EMBEDCTL_SERVICE"

	// EnvHealthURL overrides the health endpoint URL
	EnvHealthURL = "EMBEDCTL_HEALTH_URL"

	// EnvConfig points at an optional YAML config file
	EnvConfig = "EMBEDCTL_CONFIG"
)

// Config holds the injectable settings the dispatcher is built from.
// Precedence: flags > environment > config file > defaults.
type Config struct {
	// Service is the managed systemd unit name
	Service string

	// HealthURL is the service's health endpoint
	HealthURL string

	// LogLines is how many journal entries the logs command retrieves
	LogLines int

	// SettleDelay is how long start/restart wait before the status check
	SettleDelay time.Duration
}

// configFile is the YAML shape of an optional config file
type configFile struct {
	Service   string `yaml:"service"`
	HealthURL string `yaml:"health_url"`
	LogLines  int    `yaml:"log_lines"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Service:     DefaultService,
		HealthURL:   DefaultHealthURL,
		LogLines:    DefaultLogLines,
		SettleDelay: DefaultSettleDelay,
	}
}

// LoadConfig builds a Config from defaults, an optional YAML file, and the
// environment. path may be empty, in which case EnvConfig is consulted; a
// missing file is not an error, a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if svc := os.Getenv(EnvService); svc != "" {
		cfg.Service = svc
	}
	if u := os.Getenv(EnvHealthURL); u != "" {
		cfg.HealthURL = u
	}

	return cfg, nil
}

// applyFile overlays non-zero config file values onto cfg
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if f.Service != "" {
		cfg.Service = f.Service
	}
	if f.HealthURL != "" {
		cfg.HealthURL = f.HealthURL
	}
	if f.LogLines > 0 {
		cfg.LogLines = f.LogLines
	}
	return nil
}
