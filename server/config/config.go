// Package config defines the server runtime configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mergington/activities/logging"
)

const (
	defaultListenAddr    = ":8080"
	defaultMetricsPrefix = "activities"
	defaultJobName       = "activities-server"
	defaultPushSchedule  = "*/5 * * * *"
)

// ServerConfig represents the server runtime configuration.
type ServerConfig struct {
	Listener ListenerConfig `yaml:"listener"`
	Logging  logging.Config `yaml:"logging"`
	// Monitoring configures the optional roster metrics push. Disabled
	// when the VictoriaMetrics URL is empty.
	Monitoring MonitoringConfig `yaml:"monitoring"`
	// SeedFile is the path to a YAML activity seed file. When empty the
	// built-in seed set is used.
	SeedFile string `yaml:"seed_file"`
}

// ListenerConfig holds HTTP server listener settings.
type ListenerConfig struct {
	// The listen address, defaults to :8080
	Addr string `yaml:"addr"`
}

// MonitoringConfig holds settings for pushing roster metrics to a
// remote write endpoint.
type MonitoringConfig struct {
	VictoriaMetricsURL string `yaml:"victoriametrics_url"`
	MetricsPrefix      string `yaml:"metrics_prefix"`
	JobName            string `yaml:"jobname"`
	// PushSchedule is a standard 5-field cron spec, defaults to every
	// five minutes.
	PushSchedule string `yaml:"push_schedule"`
}

// Default returns the configuration used when no config file is given.
func Default() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.SetDefaults()
	return cfg
}

// LoadConfig reads the YAML config file at the given path and returns a
// ServerConfig struct.
func LoadConfig(path string) (*ServerConfig, error) {
	var cfg ServerConfig
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open server config file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode YAML server config: %w", err)
	}

	cfg.SetDefaults()

	return &cfg, nil
}

// SetDefaults sets reasonable default values for optional fields.
func (c *ServerConfig) SetDefaults() {
	if c.Listener.Addr == "" {
		c.Listener.Addr = defaultListenAddr
	}
	if c.Monitoring.MetricsPrefix == "" {
		c.Monitoring.MetricsPrefix = defaultMetricsPrefix
	}
	if c.Monitoring.JobName == "" {
		c.Monitoring.JobName = defaultJobName
	}
	if c.Monitoring.PushSchedule == "" {
		c.Monitoring.PushSchedule = defaultPushSchedule
	}
}
