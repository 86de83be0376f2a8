package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"` // "sqlite3" or "postgres"
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Auth struct {
		Enabled bool   `yaml:"enabled"`
		Secret  string `yaml:"secret"`
	} `yaml:"auth"`
	Assistant struct {
		Enabled bool   `yaml:"enabled"`
		Model   string `yaml:"model"`
	} `yaml:"assistant"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Roster struct {
		DisplayLimit int `yaml:"display_limit"`
	} `yaml:"roster"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "brigade.db"
	cfg.Assistant.Model = "gpt-4-turbo-preview"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Roster.DisplayLimit = 15
	return cfg
}

// Load reads a YAML configuration file over the defaults. A missing path
// yields the defaults without error so local runs need no config file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
