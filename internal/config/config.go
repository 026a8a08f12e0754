package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	DB    DBConfig    `yaml:"db"`
	Log   LogConfig   `yaml:"log"`
	Stats StatsConfig `yaml:"stats"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type StatsConfig struct {
	// Timezone used for calendar bucketing, e.g. "Europe/Berlin".
	// "Local" uses the system zone.
	Timezone string `yaml:"timezone"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Environment variables win over the file.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Path: "studylog.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Stats: StatsConfig{
			Timezone: "Local",
		},
	}

	if path := os.Getenv("STUDYLOG_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("STUDYLOG_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("STUDYLOG_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if tz := os.Getenv("STUDYLOG_TIMEZONE"); tz != "" {
		cfg.Stats.Timezone = tz
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
