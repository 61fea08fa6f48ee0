package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Reminder ReminderConfig `yaml:"reminder"`
	Export   ExportConfig   `yaml:"export"`
}

type ServerConfig struct {
	// Transport is "stdio" or "http".
	Transport string `yaml:"transport"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ReminderConfig struct {
	// Interval between reminder polls.
	Interval time.Duration `yaml:"interval"`
}

type ExportConfig struct {
	// Dir receives generated workbooks.
	Dir string `yaml:"dir"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Transport: "stdio",
			Host:      "127.0.0.1",
			Port:      8080,
		},
		DB: DBConfig{
			Path: "mindmirror.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Reminder: ReminderConfig{
			Interval: time.Minute,
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}

	if path := os.Getenv("MINDMIRROR_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if transport := os.Getenv("MINDMIRROR_TRANSPORT"); transport != "" {
		cfg.Server.Transport = transport
	}
	if host := os.Getenv("MINDMIRROR_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("MINDMIRROR_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MINDMIRROR_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("MINDMIRROR_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("MINDMIRROR_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if exportDir := os.Getenv("MINDMIRROR_EXPORT_DIR"); exportDir != "" {
		cfg.Export.Dir = exportDir
	}
	if intervalStr := os.Getenv("MINDMIRROR_REMINDER_INTERVAL"); intervalStr != "" {
		interval, err := time.ParseDuration(intervalStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MINDMIRROR_REMINDER_INTERVAL: %w", err)
		}
		cfg.Reminder.Interval = interval
	}

	if cfg.Server.Transport != "stdio" && cfg.Server.Transport != "http" {
		return Config{}, fmt.Errorf("invalid transport %q: must be stdio or http", cfg.Server.Transport)
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
