package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultLocation    = "chat.db"
	defaultLogPrefix   = "[chatstore] "
	defaultBusyTimeout = 5 * time.Second
)

type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// DatabaseConfig describes where the chat store lives and how its
// display timestamps are rendered.
type DatabaseConfig struct {
	// Location is a SQLite file path (or ":memory:") or a postgres:// URL.
	Location    string        `koanf:"location"`
	TimeZone    string        `koanf:"timezone"`
	BusyTimeout time.Duration `koanf:"busy_timeout"`
}

type LogConfig struct {
	Prefix string `koanf:"prefix"`
}

func NewConfig(location, timeZone string) (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Location:    location,
			TimeZone:    timeZone,
			BusyTimeout: defaultBusyTimeout,
		},
		Log: LogConfig{Prefix: defaultLogPrefix},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load layers defaults, the optional YAML file at configPath and
// CHATSTORE_* environment variables, in that order.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("CHATSTORE_", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"database.location":     defaultLocation,
		"database.timezone":     "UTC",
		"database.busy_timeout": defaultBusyTimeout.String(),
		"log.prefix":            defaultLogPrefix,
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"CHATSTORE_DATABASE":     "database.location",
	"CHATSTORE_TIMEZONE":     "database.timezone",
	"CHATSTORE_BUSY_TIMEOUT": "database.busy_timeout",
	"CHATSTORE_LOG_PREFIX":   "log.prefix",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.Location == "" {
		return fmt.Errorf("database location cannot be empty")
	}

	if _, err := time.LoadLocation(c.Database.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone %q: %w", c.Database.TimeZone, err)
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("busy timeout cannot be negative")
	}

	return nil
}
