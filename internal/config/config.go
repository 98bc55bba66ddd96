// Package config layers softdo settings: built-in defaults, an optional
// YAML file, then SOFTDO_* environment variables. A "__" in an env var
// name separates nesting levels, so SOFTDO_SCHEDULER__POLL_INTERVAL_SECONDS
// overrides scheduler.poll_interval_seconds.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type StorageConfig struct {
	DBPath string `koanf:"db_path"`
}

type SchedulerConfig struct {
	PollIntervalSeconds int `koanf:"poll_interval_seconds"`
}

type NotificationsConfig struct {
	Enabled bool `koanf:"enabled"`
}

type FocusConfig struct {
	WorkMinutes  int `koanf:"work_minutes"`
	BreakMinutes int `koanf:"break_minutes"`
}

type UpdateConfig struct {
	Enabled bool   `koanf:"enabled"`
	Repo    string `koanf:"repo"`
}

type UIConfig struct {
	DarkMode bool `koanf:"dark_mode"`
}

type Config struct {
	Storage       StorageConfig       `koanf:"storage"`
	Scheduler     SchedulerConfig     `koanf:"scheduler"`
	Notifications NotificationsConfig `koanf:"notifications"`
	Focus         FocusConfig         `koanf:"focus"`
	Update        UpdateConfig        `koanf:"update"`
	UI            UIConfig            `koanf:"ui"`
}

// PollInterval returns the scheduler interval, defaulting and clamping
// so a misconfigured value can never out-span a stage window.
func (c Config) PollInterval() time.Duration {
	secs := c.Scheduler.PollIntervalSeconds
	if secs <= 0 {
		secs = 10
	}
	if secs > 60 {
		secs = 60
	}
	return time.Duration(secs) * time.Second
}

// DefaultConfigPath is where Load looks when no explicit path is given.
func DefaultConfigPath() string {
	return "~/.config/softdo/config.yaml"
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("SOFTDO_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "SOFTDO_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	return &cfg, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
