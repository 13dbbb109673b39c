package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir string
	DBPath  string

	// Tunables loaded from <dataDir>/config.yaml. Missing or malformed
	// files fall back to defaults without surfacing an error.
	DefaultFocusMinutes int
	TrashRetentionDays  int
	ReminderInterval    time.Duration
}

// TrashRetention is the window deleted tasks survive in the trash.
func (c Config) TrashRetention() time.Duration {
	return time.Duration(c.TrashRetentionDays) * 24 * time.Hour
}

type fileConfig struct {
	DefaultFocusMinutes int `yaml:"default_focus_minutes"`
	TrashRetentionDays  int `yaml:"trash_retention_days"`
	ReminderIntervalSec int `yaml:"reminder_interval_seconds"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:             dataDir,
		DBPath:              filepath.Join(dataDir, "taskdeck.db"),
		DefaultFocusMinutes: 25,
		TrashRetentionDays:  7,
		ReminderInterval:    time.Minute,
	}
	payload, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		return cfg, nil
	}
	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return cfg, nil
	}
	if fc.DefaultFocusMinutes > 0 {
		cfg.DefaultFocusMinutes = fc.DefaultFocusMinutes
	}
	if fc.TrashRetentionDays > 0 {
		cfg.TrashRetentionDays = fc.TrashRetentionDays
	}
	if fc.ReminderIntervalSec > 0 {
		cfg.ReminderInterval = time.Duration(fc.ReminderIntervalSec) * time.Second
	}
	return cfg, nil
}
