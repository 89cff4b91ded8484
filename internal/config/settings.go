package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings is the user-tunable subset of the config, persisted in the
// user config file.
type Settings struct {
	TimeUnit       string  `toml:"time_unit"`
	WeeklyCapHours float64 `toml:"weekly_cap_hours"`
}

// SettingsUpdate is a partial settings mutation; nil fields are left
// untouched by the merge.
type SettingsUpdate struct {
	TimeUnit       *string
	WeeklyCapHours *float64
}

// Validate rejects updates the settings invariants forbid.
func (u SettingsUpdate) Validate() error {
	if u.TimeUnit != nil && !ValidTimeUnit(*u.TimeUnit) {
		return fmt.Errorf("time unit must be %q or %q, got %q", TimeUnitMinutes, TimeUnitHours, *u.TimeUnit)
	}
	if u.WeeklyCapHours != nil && *u.WeeklyCapHours <= 0 {
		return fmt.Errorf("weekly cap must be a positive number of hours, got %v", *u.WeeklyCapHours)
	}
	return nil
}

// UserSettingsPath returns where settings are persisted, creating the
// parent directory when needed.
func UserSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, ".campusplan")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return filepath.Join(dir, "campusplan.toml"), nil
}

// UpdateSettings merges the update into the persisted user settings and
// writes them back. Existing non-settings keys in the file are
// preserved by decoding into the full config shape first.
func UpdateSettings(u SettingsUpdate) (*Settings, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	path, err := UserSettingsPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	setDefaults(cfg)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	if u.TimeUnit != nil {
		cfg.TimeUnit = *u.TimeUnit
	}
	if u.WeeklyCapHours != nil {
		cfg.WeeklyCapHours = *u.WeeklyCapHours
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("write user config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode user config file: %w", err)
	}

	return &Settings{TimeUnit: cfg.TimeUnit, WeeklyCapHours: cfg.WeeklyCapHours}, nil
}
