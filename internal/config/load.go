package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.campusplan/campusplan.toml or OS config dir)
// 3. Project config file (campusplan.toml or .campusplan.toml in cwd)
// 4. Environment variables (a .env file in cwd is read first, if any)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	setDefaults(cfg)

	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// A local .env is optional; missing files are fine.
	_ = godotenv.Load()
	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.PlanFile = DefaultPlanFile
	cfg.SchemaFile = ""
	cfg.TimeUnit = DefaultTimeUnit
	cfg.WeeklyCapHours = DefaultWeeklyCapHours
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	cfg.PlanFile = expandPath(cfg.PlanFile)
	cfg.SchemaFile = expandPath(cfg.SchemaFile)

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if !filepath.IsAbs(cfg.PlanFile) {
		cfg.PlanFile = filepath.Join(cfg.ProjectRoot, cfg.PlanFile)
	}
	if cfg.SchemaFile != "" && !filepath.IsAbs(cfg.SchemaFile) {
		cfg.SchemaFile = filepath.Join(cfg.ProjectRoot, cfg.SchemaFile)
	}

	if !ValidTimeUnit(cfg.TimeUnit) {
		return fmt.Errorf("time_unit must be %q or %q, got %q", TimeUnitMinutes, TimeUnitHours, cfg.TimeUnit)
	}
	if cfg.WeeklyCapHours <= 0 {
		return fmt.Errorf("weekly_cap_hours must be positive, got %v", cfg.WeeklyCapHours)
	}

	return nil
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.campusplan/campusplan.toml first, then falls back to the
// OS-specific config directory.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		p := filepath.Join(home, ".campusplan", "campusplan.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if cfgDir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(cfgDir, "campusplan", "campusplan.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// findProjectConfigFile checks for campusplan.toml in the current directory.
func findProjectConfigFile() string {
	names := []string{"campusplan.toml", ".campusplan.toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
