package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from CAMPUSPLAN_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("CAMPUSPLAN_PLAN"); v != "" {
		cfg.PlanFile = v
	}
	if v := os.Getenv("CAMPUSPLAN_SCHEMA"); v != "" {
		cfg.SchemaFile = v
	}
	if v := os.Getenv("CAMPUSPLAN_TIME_UNIT"); v != "" {
		cfg.TimeUnit = strings.ToLower(v)
	}
	if v := os.Getenv("CAMPUSPLAN_WEEKLY_CAP"); v != "" {
		if cap, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.WeeklyCapHours = cap
		}
	}
	if v := os.Getenv("CAMPUSPLAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CAMPUSPLAN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("CAMPUSPLAN_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("CAMPUSPLAN_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
