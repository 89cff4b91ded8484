// Package config handles configuration loading and persisted settings.
package config

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Time units accepted for display settings.
const (
	TimeUnitMinutes = "minutes"
	TimeUnitHours   = "hours"
)

// Default values.
const (
	DefaultPlanFile       = "plan.json"
	DefaultTimeUnit       = TimeUnitMinutes
	DefaultWeeklyCapHours = 10
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config holds the full configuration for campusplan. The time_unit and
// weekly_cap_hours fields are the user-facing settings; the rest is app
// plumbing.
type Config struct {
	// Paths
	PlanFile   string `toml:"plan_file"`
	SchemaFile string `toml:"schema_file"`

	// Display settings
	TimeUnit       string  `toml:"time_unit"`
	WeeklyCapHours float64 `toml:"weekly_cap_hours"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// ValidTimeUnit reports whether s is an accepted time unit.
func ValidTimeUnit(s string) bool {
	return s == TimeUnitMinutes || s == TimeUnitHours
}
