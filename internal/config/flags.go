package config

import (
	"flag"
)

// parseFlags defines and parses the global CLI flags. Flag values
// override every other source.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("campusplan", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.PlanFile, "plan", cfg.PlanFile, "Path to plan file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to import schema override")
	fs.StringVar(&cfg.TimeUnit, "time-unit", cfg.TimeUnit, "Display durations in minutes or hours")
	fs.Float64Var(&cfg.WeeklyCapHours, "weekly-cap", cfg.WeeklyCapHours, "Weekly hour cap")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller info in logs")

	return fs.Parse(args)
}
