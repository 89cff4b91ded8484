package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/aylinsezer/campusplan/internal/config"
)

// settingsCommand shows or updates the persisted user settings.
// Updates are partial merges: only the flags the user passed change.
func settingsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("campusplan settings", flag.ContinueOnError)
	timeUnit := fs.String("time-unit", "", "Display unit: minutes or hours")
	weeklyCap := fs.Float64("weekly-cap", 0, "Weekly hour cap (positive hours)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	update := config.SettingsUpdate{}
	if *timeUnit != "" {
		update.TimeUnit = timeUnit
	}
	if *weeklyCap != 0 {
		update.WeeklyCapHours = weeklyCap
	}

	if update.TimeUnit == nil && update.WeeklyCapHours == nil {
		fmt.Printf("time_unit:        %s\n", cfg.TimeUnit)
		fmt.Printf("weekly_cap_hours: %.1f\n", cfg.WeeklyCapHours)
		return nil
	}

	saved, err := config.UpdateSettings(update)
	if err != nil {
		return err
	}
	logger.Info("settings updated", "time_unit", saved.TimeUnit, "weekly_cap_hours", saved.WeeklyCapHours)
	return nil
}
