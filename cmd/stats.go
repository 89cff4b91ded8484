package cmd

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aylinsezer/campusplan/internal/config"
	"github.com/aylinsezer/campusplan/internal/stats"
)

// statsCommand prints the summary dashboard: totals, top tag, the
// trailing-week numbers, cap usage, and the 7-day trend.
func statsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("campusplan stats", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := loadPlan(cfg)
	if err != nil {
		return err
	}

	s := stats.Calculate(f.Tasks, time.Now())
	usage := stats.CapUsage(s.WeeklyHours, cfg.WeeklyCapHours)

	fmt.Printf("Tasks:        %d\n", s.Total)
	fmt.Printf("Total hours:  %.1f\n", s.TotalHours)
	fmt.Printf("Top tag:      %s\n", s.TopTag)
	fmt.Printf("Due last 7d:  %d\n", s.RecentTasks)
	fmt.Printf("Weekly hours: %.1f of %.1f cap (%.0f%%)\n", s.WeeklyHours, cfg.WeeklyCapHours, usage.Percent)
	if usage.Over {
		fmt.Printf("Over cap by:  %.1f hours\n", -usage.Remaining)
	} else {
		fmt.Printf("Remaining:    %.1f hours\n", usage.Remaining)
	}

	fmt.Println("\nTrend (tasks due per day):")
	max := 0
	for _, p := range s.Trend {
		if p.Count > max {
			max = p.Count
		}
	}
	for _, p := range s.Trend {
		bar := ""
		if max > 0 {
			bar = strings.Repeat("█", p.Count*20/max)
		}
		fmt.Printf("  %s %s  %2d %s\n", p.Weekday, p.Date, p.Count, bar)
	}
	return nil
}
