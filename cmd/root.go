// Package cmd implements the CLI command structure for campusplan.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aylinsezer/campusplan/internal/config"
	"github.com/aylinsezer/campusplan/internal/logging"
	"github.com/aylinsezer/campusplan/internal/task"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the campusplan CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("campusplan", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.FromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	// Determine the subcommand; default to "list".
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "list", "ls":
		return listCommand(cfg, logger, remainingArgs)
	case "edit":
		return editCommand(cfg, logger, remainingArgs)
	case "rm", "remove":
		return removeCommand(cfg, logger, remainingArgs)
	case "search":
		return searchCommand(cfg, logger, remainingArgs)
	case "stats":
		return statsCommand(cfg, logger, remainingArgs)
	case "export":
		return exportCommand(cfg, logger, remainingArgs)
	case "import":
		return importCommand(cfg, logger, remainingArgs)
	case "settings":
		return settingsCommand(cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// loadPlan reads the plan file configured for this run.
func loadPlan(cfg *config.Config) (*task.File, error) {
	f, err := task.Load(cfg.PlanFile)
	if err != nil {
		return nil, fmt.Errorf("loading plan %s: %w", cfg.PlanFile, err)
	}
	return f, nil
}

// savePlan writes the plan file back and logs the result.
func savePlan(cfg *config.Config, logger *log.Logger, f *task.File) error {
	if err := f.Save(cfg.PlanFile); err != nil {
		return fmt.Errorf("saving plan %s: %w", cfg.PlanFile, err)
	}
	logger.Debug("plan saved", "path", cfg.PlanFile, "tasks", len(f.Tasks))
	return nil
}

func versionCommand() error {
	fmt.Printf("campusplan %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `campusplan - personal planner for time-boxed tasks

Usage:
  campusplan [flags] <command> [command flags]

Commands:
  add        Add a task (--title, --duration, --due, --tag)
  list       List tasks (--sort id|title|duration|due, --desc)
  edit       Edit a task by ID
  rm         Delete a task by ID (--force to skip confirmation)
  search     Filter tasks with a regular expression
  stats      Show totals, top tag, weekly cap usage, and the 7-day trend
  export     Write the task list as JSON
  import     Replace the task list from a JSON export (all-or-nothing)
  settings   Show or change time unit and weekly cap
  tui        Interactive terminal interface
  version    Show version
  help       Show this help

Flags:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}
