package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/aylinsezer/campusplan/internal/config"
	"github.com/aylinsezer/campusplan/internal/task"
)

// exportCommand writes the task list as a JSON array, to stdout or a file.
func exportCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("campusplan export", flag.ContinueOnError)
	out := fs.String("out", "", "Write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := loadPlan(cfg)
	if err != nil {
		return err
	}

	data, err := task.ExportJSON(f.Tasks)
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	logger.Info("exported", "tasks", len(f.Tasks), "path", *out)
	return nil
}

// importCommand replaces the collection from a JSON export. The import
// is atomic: on any validation error the existing plan is left as-is
// and every problem is printed.
func importCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("campusplan import", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: campusplan import <file.json>")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	result := task.ImportJSON(data, cfg.SchemaFile)
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	if !result.OK() {
		for _, e := range result.Errors {
			logger.Error(e)
		}
		return fmt.Errorf("import rejected: %d problem(s), plan unchanged", len(result.Errors))
	}

	f, err := loadPlan(cfg)
	if err != nil {
		return err
	}
	f.Tasks = result.Tasks
	if err := savePlan(cfg, logger, f); err != nil {
		return err
	}
	logger.Info("imported", "tasks", len(result.Tasks), "schema", result.UsedSchema)
	return nil
}
