package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aylinsezer/campusplan/internal/config"
	"github.com/aylinsezer/campusplan/internal/task"
	"github.com/aylinsezer/campusplan/internal/validate"
)

// addCommand validates the input and appends a new task.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("campusplan add", flag.ContinueOnError)
	title := fs.String("title", "", "Task title")
	duration := fs.String("duration", "", "Duration in minutes (e.g. 90 or 1.5)")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	tag := fs.String("tag", "", "Tag (letters, spaces, hyphens)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// A bare positional argument is the title.
	if *title == "" && len(fs.Args()) > 0 {
		*title = strings.Join(fs.Args(), " ")
	}

	in := validate.Input{Title: *title, Duration: *duration, DueDate: *due, Tag: *tag}
	batch := validate.Task(in)
	if !batch.Valid {
		reportFieldErrors(logger, batch.Errors)
		return fmt.Errorf("task input is invalid")
	}

	f, err := loadPlan(cfg)
	if err != nil {
		return err
	}

	minutes, err := strconv.ParseFloat(strings.TrimSpace(*duration), 64)
	if err != nil {
		return fmt.Errorf("parsing duration: %w", err)
	}

	added := f.AddTask(task.Task{
		Title:    *title,
		Duration: minutes,
		DueDate:  strings.TrimSpace(*due),
		Tag:      strings.TrimSpace(*tag),
	}, time.Now())

	if err := savePlan(cfg, logger, f); err != nil {
		return err
	}
	logger.Info("task added", "id", added.ID, "title", added.Title, "due", added.DueDate)
	return nil
}

// listCommand prints the collection as a table.
func listCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("campusplan list", flag.ContinueOnError)
	sortField := fs.String("sort", task.SortByDue, "Sort by id, title, duration, or due")
	desc := fs.Bool("desc", false, "Sort descending")
	tagFilter := fs.String("tag", "", "Only show tasks with this tag")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := loadPlan(cfg)
	if err != nil {
		return err
	}
	f.SortTasks(*sortField, *desc)

	shown := 0
	for _, t := range f.Tasks {
		if *tagFilter != "" && !strings.EqualFold(t.Tag, *tagFilter) {
			continue
		}
		printTaskRow(cfg, t)
		shown++
	}
	if shown == 0 {
		fmt.Println("No tasks. Add one with: campusplan add --title ...")
	}
	return nil
}

// editCommand applies the provided field flags to an existing task.
// Only flags the user passed are validated and written.
func editCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("campusplan edit", flag.ContinueOnError)
	title := fs.String("title", "", "New title")
	duration := fs.String("duration", "", "New duration in minutes")
	due := fs.String("due", "", "New due date (YYYY-MM-DD)")
	tag := fs.String("tag", "", "New tag")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: campusplan edit <id> [--title ...] [--duration ...] [--due ...] [--tag ...]")
	}
	id := fs.Arg(0)

	changes := map[string]string{}
	if *title != "" {
		changes[validate.FieldTitle] = *title
	}
	if *duration != "" {
		changes[validate.FieldDuration] = *duration
	}
	if *due != "" {
		changes[validate.FieldDate] = *due
	}
	if *tag != "" {
		changes[validate.FieldTag] = *tag
	}
	if len(changes) == 0 {
		return fmt.Errorf("nothing to change for %s", id)
	}

	errors := map[string]string{}
	for field, raw := range changes {
		if r := validate.Field(field, raw); !r.Valid {
			errors[field] = r.Message
		}
	}
	if newTitle, ok := changes[validate.FieldTitle]; ok && validate.HasAdjacentDuplicateWord(newTitle) {
		errors[validate.FieldTitle] = validate.DuplicateWordMessage
	}
	if len(errors) > 0 {
		reportFieldErrors(logger, errors)
		return fmt.Errorf("task input is invalid")
	}

	f, err := loadPlan(cfg)
	if err != nil {
		return err
	}

	err = f.UpdateTask(id, time.Now(), func(t *task.Task) {
		if *title != "" {
			t.Title = *title
		}
		if *duration != "" {
			t.Duration, _ = strconv.ParseFloat(strings.TrimSpace(*duration), 64)
		}
		if *due != "" {
			t.DueDate = strings.TrimSpace(*due)
		}
		if *tag != "" {
			t.Tag = strings.TrimSpace(*tag)
		}
	})
	if err != nil {
		return err
	}

	if err := savePlan(cfg, logger, f); err != nil {
		return err
	}
	logger.Info("task updated", "id", id)
	return nil
}

// removeCommand deletes a task, asking first unless --force.
func removeCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("campusplan rm", flag.ContinueOnError)
	force := fs.Bool("force", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: campusplan rm <id> [--force]")
	}
	id := fs.Arg(0)

	f, err := loadPlan(cfg)
	if err != nil {
		return err
	}
	t := f.GetTask(id)
	if t == nil {
		return fmt.Errorf("task %q not found", id)
	}

	if !*force {
		fmt.Printf("Delete %s %q? [y/N] ", t.ID, t.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Kept.")
			return nil
		}
	}

	if err := f.DeleteTask(id); err != nil {
		return err
	}
	if err := savePlan(cfg, logger, f); err != nil {
		return err
	}
	logger.Info("task deleted", "id", id)
	return nil
}

// reportFieldErrors logs every field message; one bad field never hides
// another.
func reportFieldErrors(logger *log.Logger, errors map[string]string) {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		logger.Error(errors[field], "field", field)
	}
}

// printTaskRow formats one task line, honoring the time unit setting.
func printTaskRow(cfg *config.Config, t task.Task) {
	fmt.Printf("%-5s  %-10s  %8s  %-12s  %s\n", t.ID, t.DueDate, formatDuration(cfg, t.Duration), t.Tag, t.Title)
}

func formatDuration(cfg *config.Config, minutes float64) string {
	if cfg.TimeUnit == config.TimeUnitHours {
		return fmt.Sprintf("%.1fh", minutes/60)
	}
	return fmt.Sprintf("%.0fm", minutes)
}
