package cmd

import (
	"context"
	"flag"

	"github.com/aylinsezer/campusplan/internal/config"
	"github.com/aylinsezer/campusplan/internal/ui"
)

// tuiCommand launches the interactive interface.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("campusplan tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ui.RunTUI(ctx, cfg)
}
