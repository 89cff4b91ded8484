package cmd

import (
	"flag"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/aylinsezer/campusplan/internal/config"
	"github.com/aylinsezer/campusplan/internal/search"
)

var matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

// searchCommand filters tasks with a regular expression. An invalid
// pattern degrades to "no filter" with a warning rather than failing.
func searchCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("campusplan search", flag.ContinueOnError)
	ignoreCase := fs.Bool("i", false, "Case-insensitive matching")
	format := fs.String("format", "text", "Output format (text or html)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pattern := strings.Join(fs.Args(), " ")

	re := search.Compile(pattern, *ignoreCase)
	if re == nil && strings.TrimSpace(pattern) != "" {
		logger.Warn("invalid pattern, showing all tasks", "pattern", pattern)
	}

	f, err := loadPlan(cfg)
	if err != nil {
		return err
	}

	matched := search.Filter(f.Tasks, re)
	for _, t := range matched {
		switch *format {
		case "html":
			fmt.Printf("%s  %s  [%s]\n", t.ID, search.Highlight(t.Title, re), search.Highlight(t.Tag, re))
		default:
			fmt.Printf("%-5s  %-10s  %8s  %-12s  %s\n",
				t.ID, t.DueDate, formatDuration(cfg, t.Duration), t.Tag, highlightANSI(t.Title, re))
		}
	}
	if len(matched) == 0 {
		fmt.Println("No matches.")
	}
	return nil
}

// highlightANSI is the terminal twin of search.Highlight: same match
// spans, lipgloss styling instead of markup.
func highlightANSI(text string, re *regexp.Regexp) string {
	if re == nil || text == "" {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return matchStyle.Render(m)
	})
}
