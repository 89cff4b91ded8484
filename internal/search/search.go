// Package search filters tasks with user-supplied regular expressions.
package search

import (
	"regexp"
	"strings"

	"github.com/aylinsezer/campusplan/internal/task"
)

// Compile wraps pattern compilation for user input. An empty pattern
// means "no filter" and a syntax error degrades the same way; both
// yield nil so the caller renders an indicator instead of faulting.
func Compile(pattern string, caseInsensitive bool) *regexp.Regexp {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

// escaper neutralizes the five HTML-significant characters in task
// content before markers are inserted.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Highlight returns text with every match wrapped in <mark> tags,
// HTML-escaping the content first. With a nil pattern or empty text the
// input is returned as-is, unescaped; the original behaved that way and
// callers on that path render plain text, not HTML.
func Highlight(text string, re *regexp.Regexp) string {
	if re == nil || text == "" {
		return text
	}
	escaped := escaper.Replace(text)
	return re.ReplaceAllStringFunc(escaped, func(m string) string {
		return "<mark>" + m + "</mark>"
	})
}

// Filter returns the tasks whose title or tag matches the pattern.
// A nil pattern filters nothing.
func Filter(tasks []task.Task, re *regexp.Regexp) []task.Task {
	if re == nil {
		return tasks
	}
	matched := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if re.MatchString(t.Title) || re.MatchString(t.Tag) {
			matched = append(matched, t)
		}
	}
	return matched
}
