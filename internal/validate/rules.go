// Package validate applies the field rules for task input.
//
// Rules are declarative pattern+predicate pairs so the rule table is the
// single source of truth for both per-field checks (field exit in the TUI)
// and the batch check on submit.
package validate

import (
	"regexp"
	"strings"
	"time"
)

// Field names accepted by Field and used as keys in Batch.Errors.
const (
	FieldTitle    = "title"
	FieldDuration = "duration"
	FieldDate     = "date"
	FieldTag      = "tag"
)

var (
	// Single spaces between words, nothing leading or trailing.
	titleRe = regexp.MustCompile(`^\S+( \S+)*$`)
	// Integer with no leading zeros (bare zero allowed), optional 1-2
	// fractional digits.
	durationRe = regexp.MustCompile(`^(0|[1-9]\d*)(\.\d{1,2})?$`)
	// Shape check only; Feb 30 and friends are caught by the calendar parse.
	dateRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	// Alphabetic runs joined by single spaces or hyphens.
	tagRe = regexp.MustCompile(`^[A-Za-z]+([ -][A-Za-z]+)*$`)
)

// Rule is one field's validation capability: a pattern, an optional
// auxiliary predicate applied after the pattern passes, and the message
// reported on failure.
type Rule struct {
	Pattern *regexp.Regexp
	Check   func(string) bool
	Message string
	// rawInput disables the pre-trim, for rules that must see
	// leading/trailing whitespace to reject it.
	rawInput bool
}

var rules = map[string]Rule{
	FieldTitle: {
		Pattern:  titleRe,
		Message:  "Title must be non-empty, with single spaces and no leading or trailing whitespace",
		rawInput: true,
	},
	FieldDuration: {
		Pattern: durationRe,
		Message: "Duration must be a number of minutes like 45 or 1.5 (up to two decimals)",
	},
	FieldDate: {
		Pattern: dateRe,
		Check:   isRealDate,
		Message: "Due date must be a real calendar date in YYYY-MM-DD form",
	},
	FieldTag: {
		Pattern: tagRe,
		Message: "Tag must be letters, with single spaces or hyphens between words",
	},
}

// DuplicateWordMessage is reported when the title repeats a word twice
// in a row. It overwrites the plain title message when both checks fail.
const DuplicateWordMessage = "Title repeats a word twice in a row"

// Result is the outcome of a single-field check.
type Result struct {
	Valid   bool
	Message string
}

// Batch is the outcome of validating a whole task input.
type Batch struct {
	Valid  bool
	Errors map[string]string
}

// Input is the raw form input for one task.
type Input struct {
	Title    string
	Duration string
	DueDate  string
	Tag      string
}

// Field checks a single field's raw value against its rule.
// Unknown field names are treated as valid so callers can wire
// rule-free inputs through the same path.
func Field(name, raw string) Result {
	rule, ok := rules[name]
	if !ok {
		return Result{Valid: true}
	}

	value := raw
	if !rule.rawInput {
		value = strings.TrimSpace(raw)
	}

	if !rule.Pattern.MatchString(value) {
		return Result{Valid: false, Message: rule.Message}
	}
	if rule.Check != nil && !rule.Check(value) {
		return Result{Valid: false, Message: rule.Message}
	}
	return Result{Valid: true}
}

// Task runs every rule over the four fields plus the adjacent-duplicate
// word check on the title, collecting one message per field. When both
// title checks fail the duplicate-word message wins (last applied).
func Task(in Input) Batch {
	errors := make(map[string]string)

	checks := []struct {
		field string
		raw   string
	}{
		{FieldTitle, in.Title},
		{FieldDuration, in.Duration},
		{FieldDate, in.DueDate},
		{FieldTag, in.Tag},
	}
	for _, c := range checks {
		if r := Field(c.field, c.raw); !r.Valid {
			errors[c.field] = r.Message
		}
	}

	if HasAdjacentDuplicateWord(in.Title) {
		errors[FieldTitle] = DuplicateWordMessage
	}

	return Batch{Valid: len(errors) == 0, Errors: errors}
}

// HasAdjacentDuplicateWord reports whether the title contains two
// identical words in a row, case-insensitively. Non-adjacent repeats
// are allowed.
func HasAdjacentDuplicateWord(title string) bool {
	words := strings.Fields(title)
	for i := 1; i < len(words); i++ {
		if strings.EqualFold(words[i-1], words[i]) {
			return true
		}
	}
	return false
}

// isRealDate rejects shapes like 2025-02-30 that pass the regex but do
// not exist on the calendar.
func isRealDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
