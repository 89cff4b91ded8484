// Package stats computes derived statistics over the task collection.
// Every function is pure: the wall clock is passed in by the caller so
// window and trend math is deterministic under test.
package stats

import (
	"time"

	"github.com/aylinsezer/campusplan/internal/task"
)

// TopTagNone is the sentinel reported when the collection is empty.
const TopTagNone = "no data"

// TrendDays is the length of the daily trend window.
const TrendDays = 7

const dateLayout = "2006-01-02"

// Point is one day of the trend: the calendar date, a short weekday
// label, and the number of tasks due exactly on that day.
type Point struct {
	Date    string
	Weekday string
	Count   int
}

// Stats is the derived summary over the whole collection.
// TotalHours and WeeklyHours are in hours (durations are stored in
// minutes); rendering to one decimal place is the caller's concern.
type Stats struct {
	Total       int
	TotalHours  float64
	TopTag      string
	RecentTasks int
	WeeklyHours float64
	Trend       []Point
}

// Calculate computes the summary in a single pass over tasks.
//
// The recent window is [now-7d, now], inclusive at both ends, compared
// by calendar value only. The top tag counts across ALL tasks; ties are
// broken by the first tag (in order of first occurrence) to reach the
// maximum under a left-to-right reduction. Trend counts match the
// stored due date string exactly.
func Calculate(tasks []task.Task, now time.Time) Stats {
	today := truncateToDay(now)
	windowStart := today.AddDate(0, 0, -TrendDays)

	var totalMinutes, weeklyMinutes float64
	recent := 0
	tagCounts := make(map[string]int)
	tagOrder := make([]string, 0)
	trendCounts := make(map[string]int)

	for _, t := range tasks {
		totalMinutes += t.Duration

		if _, seen := tagCounts[t.Tag]; !seen {
			tagOrder = append(tagOrder, t.Tag)
		}
		tagCounts[t.Tag]++

		if due, err := time.Parse(dateLayout, t.DueDate); err == nil {
			if !due.Before(windowStart) && !due.After(today) {
				recent++
				weeklyMinutes += t.Duration
			}
		}
		trendCounts[t.DueDate]++
	}

	topTag := TopTagNone
	best := 0
	for _, tag := range tagOrder {
		if tagCounts[tag] > best {
			best = tagCounts[tag]
			topTag = tag
		}
	}

	trend := make([]Point, 0, TrendDays)
	for i := TrendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		date := day.Format(dateLayout)
		trend = append(trend, Point{
			Date:    date,
			Weekday: day.Format("Mon"),
			Count:   trendCounts[date],
		})
	}

	return Stats{
		Total:       len(tasks),
		TotalHours:  totalMinutes / 60,
		TopTag:      topTag,
		RecentTasks: recent,
		WeeklyHours: weeklyMinutes / 60,
		Trend:       trend,
	}
}

// Cap is weekly-cap usage for the rendering layer.
type Cap struct {
	Percent   float64 // usage percentage, clamped to 100
	Over      bool
	Remaining float64 // hours left under the cap; negative when over
}

// CapUsage relates the week's hours to the configured cap in hours.
// A non-positive cap disables the gauge.
func CapUsage(weeklyHours, capHours float64) Cap {
	if capHours <= 0 {
		return Cap{}
	}
	pct := weeklyHours / capHours * 100
	if pct > 100 {
		pct = 100
	}
	return Cap{
		Percent:   pct,
		Over:      weeklyHours > capHours,
		Remaining: capHours - weeklyHours,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
