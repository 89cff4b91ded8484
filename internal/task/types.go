// Package task parses, validates, and updates the plan file.
package task

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SchemaVersion is the current plan file format version.
const SchemaVersion = 1

// idSortKey extracts the numeric value from a task ID for sorting.
// For IDs like "T001", "T2", "T10", it returns 1, 2, 10 respectively.
// If the ID doesn't contain a number, it returns -1.
func idSortKey(id string) int {
	i := 0
	for i < len(id) && (id[i] < '0' || id[i] > '9') {
		i++
	}
	if i == len(id) {
		return -1
	}
	num, err := strconv.Atoi(id[i:])
	if err != nil {
		return -1
	}
	return num
}

// CompareIDs returns true if id1 should come before id2 in numeric-aware ordering.
// If both IDs have numeric parts, compares numerically. Otherwise falls back to
// lexicographic comparison.
func CompareIDs(id1, id2 string) bool {
	k1 := idSortKey(id1)
	k2 := idSortKey(id2)
	if k1 >= 0 && k2 >= 0 {
		return k1 < k2
	}
	return id1 < id2
}

// Task represents a single planned activity. Duration is in minutes.
// DueDate is a calendar date in YYYY-MM-DD form; it is kept as a string
// because day-level comparisons in the stats layer are done by calendar
// value, never time of day.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Duration  float64   `json:"duration"`
	DueDate   string    `json:"dueDate"`
	Tag       string    `json:"tag"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// File represents the plan file structure.
type File struct {
	SchemaVersion int    `json:"schema_version"`
	Tasks         []Task `json:"tasks"`
}

// NewFile returns an empty plan file at the current schema version.
func NewFile() *File {
	return &File{
		SchemaVersion: SchemaVersion,
		Tasks:         []Task{},
	}
}

// Load reads and parses a plan file from path. A missing file is not an
// error; it yields an empty collection so first runs work without setup.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewFile(), nil
		}
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse plan file: %w", err)
	}
	if f.Tasks == nil {
		f.Tasks = []Task{}
	}

	return &f, nil
}

// Save writes the plan file to path with 2-space indentation.
func (f *File) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write plan file: %w", err)
	}

	return nil
}

// GetTask returns a task by ID, or nil if not found.
func (f *File) GetTask(id string) *Task {
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			return &f.Tasks[i]
		}
	}
	return nil
}

// NextID returns the next unused sequential ID ("T001", "T002", ...).
// It scans the existing collection so IDs stay unique even after deletes.
func (f *File) NextID() string {
	max := 0
	for i := range f.Tasks {
		if k := idSortKey(f.Tasks[i].ID); k > max {
			max = k
		}
	}
	return fmt.Sprintf("T%03d", max+1)
}

// AddTask appends a new task, assigning its ID and timestamps.
// The assigned task is returned.
func (f *File) AddTask(t Task, now time.Time) Task {
	t.ID = f.NextID()
	t.CreatedAt = now.UTC()
	t.UpdatedAt = now.UTC()
	f.Tasks = append(f.Tasks, t)
	return t
}

// UpdateTask updates an existing task by ID and refreshes updated_at.
// The updater must not change the ID; any change it makes is reverted.
func (f *File) UpdateTask(id string, now time.Time, updater func(*Task)) error {
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			updater(&f.Tasks[i])
			f.Tasks[i].ID = id
			f.Tasks[i].UpdatedAt = now.UTC()
			return nil
		}
	}
	return fmt.Errorf("task %q not found", id)
}

// DeleteTask removes a task by ID.
func (f *File) DeleteTask(id string) error {
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			f.Tasks = append(f.Tasks[:i], f.Tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task %q not found", id)
}

// Sort fields accepted by SortTasks.
const (
	SortByID       = "id"
	SortByTitle    = "title"
	SortByDuration = "duration"
	SortByDue      = "due"
)

// SortTasks sorts the collection in place by the given field.
// Unknown fields sort by ID. The sort is stable so equal keys keep
// their insertion order.
func (f *File) SortTasks(field string, desc bool) {
	less := func(a, b *Task) bool {
		switch field {
		case SortByTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortByDuration:
			return a.Duration < b.Duration
		case SortByDue:
			if a.DueDate != b.DueDate {
				return a.DueDate < b.DueDate
			}
			return CompareIDs(a.ID, b.ID)
		default:
			return CompareIDs(a.ID, b.ID)
		}
	}
	sort.SliceStable(f.Tasks, func(i, j int) bool {
		if desc {
			return less(&f.Tasks[j], &f.Tasks[i])
		}
		return less(&f.Tasks[i], &f.Tasks[j])
	})
}
