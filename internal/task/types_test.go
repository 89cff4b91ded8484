package task

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)

func TestLoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "plan.json")

	original := NewFile()
	original.AddTask(Task{
		Title:    "Finish lab report",
		Duration: 90,
		DueDate:  "2025-10-22",
		Tag:      "coursework",
	}, testNow)

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion: got %d, want %d", loaded.SchemaVersion, SchemaVersion)
	}
	if len(loaded.Tasks) != 1 {
		t.Fatalf("Tasks count: got %d, want 1", len(loaded.Tasks))
	}
	got := loaded.Tasks[0]
	if got.ID != "T001" {
		t.Errorf("Task ID: got %s, want T001", got.ID)
	}
	if got.Title != "Finish lab report" || got.Duration != 90 || got.DueDate != "2025-10-22" {
		t.Errorf("Task fields did not round-trip: %+v", got)
	}
	if !got.CreatedAt.Equal(testNow) || !got.UpdatedAt.Equal(testNow) {
		t.Errorf("timestamps did not round-trip: %+v", got)
	}

	// Saved file ends with a newline.
	data, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("saved plan file should end with a newline")
	}
}

func TestLoadMissingFileYieldsEmptyPlan(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}
	if f.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion: got %d, want %d", f.SchemaVersion, SchemaVersion)
	}
	if len(f.Tasks) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(f.Tasks))
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error for corrupt plan file")
	}
}

func TestAddTaskAssignsIDAndTimestamps(t *testing.T) {
	f := NewFile()

	first := f.AddTask(Task{Title: "one", Duration: 30, DueDate: "2025-10-21", Tag: "a"}, testNow)
	second := f.AddTask(Task{Title: "two", Duration: 30, DueDate: "2025-10-21", Tag: "a"}, testNow)

	if first.ID != "T001" || second.ID != "T002" {
		t.Errorf("IDs: got %s, %s, want T001, T002", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(testNow) || !first.UpdatedAt.Equal(testNow) {
		t.Errorf("timestamps not assigned: %+v", first)
	}
}

func TestNextIDSkipsDeleted(t *testing.T) {
	f := NewFile()
	f.AddTask(Task{Title: "one"}, testNow)
	f.AddTask(Task{Title: "two"}, testNow)
	f.AddTask(Task{Title: "three"}, testNow)
	if err := f.DeleteTask("T002"); err != nil {
		t.Fatal(err)
	}

	// T003 still exists, so the next ID must not reuse T002.
	if got := f.NextID(); got != "T004" {
		t.Errorf("NextID = %s, want T004", got)
	}
}

func TestUpdateTask(t *testing.T) {
	f := NewFile()
	f.AddTask(Task{Title: "one", Duration: 30, DueDate: "2025-10-21", Tag: "a"}, testNow)

	later := testNow.Add(2 * time.Hour)
	err := f.UpdateTask("T001", later, func(t *Task) {
		t.Title = "renamed"
		t.ID = "T999" // must not stick
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	got := f.GetTask("T001")
	if got == nil {
		t.Fatal("task lost its ID after update")
	}
	if got.Title != "renamed" {
		t.Errorf("Title = %s, want renamed", got.Title)
	}
	if !got.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, later)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt changed on update: %v", got.CreatedAt)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	f := NewFile()
	if err := f.UpdateTask("T042", testNow, func(*Task) {}); err == nil {
		t.Error("expected error for unknown ID")
	}
}

func TestDeleteTask(t *testing.T) {
	f := NewFile()
	f.AddTask(Task{Title: "one"}, testNow)
	f.AddTask(Task{Title: "two"}, testNow)

	if err := f.DeleteTask("T001"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if len(f.Tasks) != 1 || f.Tasks[0].ID != "T002" {
		t.Errorf("unexpected collection after delete: %+v", f.Tasks)
	}
	if err := f.DeleteTask("T001"); err == nil {
		t.Error("expected error deleting a missing task")
	}
}

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		id1, id2 string
		want     bool
	}{
		{"T2", "T10", true}, // numeric-aware, not lexicographic
		{"T10", "T2", false},
		{"T001", "T002", true},
		{"abc", "abd", true}, // falls back to lexicographic
		{"T1", "T1", false},
	}
	for _, tt := range tests {
		if got := CompareIDs(tt.id1, tt.id2); got != tt.want {
			t.Errorf("CompareIDs(%s, %s) = %v, want %v", tt.id1, tt.id2, got, tt.want)
		}
	}
}

func TestSortTasks(t *testing.T) {
	mk := func(id, title, due string, dur float64) Task {
		return Task{ID: id, Title: title, DueDate: due, Duration: dur}
	}
	base := []Task{
		mk("T010", "banana", "2025-10-25", 30),
		mk("T002", "Apple", "2025-10-21", 90),
		mk("T001", "cherry", "2025-10-21", 60),
	}

	t.Run("by due date, ID breaks ties", func(t *testing.T) {
		f := &File{Tasks: append([]Task(nil), base...)}
		f.SortTasks(SortByDue, false)
		want := []string{"T001", "T002", "T010"}
		for i, id := range want {
			if f.Tasks[i].ID != id {
				t.Errorf("position %d: got %s, want %s", i, f.Tasks[i].ID, id)
			}
		}
	})

	t.Run("by title, case-insensitive", func(t *testing.T) {
		f := &File{Tasks: append([]Task(nil), base...)}
		f.SortTasks(SortByTitle, false)
		want := []string{"T002", "T010", "T001"}
		for i, id := range want {
			if f.Tasks[i].ID != id {
				t.Errorf("position %d: got %s, want %s", i, f.Tasks[i].ID, id)
			}
		}
	})

	t.Run("by duration descending", func(t *testing.T) {
		f := &File{Tasks: append([]Task(nil), base...)}
		f.SortTasks(SortByDuration, true)
		if f.Tasks[0].ID != "T002" || f.Tasks[2].ID != "T010" {
			t.Errorf("unexpected order: %v", f.Tasks)
		}
	})

	t.Run("by numeric-aware ID", func(t *testing.T) {
		f := &File{Tasks: []Task{mk("T10", "a", "", 0), mk("T2", "b", "", 0)}}
		f.SortTasks(SortByID, false)
		if f.Tasks[0].ID != "T2" {
			t.Errorf("T2 should sort before T10, got %v", f.Tasks)
		}
	})
}
