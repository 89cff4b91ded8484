package search

import (
	"testing"

	"github.com/aylinsezer/campusplan/internal/task"
)

func TestCompile(t *testing.T) {
	t.Run("empty pattern means no filter", func(t *testing.T) {
		if re := Compile("", false); re != nil {
			t.Errorf("Compile(\"\") = %v, want nil", re)
		}
		if re := Compile("   ", false); re != nil {
			t.Errorf("Compile of blank pattern = %v, want nil", re)
		}
	})

	t.Run("syntax error degrades to nil", func(t *testing.T) {
		if re := Compile("[unclosed", false); re != nil {
			t.Errorf("Compile of bad pattern = %v, want nil", re)
		}
	})

	t.Run("case-insensitive flag", func(t *testing.T) {
		re := Compile("EXAM", true)
		if re == nil {
			t.Fatal("expected a compiled pattern")
		}
		if !re.MatchString("midterm exam") {
			t.Error("case-insensitive pattern should match lowercase text")
		}
	})
}

func TestHighlight(t *testing.T) {
	t.Run("escapes then marks", func(t *testing.T) {
		re := Compile("Jerry", false)
		got := Highlight(`Tom & Jerry's <show>`, re)
		want := `Tom &amp; <mark>Jerry</mark>&#39;s &lt;show&gt;`
		if got != want {
			t.Errorf("Highlight = %q, want %q", got, want)
		}
	})

	t.Run("all five characters escaped", func(t *testing.T) {
		re := Compile("x", false)
		got := Highlight(`&<>"'x`, re)
		want := `&amp;&lt;&gt;&quot;&#39;<mark>x</mark>`
		if got != want {
			t.Errorf("Highlight = %q, want %q", got, want)
		}
	})

	t.Run("nil pattern returns text unescaped", func(t *testing.T) {
		// Preserved quirk: without a pattern the text passes through raw.
		got := Highlight(`a<b & "c"`, nil)
		if got != `a<b & "c"` {
			t.Errorf("Highlight with nil pattern = %q, want input unchanged", got)
		}
	})

	t.Run("empty text returns empty", func(t *testing.T) {
		re := Compile("x", false)
		if got := Highlight("", re); got != "" {
			t.Errorf("Highlight(\"\") = %q, want \"\"", got)
		}
	})
}

func TestFilter(t *testing.T) {
	tasks := []task.Task{
		{ID: "T001", Title: "Finish lab report", Tag: "coursework"},
		{ID: "T002", Title: "Buy groceries", Tag: "errands"},
		{ID: "T003", Title: "Study for midterm", Tag: "exam-prep"},
	}

	t.Run("nil pattern filters nothing", func(t *testing.T) {
		got := Filter(tasks, nil)
		if len(got) != len(tasks) {
			t.Errorf("Filter with nil pattern returned %d tasks, want %d", len(got), len(tasks))
		}
	})

	t.Run("matches title", func(t *testing.T) {
		got := Filter(tasks, Compile("^Finish", false))
		if len(got) != 1 || got[0].ID != "T001" {
			t.Errorf("Filter = %v, want [T001]", got)
		}
	})

	t.Run("matches tag", func(t *testing.T) {
		got := Filter(tasks, Compile("exam", false))
		if len(got) != 1 || got[0].ID != "T003" {
			t.Errorf("Filter = %v, want [T003]", got)
		}
	})

	t.Run("no matches yields empty", func(t *testing.T) {
		got := Filter(tasks, Compile("zzz", false))
		if len(got) != 0 {
			t.Errorf("Filter = %v, want empty", got)
		}
	})
}
