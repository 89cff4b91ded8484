package validate

import "testing"

// BenchmarkField benchmarks single-field rule checks.
func BenchmarkField(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Field(FieldTitle, "Finish lab report for chemistry")
		Field(FieldDuration, "90.25")
		Field(FieldDate, "2025-10-20")
		Field(FieldTag, "exam-prep")
	}
}

// BenchmarkTask benchmarks the full batch over one input.
func BenchmarkTask(b *testing.B) {
	in := Input{
		Title:    "Finish lab report for chemistry",
		Duration: "90",
		DueDate:  "2025-10-22",
		Tag:      "coursework",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Task(in)
	}
}

// BenchmarkHasAdjacentDuplicateWord benchmarks the duplicate-word scan.
func BenchmarkHasAdjacentDuplicateWord(b *testing.B) {
	title := "review chapter three notes before the midterm exam"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		HasAdjacentDuplicateWord(title)
	}
}
