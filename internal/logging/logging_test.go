package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.in); got != tt.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	logger.Info("plan saved", "tasks", 3)
	out := buf.String()
	if !strings.Contains(out, "plan saved") {
		t.Errorf("log output missing message: %q", out)
	}
	if !strings.Contains(out, "tasks") {
		t.Errorf("log output missing key: %q", out)
	}

	buf.Reset()
	logger.Debug("verbose detail")
	if !strings.Contains(buf.String(), "verbose detail") {
		t.Error("test logger should emit debug lines")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Level != log.InfoLevel {
		t.Errorf("Level = %v, want info", opts.Level)
	}
	if opts.Prefix != "campusplan" {
		t.Errorf("Prefix = %q, want campusplan", opts.Prefix)
	}
}
