package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("Expected no output below Warn level, got %q", buf.String())
	}

	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Errorf("Expected warn message in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[WARN]") {
		t.Errorf("Expected [WARN] tag in output, got %q", buf.String())
	}
}

func TestLoggerFormatted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DebugLevel)

	logger.Errorf("parse error at %d:%d: %s", 3, 14, "unterminated string")
	if !strings.Contains(buf.String(), "parse error at 3:14: unterminated string") {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestStandardLoggerLevel(t *testing.T) {
	old := GetLevel()
	defer SetLevel(old)

	SetLevel(DebugLevel)
	if GetLevel() != DebugLevel {
		t.Errorf("Expected DebugLevel, got %v", GetLevel())
	}
}
