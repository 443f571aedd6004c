package logging

import (
	"log/slog"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    *string
		expected slog.Level
	}{
		{nil, slog.LevelInfo},
		{ptr("DEBUG"), slog.LevelDebug},
		{ptr("debug"), slog.LevelDebug},
		{ptr("WARN"), slog.LevelWarn},
		{ptr("ERROR"), slog.LevelError},
		{ptr("bogus"), slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := LevelFromString(tt.input); got != tt.expected {
			t.Errorf("LevelFromString(%v) expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func ptr(s string) *string {
	return &s
}
