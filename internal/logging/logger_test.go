package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level    string
		logged   []string
		filtered []string
	}{
		{level: "trace", logged: []string{"trace message", "debug message", "info message"}},
		{level: "debug", logged: []string{"debug message", "info message"}, filtered: []string{"trace message"}},
		{level: "info", logged: []string{"info message"}, filtered: []string{"trace message", "debug message"}},
		{level: "warn", logged: []string{"warn message"}, filtered: []string{"info message"}},
		{level: "error", logged: []string{"error message"}, filtered: []string{"warn message"}},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tc.level, Output: &buf})

			logger.Trace().Msg("trace message")
			logger.Debug().Msg("debug message")
			logger.Info().Msg("info message")
			logger.Warn().Msg("warn message")
			logger.Error().Msg("error message")

			output := buf.String()
			for _, msg := range tc.logged {
				if !strings.Contains(output, msg) {
					t.Errorf("expected %q to be logged at %s level", msg, tc.level)
				}
			}
			for _, msg := range tc.filtered {
				if strings.Contains(output, msg) {
					t.Errorf("expected %q to NOT be logged at %s level", msg, tc.level)
				}
			}
		})
	}
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "verbose", Output: &buf})

	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Expected debug message to NOT be logged with invalid level")
	}
	if !strings.Contains(output, "info message") {
		t.Error("Expected info message to be logged with invalid level")
	}
}

func TestParseLevel(t *testing.T) {
	levels := []struct {
		name     string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tc := range levels {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseLevel(tc.name); got != tc.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.name, got, tc.expected)
			}
		})
	}
}

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Output: &buf}).With().Str("component", "gradle").Logger()

	logger.Info().Msg("appended")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["component"] != "gradle" {
		t.Errorf("component = %v, want gradle", entry["component"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("timestamp missing")
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("regular file reported as terminal")
	}
	if IsTerminal(nil) {
		t.Error("nil file reported as terminal")
	}
}
