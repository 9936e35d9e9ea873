package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WithValidConfig(t *testing.T) {
	// A regular file where a log directory is expected makes MkdirAll fail
	// even when the tests run as root.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("failed to create blocker file: %v", err)
	}

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid json config stdout",
			config:  Config{Level: "debug", Format: "json", Output: "stdout"},
			wantErr: false,
		},
		{
			name:    "valid text config stderr",
			config:  Config{Level: "info", Format: "text", Output: "stderr"},
			wantErr: false,
		},
		{
			name:    "empty output falls back to stdout",
			config:  Config{Level: "info", Format: "text"},
			wantErr: false,
		},
		{
			name:    "invalid level",
			config:  Config{Level: "invalid", Format: "json", Output: "stdout"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  Config{Level: "debug", Format: "xml", Output: "stdout"},
			wantErr: true,
		},
		{
			name:    "invalid output path",
			config:  Config{Level: "debug", Format: "json", Output: filepath.Join(blocker, "logs", "file.log")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger without error")
			}
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "telecap.log")

	log, err := New(Config{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Info("written to file")
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := createTestLogger(t, buf, "json")

	logger.Debug("debug message", Field{Key: "test", Value: "value"})
	logger.Info("info message")
	logger.Warn("warn message", Field{Key: "key", Value: "value"})
	logger.Error("error message", &testError{msg: "boom"}, Field{Key: "path", Value: "/tmp/x.ndjson"})

	output := buf.String()
	for _, want := range []string{"debug message", "info message", "warn message", "error message", "boom", "/tmp/x.ndjson"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected log to contain %q, got: %s", want, output)
		}
	}
}

func TestLogger_WarnCtx(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := createTestLogger(t, buf, "json")

	logger.WarnCtx(context.Background(), "test warn with context", Field{Key: "key", Value: "value"})

	if !strings.Contains(buf.String(), "test warn with context") {
		t.Errorf("Expected log to contain message, got: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := createTestLogger(t, buf, "json")

	logger.With(
		Field{Key: "sweep_id", Value: "abc"},
		Field{Key: "dir", Value: "/var/telemetry"},
	).Info("message with fields")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry["sweep_id"] != "abc" {
		t.Errorf("Expected sweep_id=abc, got: %v", entry["sweep_id"])
	}
	if entry["dir"] != "/var/telemetry" {
		t.Errorf("Expected dir=/var/telemetry, got: %v", entry["dir"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
		wantError bool
	}{
		{"debug level shows all", "debug", true, true, true, true},
		{"info level skips debug", "info", false, true, true, true},
		{"warn level skips debug and info", "warn", false, false, true, true},
		{"error level shows only errors", "error", false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := NewWithWriter(Config{Level: tt.level, Format: "json"}, buf)
			if err != nil {
				t.Fatalf("NewWithWriter() error = %v", err)
			}

			logger.Debug("debug message")
			logger.Info("info message")
			logger.Warn("warn message")
			logger.Error("error message", nil)

			output := buf.String()
			if got := strings.Contains(output, "debug message"); got != tt.wantDebug {
				t.Errorf("Expected debug=%v, got %v", tt.wantDebug, got)
			}
			if got := strings.Contains(output, "info message"); got != tt.wantInfo {
				t.Errorf("Expected info=%v, got %v", tt.wantInfo, got)
			}
			if got := strings.Contains(output, "warn message"); got != tt.wantWarn {
				t.Errorf("Expected warn=%v, got %v", tt.wantWarn, got)
			}
			if got := strings.Contains(output, "error message"); got != tt.wantError {
				t.Errorf("Expected error=%v, got %v", tt.wantError, got)
			}

			level, _ := ParseLevel(tt.level)
			if !logger.Enabled(level) {
				t.Errorf("Expected level %s to be enabled", tt.level)
			}
		})
	}
}

func TestLogger_TextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := createTestLogger(t, buf, "text")

	logger.Info("test message", Field{Key: "files_deleted", Value: 3})

	output := buf.String()
	if !strings.Contains(output, "test message") || !strings.Contains(output, "files_deleted=3") {
		t.Errorf("Unexpected text output: %s", output)
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log == nil {
		t.Fatal("Discard() returned nil")
	}
	log.Error("never shown", &testError{msg: "ignored"})
	if log.Enabled(slog.LevelDebug) {
		t.Error("Discard() logger should not enable debug")
	}
}

func createTestLogger(t *testing.T, buf *bytes.Buffer, format string) *Logger {
	t.Helper()

	logger, err := NewWithWriter(Config{Level: "debug", Format: format}, buf)
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return logger
}

// testError реализует интерфейс error для тестов
type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}
