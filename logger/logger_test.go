package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

// capture redirects the singleton to a buffer for one test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	l := GetLogger()
	var buf bytes.Buffer
	level := l.GetLevel()
	l.SetOutput(&buf)
	t.Cleanup(func() {
		l.SetOutput(os.Stdout)
		l.SetLevel(level)
		l.ExitFunc = nil
	})
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected a JSON log line, got %q: %v", buf.String(), err)
	}
	return entry
}

func TestInfo(t *testing.T) {
	buf := capture(t)
	GetLogger().SetLevel(logrus.InfoLevel)

	Info("Shutdown complete")
	entry := decode(t, buf)
	if entry["msg"] != "Shutdown complete" || entry["level"] != "info" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestErrorAttachesCause(t *testing.T) {
	buf := capture(t)

	Error(errors.New("boom"), "HTTP server failed")
	entry := decode(t, buf)
	if entry["error"] != "boom" || entry["level"] != "error" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestFatalExits(t *testing.T) {
	buf := capture(t)
	code := 0
	GetLogger().ExitFunc = func(c int) { code = c }

	Fatal(errors.New("bad config"), "Failed to load configuration")
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	entry := decode(t, buf)
	if entry["msg"] != "Failed to load configuration" || entry["error"] != "bad config" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestSetLevel(t *testing.T) {
	capture(t)

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}
	if GetLogger().GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug, got %s", GetLogger().GetLevel())
	}
	if err := SetLevel("loud"); err == nil {
		t.Errorf("Expected an error for an unknown level")
	}
	if GetLogger().GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected the level to be unchanged, got %s", GetLogger().GetLevel())
	}
}
