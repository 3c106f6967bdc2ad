package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_DebugLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	var buf bytes.Buffer
	l := New(&buf, "text", false)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug suppressed, got %q", buf.String())
	}

	l = New(&buf, "text", true)
	l.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestNew_JSONFieldNames(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	var buf bytes.Buffer
	l := New(&buf, "json", false)
	l.WithField("op", "load").Info("done")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "done" {
		t.Errorf("expected message field, got %v", entry)
	}
	if entry["op"] != "load" {
		t.Errorf("expected op field, got %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Errorf("expected ts field, got %v", entry)
	}
}

func TestNew_LogLevelEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	l := New(&bytes.Buffer{}, "text", true)
	if l.GetLevel() != logrus.WarnLevel {
		t.Errorf("expected warn level, got %v", l.GetLevel())
	}
}
