package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger_Level(t *testing.T) {
	t.Setenv(EnvJSON, "")
	var buf bytes.Buffer
	log := NewLogger("imgcrypt", "warn", &buf)

	log.Debug("hidden")
	log.Warn("shown", "path", "a.png")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "path=a.png") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	t.Setenv(EnvJSON, "1")
	var buf bytes.Buffer
	NewLogger("imgcrypt", "info", &buf).Info("done", "images", 3)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not JSON: %q: %v", buf.String(), err)
	}
	if line["@message"] != "done" {
		t.Errorf("message: got %v", line["@message"])
	}
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv(EnvLevel, "")
	if got := GetLogLevel(""); got != "warn" {
		t.Errorf("default: got %q", got)
	}
	t.Setenv(EnvLevel, "info")
	if got := GetLogLevel(""); got != "info" {
		t.Errorf("env: got %q", got)
	}
	if got := GetLogLevel("debug"); got != "debug" {
		t.Errorf("explicit: got %q", got)
	}
}
