package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	Debug = false
	if got := New("warn", false).GetLevel(); got != logrus.WarnLevel {
		t.Fatalf("expected warn, got %v", got)
	}
	if got := New("bogus", true).GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if _, ok := New("info", true).Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected JSON formatter in production")
	}

	Debug = true
	defer func() { Debug = false }()
	if got := New("error", false).GetLevel(); got != logrus.DebugLevel {
		t.Fatalf("expected debug flag to win, got %v", got)
	}
}

func TestDebugfUsesConfiguredLogger(t *testing.T) {
	before := logrus.GetLevel()
	Debug = true
	defer func() { Debug = false }()

	log := New("info", true)
	var buf bytes.Buffer
	log.SetOutput(&buf)

	Debugf("backend timeout %s", "10s")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON entry, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "backend timeout 10s" || entry["level"] != "debug" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if got := logrus.GetLevel(); got != before {
		t.Fatalf("global level changed from %v to %v", before, got)
	}

	Debug = false
	buf.Reset()
	Debugf("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output without the debug flag, got %q", buf.String())
	}
}
