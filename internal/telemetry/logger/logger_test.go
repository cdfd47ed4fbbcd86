package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Info("server started", "addr", "127.0.0.1:7379")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "server started" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["addr"] != "127.0.0.1:7379" {
		t.Errorf("addr = %v", entry["addr"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "text", Output: &buf})

	log.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "json", Output: &buf})

	log.Debug("drop me")
	log.Info("drop me too")
	if buf.Len() != 0 {
		t.Errorf("below-level records were emitted: %s", buf.String())
	}

	log.Warn("keep me")
	if buf.Len() == 0 {
		t.Error("warn record was filtered")
	}
}

func TestSetLevel_Dynamic(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Debug("filtered")
	if buf.Len() != 0 {
		t.Fatal("debug emitted at info level")
	}

	SetLevel("debug")
	defer SetLevel("info")

	log.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug filtered after SetLevel(debug)")
	}
	if Level() != "debug" {
		t.Errorf("Level() = %q, want debug", Level())
	}
}
