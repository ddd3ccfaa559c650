package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/metaballs/internal/config"
	"go.uber.org/zap"
)

func TestGetBeforeInitializeIsNop(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	l := Get()
	if l == nil {
		t.Fatal("Get returned nil")
	}
	l.Info("dropped")
}

func TestInitializeWriterJSON(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var buf bytes.Buffer
	InitializeWriter(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	Get().Named("sim").Info("mode changed", zap.String("mode", "contour"))

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("not json: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "mode changed" || entry["mode"] != "contour" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["logger"] != "metaballs.sim" {
		t.Errorf("logger name = %v", entry["logger"])
	}
}

func TestLevelFiltering(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var buf bytes.Buffer
	InitializeWriter(config.LogConfig{Level: "warn", Format: "console"}, &buf)
	Get().Info("hidden")
	Get().Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("level filter not applied: %q", out)
	}
}

func TestInitializeOnce(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var first, second bytes.Buffer
	InitializeWriter(config.LogConfig{Level: "info"}, &first)
	InitializeWriter(config.LogConfig{Level: "info"}, &second)
	Get().Info("hello")

	if first.Len() == 0 || second.Len() != 0 {
		t.Errorf("second Initialize should be ignored: first=%d second=%d", first.Len(), second.Len())
	}
}

func TestInitializeFile(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	path := filepath.Join(t.TempDir(), "metaballs.log")
	InitializeFile(config.LogConfig{Level: "info", MaxSize: 1}, path)
	Get().Info("to file")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing entry: %q", data)
	}
}
