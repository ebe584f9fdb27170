package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewForEachEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", ""} {
		log, err := New(env)
		if err != nil {
			t.Fatalf("env %q: %v", env, err)
		}
		if log == nil {
			t.Fatalf("env %q: nil logger", env)
		}
		log.Sync()
	}
}

func TestProductionEntriesAreStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	encoderConfig := zap.NewProductionEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	log := zap.New(core)

	log.Info("Upstream call completed", zap.String("path", "/product/get"), zap.Int("status", 200))
	log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry["msg"] != "Upstream call completed" {
		t.Errorf("unexpected message %v", entry["msg"])
	}
	if entry["path"] != "/product/get" {
		t.Errorf("structured field missing, got %v", entry["path"])
	}
	if _, ok := entry["level"]; !ok {
		t.Error("level field missing")
	}
}
