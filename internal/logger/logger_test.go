package logger

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap/zapcore"
)

// Feature: catalog-api, Property: configured level gates lower severities
func TestProperty_LevelGatesLowerSeverities(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("only entries at or above the configured level are enabled", prop.ForAll(
		func(env string, level string) bool {
			logger, err := New(env, level)
			if err != nil {
				t.Logf("FAIL: New(%q, %q) returned %v", env, level, err)
				return false
			}
			defer logger.Sync()

			configured, _ := zapcore.ParseLevel(level)
			for _, l := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
				if logger.Core().Enabled(l) != (l >= configured) {
					t.Logf("FAIL: level %s enabled=%v with configured %s", l, logger.Core().Enabled(l), configured)
					return false
				}
			}
			return true
		},
		gen.OneConstOf("production", "development"),
		gen.OneConstOf("debug", "info", "warn", "error"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("production", "loud"); err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}

func TestNew_DefaultLevels(t *testing.T) {
	prod, err := New("production", "")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if prod.Core().Enabled(zapcore.DebugLevel) {
		t.Error("production logger should not enable debug by default")
	}

	dev, err := New("development", "")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if !dev.Core().Enabled(zapcore.DebugLevel) {
		t.Error("development logger should enable debug by default")
	}
}
