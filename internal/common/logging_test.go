package common

import (
	"path/filepath"
	"testing"
)

func TestNewLoggerFromConfig_Defaults(t *testing.T) {
	logger := NewLoggerFromConfig(LoggingConfig{})
	if logger == nil {
		t.Fatal("NewLoggerFromConfig returned nil")
	}
	// Must not panic with the default console writer
	logger.Debug().Str("key", "value").Msg("debug line")
	logger.Info().Int("count", 1).Msg("info line")
}

func TestNewLoggerFromConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.log")
	logger := NewLoggerFromConfig(LoggingConfig{
		Level:    "debug",
		Outputs:  []string{"file"},
		FilePath: path,
	})
	if logger == nil {
		t.Fatal("NewLoggerFromConfig returned nil")
	}
	logger.Info().Str("location", "Paris").Msg("file line")
}

func TestNewSilentLogger_DoesNotPanic(t *testing.T) {
	logger := NewSilentLogger()
	logger.Info().Str("key", "value").Msg("discarded")
	logger.Error().Err(nil).Msg("discarded")
}

func TestWithCorrelationId_ReturnsChild(t *testing.T) {
	parent := NewSilentLogger()
	child := parent.WithCorrelationId("call-1")
	if child == nil {
		t.Fatal("WithCorrelationId returned nil")
	}
	if child == parent {
		t.Error("expected a new logger instance")
	}
	child.Info().Msg("tagged")
}
