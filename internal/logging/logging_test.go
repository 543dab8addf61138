package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	quiet := NewLogger(false)
	if quiet.Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Error("non-verbose logger should not emit info")
	}
	if !quiet.Desugar().Core().Enabled(zapcore.WarnLevel) {
		t.Error("non-verbose logger should emit warnings")
	}

	verbose := NewLogger(true)
	if !verbose.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose logger should emit debug")
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Infow("discarded", "key", "value")
	l.Sync()
}
