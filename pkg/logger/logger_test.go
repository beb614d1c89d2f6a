package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_WithAddsContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewFromZap(zap.New(core)).With("component", "sync")

	log.Warn("sink failed", "kind", "flight", "key", "IR712")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "sink failed", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, map[string]interface{}{
		"component": "sync",
		"kind":      "flight",
		"key":       "IR712",
	}, entries[0].ContextMap())
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	log := NewLogger("verbose")
	assert.False(t, log.logger.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.logger.Desugar().Core().Enabled(zapcore.InfoLevel))
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().With("a", 1).Error("ignored")
	})
}
