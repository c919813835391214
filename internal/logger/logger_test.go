package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewAtLevel(t *testing.T) {
	log := NewAtLevel("test", zapcore.WarnLevel)
	require.NotNil(t, log)
	assert.False(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Desugar().Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_LevelFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "debug")
	log := New("test")
	assert.True(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))

	t.Setenv(LevelEnv, "bogus")
	log = New("test")
	assert.False(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Infow("discarded", "k", "v")
	assert.False(t, log.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
