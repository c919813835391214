// Package logger builds the zap loggers shared by the library entry points and the CLI.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv overrides the log level of loggers built by New (debug|info|warn|error).
const LevelEnv = "ASTCDYN_LOG_LEVEL"

// New returns a JSON logger writing to stderr, tagged with the service name.
//
// If the logger cannot be built a no-op logger is returned; diagnostics must never make a
// compression call fail.
func New(service string) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if v := strings.TrimSpace(os.Getenv(LevelEnv)); v != "" {
		if l, err := zapcore.ParseLevel(v); err == nil {
			level = l
		}
	}
	return NewAtLevel(service, level)
}

// NewAtLevel is New with an explicit minimum level.
func NewAtLevel(service string, level zapcore.Level) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]any{"service": service}

	log, err := cfg.Build()
	if err != nil {
		return Nop()
	}
	return log.Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
