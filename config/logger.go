package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger instance
var Log *zap.Logger

// InitLogger sets up the logger for the given environment. Production gets
// JSON output with ISO8601 timestamps; everything else gets the colored
// development encoder.
func InitLogger(env string) *zap.Logger {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	Log = logger
	return Log
}

// GetLogger returns the global logger, falling back to a no-op logger so
// callers never have to nil-check (tests rarely initialize logging)
func GetLogger() *zap.Logger {
	if Log == nil {
		Log = zap.NewNop()
	}
	return Log
}
