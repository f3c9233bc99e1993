package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a new zap logger for the given environment. "production" logs
// JSON at info, "development" logs JSON at debug and anything else gets a
// colored console logger at debug.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		cfg := zap.NewDevelopmentConfig()
		cfg.Encoding = "json"
		return cfg.Build()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
}
