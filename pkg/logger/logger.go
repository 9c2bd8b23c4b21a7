// Package logger wraps zap behind a small global accessor so every component
// logs through the same configured instance.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *Logger

// Logger wraps zap.SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// Init initializes the global logger. In production the encoder is JSON;
// in development it is the colored console encoder.
func Init(level string, env string) error {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return err
	}

	globalLogger = &Logger{SugaredLogger: logger.Sugar()}
	return nil
}

// Get returns the global logger, falling back to a development logger if
// Init was never called (e.g. in tests).
func Get() *Logger {
	if globalLogger == nil {
		logger, _ := zap.NewDevelopment()
		globalLogger = &Logger{SugaredLogger: logger.Sugar()}
	}
	return globalLogger
}

// With creates a child logger with additional fields.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...)}
}

// Sync flushes any buffered log entries.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.SugaredLogger.Sync()
	}
}
