// Package logging builds the application logger: console output plus
// a rotated file core.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a sugared logger writing to stdout and a rotated file
// under dir. The returned closer flushes buffered entries.
func New(dir, level string) (*zap.SugaredLogger, func(), error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	fileLevel := zap.InfoLevel
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		fileLevel = parsed
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(dir, "howlongsince.log"),
			MaxSize:    20, // MB
			MaxBackups: 5,
			MaxAge:     90, // days
		}),
		fileLevel,
	)

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		fileLevel,
	)

	logger := zap.New(zapcore.NewTee(fileCore, consoleCore), zap.AddCaller())
	sugar := logger.Sugar()
	return sugar, func() { _ = logger.Sync() }, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
