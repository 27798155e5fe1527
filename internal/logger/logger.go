// Package logger provides the process-wide structured logger. Output is JSON
// on stderr so it never mixes with redacted content or reports on stdout.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/censor/internal/config"
)

var (
	log         *zap.Logger
	atomicLevel zap.AtomicLevel
)

func init() {
	atomicLevel = zap.NewAtomicLevelAt(getLogLevel())
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		atomicLevel,
	)

	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func getLogLevel() zapcore.Level {
	levelStr := os.Getenv("CENSOR_LOG_LEVEL")
	if levelStr == "" {
		levelStr = config.DefaultLogLevel
	}
	return parseLogLevel(levelStr)
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

// Logger returns the underlying logger for packages that take a *zap.Logger.
func Logger() *zap.Logger {
	return log
}

// Replace swaps the logger and returns a func that restores the previous one.
func Replace(l *zap.Logger) func() {
	prev := log
	log = l
	return func() { log = prev }
}

func Sync() {
	_ = log.Sync()
}

func SetLevel(levelStr string) {
	atomicLevel.SetLevel(parseLogLevel(levelStr))
}

// Level returns the current level.
func Level() zapcore.Level {
	return atomicLevel.Level()
}

func parseLogLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
