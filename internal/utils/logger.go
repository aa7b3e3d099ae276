package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelError LogLevel = "error"
)

// Logger is a printf-style front for zap. Every method takes an optional
// request id which is attached as the "reqid" field.
type Logger struct {
	level      LogLevel
	zl         *zap.Logger
	RawBodyLog bool
}

func NewLogger(level string, rawBodyLog bool) *Logger {
	logLevel := parseLogLevel(level)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	minLevel := zapLevel(logLevel)
	// errors go to stderr, everything else to stdout
	stdout := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l < zapcore.ErrorLevel
	})
	stderr := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), stdout),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), stderr),
	)

	return newLoggerWithCore(core, logLevel, rawBodyLog)
}

func newLoggerWithCore(core zapcore.Core, level LogLevel, rawBodyLog bool) *Logger {
	return &Logger{
		level:      level,
		zl:         zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		RawBodyLog: rawBodyLog,
	}
}

func NewDiscardLogger() *Logger {
	return &Logger{level: LevelInfo, zl: zap.NewNop()}
}

func parseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) with(reqID *string) *zap.Logger {
	if reqID == nil || *reqID == "" {
		return l.zl
	}
	return l.zl.With(zap.String("reqid", *reqID))
}

func (l *Logger) Info(reqID *string, format string, v ...any) {
	l.with(reqID).Info(fmt.Sprintf(format, v...))
}

func (l *Logger) Error(reqID *string, format string, v ...any) {
	l.with(reqID).Error(fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(reqID *string, format string, v ...any) {
	if l.level != LevelDebug {
		return
	}
	l.with(reqID).Debug(fmt.Sprintf(format, v...))
}

func (l *Logger) Fatal(v ...any) {
	l.zl.Fatal(fmt.Sprint(v...))
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *Logger) Sync() {
	_ = l.zl.Sync()
}
