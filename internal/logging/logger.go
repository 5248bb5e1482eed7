package logging

import (
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]interface{}

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger = newLogger()
)

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.DisableStacktrace = true
	l, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLevel changes the minimum level ("debug", "info", "warn", "error").
// Unknown values keep the current level.
func SetLevel(name string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return
	}
	level.SetLevel(l)
}

// SetLogger replaces the underlying logger. Tests use it with zap.NewNop or an
// observer core.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// toZap converts fields in key order so output is stable.
func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

func output(lvl zapcore.Level, msg string, err error, fields Fields) {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	if ce := current().Check(lvl, msg); ce != nil {
		ce.Write(zf...)
	}
}

// Debug logs a diagnostic message with optional fields.
func Debug(msg string, fields Fields) {
	output(zapcore.DebugLevel, msg, nil, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output(zapcore.InfoLevel, msg, nil, fields)
}

func Warn(msg string, fields Fields) {
	output(zapcore.WarnLevel, msg, nil, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output(zapcore.ErrorLevel, msg, err, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output(zapcore.ErrorLevel, msg, err, fields)
	_ = current().Sync()
	os.Exit(1)
}

// Sync flushes buffered entries; call it before the process exits.
func Sync() {
	_ = current().Sync()
}
