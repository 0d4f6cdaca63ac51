package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = "info"

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Init builds the process-wide JSON logger writing to outputs (stdout when none are given).
// Until Init is called every helper logs to a no-op core.
func Init(level string, outputs ...string) error {
	if len(outputs) == 0 {
		outputs = []string{"stdout"}
	}

	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		_ = lvl.UnmarshalText([]byte(defaultLevel))
	}

	cfg := zap.Config{
		Level:    lvl,
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "message",
			TimeKey:    "timestamp",
			LevelKey:   "severity",
			CallerKey:  "caller",
			EncodeTime: zapcore.RFC3339NanoTimeEncoder,
			EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString(strings.ToUpper(l.String()))
			},
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set replaces the global logger. Tests use it with zaptest/observer cores.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	global = l
	mu.Unlock()
}

// L returns the current global logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

func Error(msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	L().Error(msg, fields...)
}

func Sync() {
	_ = L().Sync()
}
