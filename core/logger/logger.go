package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger

func init() {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	log = l.Sugar()
}

// normalize lets callers pass either key/value pairs or a single error.
func normalize(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{"error", err}
		}
	}
	if len(args)%2 != 0 {
		args = append(args, "(missing)")
	}
	return args
}

func Info(msg string, args ...any) {
	log.Infow(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warnw(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Errorw(msg, normalize(args)...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}
