package authclient

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap sugared logger to the Logger interface.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger creates a structured zap-backed Logger at the given
// level; unknown levels fall back to info.
func NewZapLogger(level string) (*ZapLogger, error) {
	parsed := zapcore.InfoLevel
	if err := parsed.Set(strings.ToLower(level)); err != nil {
		parsed = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(parsed),
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "message",
			LevelKey:   "level",
			TimeKey:    "ts",
			EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString(l.String())
			},
			EncodeTime: zapcore.ISO8601TimeEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{sugar: logger.Sugar()}, nil
}

// WrapZap adapts an existing zap logger.
func WrapZap(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: logger.Sugar()}
}

func (l *ZapLogger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

func (l *ZapLogger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *ZapLogger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *ZapLogger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}
