package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every log entry
const ServiceName = "storefront"

// New creates a structured logger writing to stdout
func New(env string) (*zap.Logger, error) {
	return NewWithOutput(env, zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr)), nil
}

// NewWithOutput creates a logger for env writing entries to out and internal
// logger errors to errOut. Production logs JSON at info level; any other env
// logs coloured console output at debug level.
func NewWithOutput(env string, out, errOut zapcore.WriteSyncer) *zap.Logger {
	var (
		encoder zapcore.Encoder
		level   zapcore.Level
	)

	if env == "production" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.MessageKey = "message"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
		level = zapcore.InfoLevel
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
		level = zapcore.DebugLevel
	}

	return zap.New(
		zapcore.NewCore(encoder, out, level),
		zap.ErrorOutput(errOut),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service", ServiceName), zap.String("env", env)),
	)
}
