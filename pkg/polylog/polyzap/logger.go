// Package polyzap implements polylog.Logger on top of go.uber.org/zap.
package polyzap

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

var _ polylog.Logger = (*zapLogger)(nil)

type zapLogger struct {
	level       zapcore.Level
	writeSyncer zapcore.WriteSyncer
	logger      *zap.Logger
}

// NewLogger returns a zap-backed polylog.Logger writing JSON to os.Stderr at
// info level unless overridden by opts.
func NewLogger(opts ...polylog.LoggerOption) polylog.Logger {
	za := &zapLogger{level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(za)
	}
	if za.writeSyncer == nil {
		za.writeSyncer = zapcore.AddSync(os.Stderr)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), za.writeSyncer, za.level)
	za.logger = zap.New(core)

	return za
}

func (za *zapLogger) Debug() polylog.Event { return newEvent(za.logger, zapcore.DebugLevel) }
func (za *zapLogger) Info() polylog.Event  { return newEvent(za.logger, zapcore.InfoLevel) }
func (za *zapLogger) Warn() polylog.Event  { return newEvent(za.logger, zapcore.WarnLevel) }
func (za *zapLogger) Error() polylog.Event { return newEvent(za.logger, zapcore.ErrorLevel) }

func (za *zapLogger) WithLevel(level polylog.Level) polylog.Event {
	return newEvent(za.logger, zapcore.Level(level.Int()))
}

func (za *zapLogger) With(keyVals ...any) polylog.Logger {
	fields := make([]zap.Field, 0, len(keyVals)/2)
	for i := 0; i+1 < len(keyVals); i += 2 {
		fields = append(fields, zap.Any(fmt.Sprint(keyVals[i]), keyVals[i+1]))
	}
	return &zapLogger{
		level:       za.level,
		writeSyncer: za.writeSyncer,
		logger:      za.logger.With(fields...),
	}
}

func (za *zapLogger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, polylog.CtxKey, za)
}

func (za *zapLogger) Write(p []byte) (int, error) {
	za.logger.Log(za.level, string(p))
	return len(p), nil
}
