package polyzap

import (
	"io"

	"go.uber.org/zap/zapcore"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

func WithOutput(output io.Writer) polylog.LoggerOption {
	return func(logger polylog.Logger) {
		logger.(*zapLogger).writeSyncer = zapcore.AddSync(output)
	}
}

// WithLevel accepts any polylog.Level whose String() zap understands
// ("debug", "info", "warn", "error").
func WithLevel(level polylog.Level) polylog.LoggerOption {
	return func(logger polylog.Logger) {
		zapLevel, err := zapcore.ParseLevel(level.String())
		if err != nil {
			zapLevel = zapcore.InfoLevel
		}
		logger.(*zapLogger).level = zapLevel
	}
}
