package polyzero

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

// WithOutput replaces the destination writer, keeping the current level.
func WithOutput(output io.Writer) polylog.LoggerOption {
	return func(logger polylog.Logger) {
		ze := logger.(*zerologLogger)
		ze.Logger = ze.Logger.Output(output)
	}
}

func WithLevel(level polylog.Level) polylog.LoggerOption {
	return func(logger polylog.Logger) {
		ze := logger.(*zerologLogger)
		ze.Logger = ze.Logger.Level(zerolog.Level(level.Int()))
	}
}

// WithSetupFn exposes the underlying zerolog.Logger for configuration that
// polylog does not abstract (e.g. hooks, samplers).
func WithSetupFn(fn func(logger *zerolog.Logger)) polylog.LoggerOption {
	return func(logger polylog.Logger) {
		fn(&logger.(*zerologLogger).Logger)
	}
}
