package testpolylog

import (
	"bytes"
	"context"

	"github.com/pokt-network/chaingate/pkg/polylog"
	"github.com/pokt-network/chaingate/pkg/polylog/polyzero"
)

// NewLoggerWithCtx returns a zerolog-backed logger at level and a copy of ctx
// carrying it.
func NewLoggerWithCtx(ctx context.Context, level polylog.Level) (polylog.Logger, context.Context) {
	logger := polyzero.NewLogger(polyzero.WithLevel(level))
	return logger, logger.WithContext(ctx)
}

// NewBufferedLogger returns a debug-level logger writing into the returned
// buffer, for assertions on log output.
func NewBufferedLogger() (polylog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	logger := polyzero.NewLogger(
		polyzero.WithOutput(buf),
		polyzero.WithLevel(polyzero.DebugLevel),
	)
	return logger, buf
}
