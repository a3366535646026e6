package polyzero

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

var _ polylog.Logger = (*zerologLogger)(nil)

func init() {
	polylog.DefaultContextLogger = NewLogger(WithLevel(InfoLevel))
}

type zerologLogger struct {
	zerolog.Logger
}

// NewLogger returns a zerolog-backed polylog.Logger. Unless overridden by
// opts, output is JSON on os.Stderr at debug level with RFC3339 timestamps.
func NewLogger(opts ...polylog.LoggerOption) polylog.Logger {
	ze := &zerologLogger{
		Logger: zerolog.New(os.Stderr).Level(zerolog.DebugLevel).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(ze)
	}
	return ze
}

func (ze *zerologLogger) Debug() polylog.Event { return newEvent(ze.Logger.Debug()) }
func (ze *zerologLogger) Info() polylog.Event  { return newEvent(ze.Logger.Info()) }
func (ze *zerologLogger) Warn() polylog.Event  { return newEvent(ze.Logger.Warn()) }
func (ze *zerologLogger) Error() polylog.Event { return newEvent(ze.Logger.Error()) }

func (ze *zerologLogger) WithLevel(level polylog.Level) polylog.Event {
	return newEvent(ze.Logger.WithLevel(zerolog.Level(level.Int())))
}

// With returns a child logger; keyVals alternate between keys and values.
func (ze *zerologLogger) With(keyVals ...any) polylog.Logger {
	return &zerologLogger{Logger: ze.Logger.With().Fields(keyVals).Logger()}
}

// WithContext attaches the logger under both the polylog key and zerolog's own
// key so zerolog.Ctx(ctx) keeps working for code using zerolog directly.
func (ze *zerologLogger) WithContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, polylog.CtxKey, ze)
	return ze.Logger.WithContext(ctx)
}

func (ze *zerologLogger) Write(p []byte) (int, error) {
	return ze.Logger.Write(p)
}
