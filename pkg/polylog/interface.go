package polylog

import (
	"context"
	"time"
)

// Level is the interface a logger backend level type MUST implement so that
// callers may pass levels around without importing the backend package.
type Level interface {
	String() string
	Int() int
}

// LoggerOption configures a backend-specific logger at construction time.
type LoggerOption func(logger Logger)

// Logger is a leveled, structured logger. Implementations MUST be safe for
// concurrent use.
type Logger interface {
	// Debug, Info, Warn and Error start a new event at the respective level.
	// The event is only written once Msg, Msgf or Send is called on it.
	Debug() Event
	Info() Event
	Warn() Event
	Error() Event

	// WithLevel starts a new event at the given level.
	WithLevel(level Level) Event

	// With returns a child logger carrying the given key/value pairs on every
	// subsequent event. keyVals are interpreted as alternating keys and values.
	With(keyVals ...any) Logger

	// WithContext returns a copy of ctx with the receiver attached; see Ctx.
	WithContext(ctx context.Context) context.Context

	// Write makes the logger usable as an io.Writer.
	Write(p []byte) (n int, err error)
}

// Event is a single, chainable log entry under construction.
type Event interface {
	Str(key, value string) Event
	Bool(key string, value bool) Event
	Int(key string, value int) Event
	Int64(key string, value int64) Event
	Uint32(key string, value uint32) Event
	Uint64(key string, value uint64) Event
	Float64(key string, value float64) Event
	Err(err error) Event
	Time(key string, value time.Time) Event
	Dur(key string, value time.Duration) Event
	Fields(fields any) Event

	// Enabled reports whether the event will be written.
	Enabled() bool

	Msg(msg string)
	Msgf(format string, args ...any)
	Send()
}
