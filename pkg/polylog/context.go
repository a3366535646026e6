package polylog

import "context"

type ctxKey struct{}

// CtxKey is the context key under which polylog stores a Logger. It is
// independent from any key a backend may use internally.
var CtxKey = ctxKey{}

// DefaultContextLogger is returned by Ctx when no logger is attached to the
// context. Backend packages assign it in their init() to avoid import cycles.
var DefaultContextLogger Logger

// Ctx returns the Logger attached to ctx, falling back to DefaultContextLogger.
func Ctx(ctx context.Context) Logger {
	if logger, ok := ctx.Value(CtxKey).(Logger); ok {
		return logger
	}
	return DefaultContextLogger
}
