package polyzap

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

var _ polylog.Event = (*zapEvent)(nil)

// zapEvent buffers fields until one of the terminal methods is called.
type zapEvent struct {
	logger  *zap.Logger
	level   zapcore.Level
	fields  []zapcore.Field
	enabled bool
}

func newEvent(logger *zap.Logger, level zapcore.Level) polylog.Event {
	return &zapEvent{
		logger:  logger,
		level:   level,
		enabled: logger.Core().Enabled(level),
	}
}

func (zae *zapEvent) add(field zapcore.Field) polylog.Event {
	if zae.enabled {
		zae.fields = append(zae.fields, field)
	}
	return zae
}

func (zae *zapEvent) Str(key, value string) polylog.Event       { return zae.add(zap.String(key, value)) }
func (zae *zapEvent) Bool(key string, value bool) polylog.Event { return zae.add(zap.Bool(key, value)) }
func (zae *zapEvent) Int(key string, value int) polylog.Event   { return zae.add(zap.Int(key, value)) }
func (zae *zapEvent) Int64(key string, value int64) polylog.Event {
	return zae.add(zap.Int64(key, value))
}
func (zae *zapEvent) Uint32(key string, value uint32) polylog.Event {
	return zae.add(zap.Uint32(key, value))
}
func (zae *zapEvent) Uint64(key string, value uint64) polylog.Event {
	return zae.add(zap.Uint64(key, value))
}
func (zae *zapEvent) Float64(key string, value float64) polylog.Event {
	return zae.add(zap.Float64(key, value))
}
func (zae *zapEvent) Err(err error) polylog.Event { return zae.add(zap.Error(err)) }
func (zae *zapEvent) Time(key string, value time.Time) polylog.Event {
	return zae.add(zap.Time(key, value))
}
func (zae *zapEvent) Dur(key string, value time.Duration) polylog.Event {
	return zae.add(zap.Duration(key, value))
}

// Fields accepts either a map[string]any or a flat key/value slice.
func (zae *zapEvent) Fields(fields any) polylog.Event {
	switch f := fields.(type) {
	case map[string]any:
		for key, value := range f {
			zae.add(zap.Any(key, value))
		}
	case []any:
		for i := 0; i+1 < len(f); i += 2 {
			zae.add(zap.Any(fmt.Sprint(f[i]), f[i+1]))
		}
	}
	return zae
}

func (zae *zapEvent) Enabled() bool { return zae.enabled }

func (zae *zapEvent) Msg(msg string) {
	if !zae.enabled {
		return
	}
	zae.logger.Log(zae.level, msg, zae.fields...)
}

func (zae *zapEvent) Msgf(format string, args ...any) {
	zae.Msg(fmt.Sprintf(format, args...))
}

func (zae *zapEvent) Send() {
	zae.Msg("")
}
