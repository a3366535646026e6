package polyzap

import (
	"go.uber.org/zap/zapcore"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	WarnLevel  = Level(zapcore.WarnLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

var _ polylog.Level = Level(0)

// Level implements polylog.Level for zap levels.
type Level int8

func (lvl Level) String() string { return zapcore.Level(lvl).String() }
func (lvl Level) Int() int       { return int(lvl) }

// ParseLevel maps a level name to a Level using zap's own parser. Unknown
// names fall back to InfoLevel.
func ParseLevel(name string) Level {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return InfoLevel
	}
	return Level(lvl)
}
