package polyzero

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

const (
	DebugLevel = Level(zerolog.DebugLevel)
	InfoLevel  = Level(zerolog.InfoLevel)
	WarnLevel  = Level(zerolog.WarnLevel)
	ErrorLevel = Level(zerolog.ErrorLevel)
)

var _ polylog.Level = Level(0)

// Level implements polylog.Level for zerolog levels.
type Level int

func (lvl Level) String() string { return zerolog.Level(lvl).String() }
func (lvl Level) Int() int       { return int(lvl) }

// ParseLevel maps a level name ("debug", "info", "warn", "error") to a Level.
// Unknown names fall back to InfoLevel.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
