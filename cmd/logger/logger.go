// Package logger builds the process-wide logger of the chaingated commands.
package logger

import (
	"io"
	"os"

	"github.com/pokt-network/chaingate/pkg/gateway"
	"github.com/pokt-network/chaingate/pkg/polylog"
	"github.com/pokt-network/chaingate/pkg/polylog/polyzap"
	"github.com/pokt-network/chaingate/pkg/polylog/polyzero"
)

// Logger is set up by the root command before any subcommand runs.
var Logger polylog.Logger = polyzero.NewLogger()

// Setup replaces Logger according to cfg. The returned function closes the
// log file, if any.
func Setup(cfg gateway.LogConfig) (closeFn func() error, err error) {
	output, closeFn, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case gateway.LogBackendZap:
		Logger = polyzap.NewLogger(
			polyzap.WithLevel(polyzap.ParseLevel(cfg.Level)),
			polyzap.WithOutput(output),
		)
	default:
		Logger = polyzero.NewLogger(
			polyzero.WithLevel(polyzero.ParseLevel(cfg.Level)),
			polyzero.WithOutput(output),
		)
	}
	return closeFn, nil
}

func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch output {
	case "", "-", "stderr":
		return os.Stderr, noop, nil
	case "stdout":
		return os.Stdout, noop, nil
	}

	logFile, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return logFile, logFile.Close, nil
}
