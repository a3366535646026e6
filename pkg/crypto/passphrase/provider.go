// Package passphrase supplies the password used to decrypt stored wallets.
package passphrase

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	sdkerrors "cosmossdk.io/errors"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

const (
	codespace = "passphrase"

	// EnvPrefix scopes the environment variable read by EnvProvider:
	// CHAINGATE_PASSPHRASE.
	EnvPrefix = "CHAINGATE"
)

var ErrMissingPassphrase = sdkerrors.Register(codespace, 1, "missing passphrase")

// Provider returns the passphrase, or false when none is available.
type Provider interface {
	ReadPassphrase() (string, bool)
}

// Require reads from provider and turns absence into ErrMissingPassphrase.
func Require(provider Provider) (string, error) {
	if provider == nil {
		return "", ErrMissingPassphrase.Wrap("no passphrase provider configured")
	}
	passphrase, ok := provider.ReadPassphrase()
	if !ok {
		return "", ErrMissingPassphrase
	}
	return passphrase, nil
}

// Static always returns the wrapped value; an empty value is treated as absent.
type Static string

func (s Static) ReadPassphrase() (string, bool) {
	trimmed := strings.TrimSpace(string(s))
	return trimmed, trimmed != ""
}

type envSpec struct {
	Passphrase string `envconfig:"PASSPHRASE"`
}

// EnvProvider reads <prefix>_PASSPHRASE on every call.
type EnvProvider struct {
	prefix string
}

func NewEnvProvider(prefix string) *EnvProvider {
	if prefix == "" {
		prefix = EnvPrefix
	}
	return &EnvProvider{prefix: prefix}
}

func (p *EnvProvider) ReadPassphrase() (string, bool) {
	var spec envSpec
	if err := envconfig.Process(p.prefix, &spec); err != nil {
		return "", false
	}
	return Static(spec.Passphrase).ReadPassphrase()
}

// TerminalProvider prompts once on an interactive terminal and remembers the
// answer. It reports absence when stdin is not a terminal.
type TerminalProvider struct {
	prompt string
	out    io.Writer

	once       sync.Once
	passphrase string
	ok         bool
}

func NewTerminalProvider(prompt string) *TerminalProvider {
	return &TerminalProvider{prompt: prompt, out: os.Stderr}
}

func (p *TerminalProvider) ReadPassphrase() (string, bool) {
	p.once.Do(func() {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return
		}

		fmt.Fprint(p.out, p.prompt)
		bytePassword, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return
		}
		p.passphrase, p.ok = Static(bytePassword).ReadPassphrase()
	})
	return p.passphrase, p.ok
}

// Chain returns the first passphrase supplied by providers, in order.
type Chain []Provider

func (c Chain) ReadPassphrase() (string, bool) {
	for _, provider := range c {
		if provider == nil {
			continue
		}
		if passphrase, ok := provider.ReadPassphrase(); ok {
			return passphrase, true
		}
	}
	return "", false
}
