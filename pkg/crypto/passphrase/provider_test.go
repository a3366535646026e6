package passphrase_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pokt-network/chaingate/pkg/crypto/passphrase"
)

func TestStatic(t *testing.T) {
	value, ok := passphrase.Static("  secret \n").ReadPassphrase()
	require.True(t, ok)
	require.Equal(t, "secret", value)

	_, ok = passphrase.Static("   ").ReadPassphrase()
	require.False(t, ok)
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("CHAINGATE_PASSPHRASE", "from-env")

	value, ok := passphrase.NewEnvProvider("").ReadPassphrase()
	require.True(t, ok)
	require.Equal(t, "from-env", value)

	t.Setenv("CHAINGATE_PASSPHRASE", "")
	_, ok = passphrase.NewEnvProvider("").ReadPassphrase()
	require.False(t, ok)
}

func TestChain(t *testing.T) {
	chain := passphrase.Chain{nil, passphrase.Static(""), passphrase.Static("second")}
	value, ok := chain.ReadPassphrase()
	require.True(t, ok)
	require.Equal(t, "second", value)

	_, ok = passphrase.Chain{passphrase.Static("")}.ReadPassphrase()
	require.False(t, ok)
}

func TestRequire(t *testing.T) {
	_, err := passphrase.Require(passphrase.Static(""))
	require.ErrorIs(t, err, passphrase.ErrMissingPassphrase)

	_, err = passphrase.Require(nil)
	require.ErrorIs(t, err, passphrase.ErrMissingPassphrase)

	value, err := passphrase.Require(passphrase.Static("pw"))
	require.NoError(t, err)
	require.Equal(t, "pw", value)
}
