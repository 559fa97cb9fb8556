package token

import (
	"testing"

	"github.com/omnipool-network/omnipool/lib"
	"github.com/stretchr/testify/require"
)

func TestTokenLedger(t *testing.T) {
	tok := NewToken("USDC", 6)
	require.Equal(t, "USDC", tok.Symbol())
	require.Equal(t, uint8(6), tok.Decimals())
	// mint credits the account and the supply
	require.NoError(t, tok.Mint("alice", 1_000))
	require.EqualValues(t, 1_000, tok.BalanceOf("alice"))
	require.EqualValues(t, 1_000, tok.TotalSupply())
	// transfer moves units without changing supply
	require.NoError(t, tok.Transfer("alice", "bob", 400))
	require.EqualValues(t, 600, tok.BalanceOf("alice"))
	require.EqualValues(t, 400, tok.BalanceOf("bob"))
	require.EqualValues(t, 1_000, tok.TotalSupply())
	// burn destroys units and shrinks the supply
	require.NoError(t, tok.Burn("bob", 100))
	require.EqualValues(t, 300, tok.BalanceOf("bob"))
	require.EqualValues(t, 900, tok.TotalSupply())
	// overdrafts are rejected
	err := tok.Transfer("bob", "alice", 301)
	require.Error(t, err)
	require.Equal(t, lib.CodeInsufficientFunds, err.Code())
	err = tok.Burn("bob", 301)
	require.Error(t, err)
	require.Equal(t, lib.CodeInsufficientFunds, err.Code())
}

func TestTokenPause(t *testing.T) {
	tok := NewToken("USDT", 6)
	require.NoError(t, tok.Mint("vault", 500))
	// paused tokens reject transfers but not mints or burns
	tok.SetPaused(true)
	err := tok.Transfer("vault", "alice", 100)
	require.Error(t, err)
	require.Equal(t, lib.CodeTokenPaused, err.Code())
	require.NoError(t, tok.Mint("vault", 100))
	// unpausing restores transfers
	tok.SetPaused(false)
	require.NoError(t, tok.Transfer("vault", "alice", 100))
	require.EqualValues(t, 100, tok.BalanceOf("alice"))
}
