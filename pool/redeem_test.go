package pool

import (
	"testing"

	"github.com/omnipool-network/omnipool/lib"
	"github.com/stretchr/testify/require"
)

func TestRedeemRemote(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 0, true)
	fund(t, tok, "alice", 1000_00)
	_, err := transactAddLiquidity(s, 1, "alice", 1000_00)
	require.NoError(t, err)
	setChainPathBalance(t, s, 1, 2000)
	// burn 400 shares and promise the equivalent outward
	var sw SwapObj
	require.NoError(t, s.Transact(func() (e lib.ErrorI) {
		sw, e = s.RedeemRemote(1, 2, 1, "alice", 400, 0)
		return
	}))
	require.EqualValues(t, 400, sw.Amount)
	require.EqualValues(t, 400, sw.LkbRemove)
	p := getPool(t, s, 1)
	require.EqualValues(t, 600, p.TotalSupply)
	require.EqualValues(t, 600, p.TotalLiquidity)
	require.EqualValues(t, 2000-400, p.ChainPaths[0].Balance)
	require.EqualValues(t, 600, s.ShareToken(p).BalanceOf("alice"))
}

func TestRedeemRemoteRejections(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 0, true)
	fund(t, tok, "alice", 1000_00)
	_, err := transactAddLiquidity(s, 1, "alice", 1000_00)
	require.NoError(t, err)
	// zero shares
	txErr := s.Transact(func() lib.ErrorI {
		_, e := s.RedeemRemote(1, 2, 1, "alice", 0, 0)
		return e
	})
	require.Error(t, txErr)
	require.Equal(t, lib.CodeZeroAmount, txErr.Code())
	// the stale local belief cannot cover the burn
	setChainPathBalance(t, s, 1, 100)
	txErr = s.Transact(func() lib.ErrorI {
		_, e := s.RedeemRemote(1, 2, 1, "alice", 400, 0)
		return e
	})
	require.Error(t, txErr)
	require.Equal(t, lib.CodeInsufficientBalance, txErr.Code())
	// the failed burn left the supply intact
	require.EqualValues(t, 1000, getPool(t, s, 1).TotalSupply)
}

func TestRedeemLocalOptimisticBurn(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 0, false)
	fund(t, tok, "alice", 1000_00)
	_, err := transactAddLiquidity(s, 1, "alice", 1000_00)
	require.NoError(t, err)
	// the burn commits before the destination has confirmed anything; the
	// path only needs to exist, readiness is judged remotely
	var amountSD uint64
	require.NoError(t, s.Transact(func() (e lib.ErrorI) {
		amountSD, e = s.RedeemLocal(1, 2, 1, "alice", 500)
		return
	}))
	require.EqualValues(t, 500, amountSD)
	p := getPool(t, s, 1)
	require.EqualValues(t, 500, p.TotalSupply)
	require.EqualValues(t, 500, p.TotalLiquidity)
}

func TestRedeemLocalCheckOnRemote(t *testing.T) {
	tests := []struct {
		name       string
		detail     string
		ready      bool
		balance    uint64
		amountSD   uint64
		wantSwap   uint64
		wantMint   uint64
		wantAfter  uint64
	}{
		{
			name:      "fully covered",
			detail:    "a sufficient balance covers the whole request",
			ready:     true,
			balance:   800,
			amountSD:  500,
			wantSwap:  500,
			wantAfter: 300,
		},
		{
			name:     "partially covered",
			detail:   "the balance covers 300 of 500 and the rest is compensated",
			ready:    true,
			balance:  300,
			amountSD: 500,
			wantSwap: 300,
			wantMint: 200,
		},
		{
			name:     "path not ready",
			detail:   "an inactive path covers nothing and compensates everything",
			amountSD: 500,
			wantMint: 500,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _ := testState(t)
			createTestPool(t, s, 1, 0, test.ready)
			setChainPathBalance(t, s, 1, test.balance)
			var swapAmount, mintAmount uint64
			require.NoError(t, s.Transact(func() (e lib.ErrorI) {
				swapAmount, mintAmount, e = s.RedeemLocalCheckOnRemote(1, 2, 1, test.amountSD)
				return
			}))
			require.Equal(t, test.wantSwap, swapAmount, test.detail)
			require.Equal(t, test.wantMint, mintAmount)
			require.Equal(t, test.wantAfter, getPool(t, s, 1).ChainPaths[0].Balance)
		})
	}
}

func TestRedeemLocalCallback(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 0, true)
	fund(t, tok, "alice", 1000_00)
	_, err := transactAddLiquidity(s, 1, "alice", 1000_00)
	require.NoError(t, err)
	// simulate the optimistic burn of 500 shares and an in-flight promise
	require.NoError(t, s.Transact(func() lib.ErrorI {
		if _, e := s.RedeemLocal(1, 2, 1, "alice", 500); e != nil {
			return e
		}
		p, e := s.GetPool(1)
		if e != nil {
			return e
		}
		p.ChainPaths[0].Lkb = 300
		return s.SetPool(p)
	}))
	// the destination covered 300 and compensates 200
	require.NoError(t, s.Transact(func() lib.ErrorI {
		return s.RedeemLocalCallback(1, 2, 1, "alice", 300, 200)
	}))
	p := getPool(t, s, 1)
	// exactly the uncovered 200-share-equivalent was re-minted
	require.EqualValues(t, 700, p.TotalSupply)
	require.EqualValues(t, 700, p.TotalLiquidity)
	require.EqualValues(t, 700, s.ShareToken(p).BalanceOf("alice"))
	require.EqualValues(t, 0, p.ChainPaths[0].Lkb)
	// the covered 300 left the vault for the user
	require.EqualValues(t, 300_00, tok.BalanceOf("alice"))
	require.EqualValues(t, 700_00, tok.BalanceOf(VaultAddress(1)))
}
