package pool

import (
	"testing"

	"github.com/omnipool-network/omnipool/lib"
	"github.com/stretchr/testify/require"
)

// setChainPathBalance stages a drawable balance as if the counterpart had sent credits
func setChainPathBalance(t *testing.T, s *State, poolId, balance uint64) {
	require.NoError(t, s.Transact(func() lib.ErrorI {
		p, e := s.GetPool(poolId)
		if e != nil {
			return e
		}
		p.ChainPaths[0].Balance = balance
		return s.SetPool(p)
	}))
}

func TestSwap(t *testing.T) {
	s, tok := testState(t)
	// a 1% provider fee and nothing else
	s.RegisterFeeLibrary(NewFlatFeeLibrary(s, 0, 0, 0, 100))
	createTestPool(t, s, 1, 0, true)
	require.NoError(t, s.Transact(func() lib.ErrorI { return s.SetFeeLibrary(1, "flat") }))
	setChainPathBalance(t, s, 1, 2000)
	fund(t, tok, "alice", 1000_00)
	var sw SwapObj
	require.NoError(t, s.Transact(func() (e lib.ErrorI) {
		sw, e = s.Swap(1, 2, 1, "alice", 1000_00, 0)
		return
	}))
	// 1000 in, 10 to the providers, 990 promised outward
	require.EqualValues(t, 990, sw.Amount)
	require.EqualValues(t, 10, sw.LpFee)
	require.EqualValues(t, 990, sw.LkbRemove)
	p := getPool(t, s, 1)
	require.EqualValues(t, 10, p.TotalLiquidity)
	require.EqualValues(t, 2000-990, p.ChainPaths[0].Balance)
	require.EqualValues(t, 1000_00, tok.BalanceOf(VaultAddress(1)))
	require.EqualValues(t, 0, tok.BalanceOf("alice"))
}

func TestSwapRejections(t *testing.T) {
	tests := []struct {
		name        string
		detail      string
		prepare     func(t *testing.T, s *State)
		amountLD    uint64
		minAmountLD uint64
		wantErrCode lib.ErrorCode
	}{
		{
			name:        "halted",
			detail:      "the swap halt flag rejects before any mutation",
			prepare:     func(t *testing.T, s *State) { require.NoError(t, s.Transact(func() lib.ErrorI { return s.SetSwapStop(1, true) })) },
			amountLD:    1000_00,
			wantErrCode: lib.CodeSwapsHalted,
		},
		{
			name:        "zero amount",
			detail:      "an amount that converts to zero shared decimals is rejected",
			amountLD:    99,
			wantErrCode: lib.CodeZeroAmount,
		},
		{
			name:        "insufficient path balance",
			detail:      "the source cannot promise more than it believes the destination holds",
			prepare:     func(t *testing.T, s *State) { setChainPathBalance(t, s, 1, 100) },
			amountLD:    1000_00,
			wantErrCode: lib.CodeInsufficientBalance,
		},
		{
			name:        "slippage floor",
			detail:      "the recipient amount after fees must clear the caller's minimum",
			amountLD:    1000_00,
			minAmountLD: 1000_00,
			wantErrCode: lib.CodeSlippageTooHigh,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, tok := testState(t)
			s.RegisterFeeLibrary(NewFlatFeeLibrary(s, 0, 0, 0, 100))
			createTestPool(t, s, 1, 0, true)
			require.NoError(t, s.Transact(func() lib.ErrorI { return s.SetFeeLibrary(1, "flat") }))
			setChainPathBalance(t, s, 1, 2000)
			fund(t, tok, "alice", test.amountLD)
			if test.prepare != nil {
				test.prepare(t, s)
			}
			err := s.Transact(func() lib.ErrorI {
				_, e := s.Swap(1, 2, 1, "alice", test.amountLD, test.minAmountLD)
				return e
			})
			require.Error(t, err, test.detail)
			require.Equal(t, test.wantErrCode, err.Code())
			// rejection leaves the sender untouched
			require.Equal(t, test.amountLD, tok.BalanceOf("alice"))
		})
	}
}

func TestSwapNotReadyPath(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 0, false)
	fund(t, tok, "alice", 1000_00)
	err := s.Transact(func() lib.ErrorI {
		_, e := s.Swap(1, 2, 1, "alice", 1000_00, 0)
		return e
	})
	require.Error(t, err)
	require.Equal(t, lib.CodeChainPathNotReady, err.Code())
}

func TestSwapRemote(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 0, true)
	// stage the outward promise and the vault assets backing it
	require.NoError(t, s.Transact(func() lib.ErrorI {
		p, e := s.GetPool(1)
		if e != nil {
			return e
		}
		p.ChainPaths[0].Lkb = 1000
		return s.SetPool(p)
	}))
	fund(t, tok, VaultAddress(1), 1000_00)
	var amountLD uint64
	require.NoError(t, s.Transact(func() (e lib.ErrorI) {
		amountLD, e = s.SwapRemote(1, 2, 1, "bob", SwapObj{Amount: 990, EqReward: 5, LkbRemove: 995})
		return
	}))
	require.EqualValues(t, 995_00, amountLD)
	require.EqualValues(t, 995_00, tok.BalanceOf("bob"))
	require.EqualValues(t, 5, getPool(t, s, 1).ChainPaths[0].Lkb)
}

func TestSwapRemoteLkbUnderflow(t *testing.T) {
	s, _ := testState(t)
	createTestPool(t, s, 1, 0, true)
	err := s.Transact(func() lib.ErrorI {
		_, e := s.SwapRemote(1, 2, 1, "bob", SwapObj{Amount: 990, LkbRemove: 990})
		return e
	})
	require.Error(t, err)
	require.Equal(t, lib.CodeLkbUnderflow, err.Code())
}
