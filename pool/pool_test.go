package pool

import (
	"testing"

	"github.com/omnipool-network/omnipool/lib"
	"github.com/omnipool-network/omnipool/store"
	"github.com/omnipool-network/omnipool/token"
	"github.com/stretchr/testify/require"
)

const testSymbol = "USDC"

// testState returns a registry over an in-memory store with a zero fee
// library and one registered asset at 8 local / 6 shared decimals
func testState(t *testing.T) (*State, *token.Token) {
	db, err := store.NewStoreInMemory(lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s := New(1, db, lib.DefaultConfig(), lib.NewNullLogger())
	s.RegisterFeeLibrary(&ZeroFeeLibrary{})
	tok := token.NewToken(testSymbol, 8)
	s.RegisterToken(tok)
	return s, tok
}

// createTestPool registers a pool with one optionally active chain path
func createTestPool(t *testing.T, s *State, id uint64, mintFeeBP uint64, ready bool) {
	require.NoError(t, s.Transact(func() lib.ErrorI {
		return s.CreatePool(&Pool{
			Id:             id,
			TokenSymbol:    testSymbol,
			LocalDecimals:  8,
			SharedDecimals: 6,
			MintFeeBP:      mintFeeBP,
			FeeLibrary:     "zero",
			ChainPaths: []ChainPath{{
				Ready:      ready,
				DstChainId: 2,
				DstPoolId:  id,
				Weight:     1,
			}},
		})
	}))
}

func fund(t *testing.T, tok *token.Token, account string, amount uint64) {
	require.NoError(t, tok.Mint(account, amount))
}

func getPool(t *testing.T, s *State, id uint64) (p *Pool) {
	require.NoError(t, s.Transact(func() (err lib.ErrorI) {
		p, err = s.GetPool(id)
		return
	}))
	return
}

func TestCreatePool(t *testing.T) {
	s, _ := testState(t)
	createTestPool(t, s, 1, 0, true)
	// duplicates are rejected
	err := s.Transact(func() lib.ErrorI {
		return s.CreatePool(&Pool{Id: 1, TokenSymbol: testSymbol, LocalDecimals: 8, SharedDecimals: 6, FeeLibrary: "zero"})
	})
	require.Error(t, err)
	require.Equal(t, lib.CodeDuplicatePool, err.Code())
	// unknown fee libraries are rejected
	err = s.Transact(func() lib.ErrorI {
		return s.CreatePool(&Pool{Id: 2, TokenSymbol: testSymbol, LocalDecimals: 8, SharedDecimals: 6, FeeLibrary: "missing"})
	})
	require.Error(t, err)
	require.Equal(t, lib.CodeUnknownFeeLibrary, err.Code())
}

func TestAddLiquidity(t *testing.T) {
	tests := []struct {
		name           string
		detail         string
		mintFeeBP      uint64
		amountLD       uint64
		wantLiquidity  uint64
		wantDelta      uint64
		wantMintFee    uint64
		wantShares     uint64
		wantErrCode    lib.ErrorCode
	}{
		{
			name:          "simple deposit",
			detail:        "a deposit with no fee lands fully in liquidity and delta credit",
			amountLD:      1000_00, // 1000 units at convert rate 100
			wantLiquidity: 1000,
			wantDelta:     1000,
			wantShares:    1000,
		},
		{
			name:          "deposit with mint fee",
			detail:        "a 1% deposit fee accrues into the mint fee balance",
			mintFeeBP:     100,
			amountLD:      1000_00,
			wantLiquidity: 990,
			wantDelta:     990,
			wantMintFee:   10,
			wantShares:    990,
		},
		{
			name:        "dust only",
			detail:      "an amount below the convert rate converts to zero and is rejected",
			amountLD:    99,
			wantErrCode: lib.CodeZeroAmount,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, tok := testState(t)
			// delta is exercised separately; keep the deposit uncommitted here
			createTestPool(t, s, 1, test.mintFeeBP, false)
			fund(t, tok, "alice", test.amountLD)
			amountLP, err := transactAddLiquidity(s, 1, "alice", test.amountLD)
			if test.wantErrCode != 0 {
				require.Error(t, err, test.detail)
				require.Equal(t, test.wantErrCode, err.Code())
				return
			}
			require.NoError(t, err, test.detail)
			require.Equal(t, test.wantShares, amountLP)
			p := getPool(t, s, 1)
			require.Equal(t, test.wantLiquidity, p.TotalLiquidity, test.detail)
			require.Equal(t, test.wantDelta, p.DeltaCredit)
			require.Equal(t, test.wantMintFee, p.MintFeeBalance)
			require.Equal(t, test.wantShares, p.TotalSupply)
			// the full converted amount moved into the vault
			require.Equal(t, test.amountLD/100*100, tok.BalanceOf(VaultAddress(1)))
			require.Equal(t, test.wantShares, s.ShareToken(p).BalanceOf("alice"))
		})
	}
}

func transactAddLiquidity(s *State, poolId uint64, provider string, amountLD uint64) (amountLP uint64, err lib.ErrorI) {
	err = s.Transact(func() (e lib.ErrorI) {
		amountLP, e = s.AddLiquidity(poolId, provider, amountLD)
		return
	})
	return
}

func TestAddLiquidityProRata(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 0, false)
	fund(t, tok, "alice", 2000_00)
	// first deposit mints 1:1
	amountLP, err := transactAddLiquidity(s, 1, "alice", 1000_00)
	require.NoError(t, err)
	require.EqualValues(t, 1000, amountLP)
	// grow liquidity without minting shares to change the share price
	require.NoError(t, s.Transact(func() lib.ErrorI {
		p, e := s.GetPool(1)
		if e != nil {
			return e
		}
		p.TotalLiquidity += 1000
		return s.SetPool(p)
	}))
	// second deposit mints at the doubled share price
	amountLP, err = transactAddLiquidity(s, 1, "alice", 1000_00)
	require.NoError(t, err)
	require.EqualValues(t, 500, amountLP)
}

func TestInstantRedeemLocal(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 0, false)
	fund(t, tok, "alice", 1000_00)
	_, err := transactAddLiquidity(s, 1, "alice", 1000_00)
	require.NoError(t, err)
	// shrink delta credit so the cap binds
	require.NoError(t, s.Transact(func() lib.ErrorI {
		p, e := s.GetPool(1)
		if e != nil {
			return e
		}
		p.DeltaCredit = 400
		return s.SetPool(p)
	}))
	// a request beyond the credit is capped, never rejected
	var amountSD uint64
	require.NoError(t, s.Transact(func() (e lib.ErrorI) {
		amountSD, e = s.InstantRedeemLocal(1, "alice", "alice", 1000)
		return
	}))
	require.EqualValues(t, 400, amountSD)
	p := getPool(t, s, 1)
	require.EqualValues(t, 0, p.DeltaCredit)
	require.EqualValues(t, 600, p.TotalLiquidity)
	require.EqualValues(t, 600, p.TotalSupply)
	require.EqualValues(t, 400_00, tok.BalanceOf("alice"))
	// with the credit exhausted a second request burns nothing
	require.NoError(t, s.Transact(func() (e lib.ErrorI) {
		amountSD, e = s.InstantRedeemLocal(1, "alice", "alice", 100)
		return
	}))
	require.EqualValues(t, 0, amountSD)
	require.EqualValues(t, 600, getPool(t, s, 1).TotalSupply)
}

func TestWithdrawFeeBalances(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 100, false)
	fund(t, tok, "alice", 1000_00)
	_, err := transactAddLiquidity(s, 1, "alice", 1000_00)
	require.NoError(t, err)
	require.EqualValues(t, 10, getPool(t, s, 1).MintFeeBalance)
	// the accumulated deposit fee pays out of the vault
	require.NoError(t, s.Transact(func() lib.ErrorI { return s.WithdrawMintFeeBalance(1, "treasury") }))
	require.EqualValues(t, 10_00, tok.BalanceOf("treasury"))
	require.EqualValues(t, 0, getPool(t, s, 1).MintFeeBalance)
	// a zero balance withdrawal is a no-op
	require.NoError(t, s.Transact(func() lib.ErrorI { return s.WithdrawProtocolFeeBalance(1, "treasury") }))
	require.EqualValues(t, 10_00, tok.BalanceOf("treasury"))
}

func TestAdminSetters(t *testing.T) {
	s, _ := testState(t)
	createTestPool(t, s, 1, 0, true)
	// mint fee cap
	err := s.Transact(func() lib.ErrorI { return s.SetFee(1, lib.BasisPointDenominator+1) })
	require.Error(t, err)
	require.Equal(t, lib.CodeInvalidBasisPoints, err.Code())
	require.NoError(t, s.Transact(func() lib.ErrorI { return s.SetFee(1, lib.BasisPointDenominator) }))
	// unknown fee library
	err = s.Transact(func() lib.ErrorI { return s.SetFeeLibrary(1, "missing") })
	require.Error(t, err)
	require.Equal(t, lib.CodeUnknownFeeLibrary, err.Code())
	// halt flag round trip
	require.NoError(t, s.Transact(func() lib.ErrorI { return s.SetSwapStop(1, true) }))
	require.True(t, getPool(t, s, 1).StopSwap)
	// delta params validated and stored
	err = s.Transact(func() lib.ErrorI { return s.SetDeltaParam(1, true, 20000, 0, true, true) })
	require.Error(t, err)
	require.NoError(t, s.Transact(func() lib.ErrorI { return s.SetDeltaParam(1, true, 500, 300, true, false) }))
	p := getPool(t, s, 1)
	require.True(t, p.Batched)
	require.EqualValues(t, 500, p.SwapDeltaBP)
	require.EqualValues(t, 300, p.LpDeltaBP)
	require.True(t, p.DefaultSwapMode)
	require.False(t, p.DefaultLPMode)
}

func TestTransactDiscardsOnFailure(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 0, false)
	fund(t, tok, "alice", 1000_00)
	_, err := transactAddLiquidity(s, 1, "alice", 1000_00)
	require.NoError(t, err)
	// a failing operation leaves no partial ledger effects
	err = s.Transact(func() lib.ErrorI {
		p, e := s.GetPool(1)
		if e != nil {
			return e
		}
		p.TotalLiquidity = 0
		if e = s.SetPool(p); e != nil {
			return e
		}
		return ErrSwapsHalted(1)
	})
	require.Error(t, err)
	require.EqualValues(t, 1000, getPool(t, s, 1).TotalLiquidity)
}
