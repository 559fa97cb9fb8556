package pool

import (
	"testing"

	"github.com/omnipool-network/omnipool/lib"
	"github.com/stretchr/testify/require"
)

func TestFlatFeeLibrary(t *testing.T) {
	s, _ := testState(t)
	// 0.06% eq fee, 0.02% reward, 0.01% protocol, 0.1% provider fee
	lib6 := NewFlatFeeLibrary(s, 6, 2, 1, 10)
	s.RegisterFeeLibrary(lib6)
	createTestPool(t, s, 1, 0, true)
	// put the path below ideal with a funded reward pool
	require.NoError(t, s.Transact(func() lib.ErrorI {
		p, e := s.GetPool(1)
		if e != nil {
			return e
		}
		p.TotalLiquidity = 100_000
		p.EqFeePool = 1
		p.ChainPaths[0].IdealBalance = 100_000
		p.ChainPaths[0].Balance = 50_000
		return s.SetPool(p)
	}))
	var fee FeeObj
	require.NoError(t, s.Transact(func() (e lib.ErrorI) {
		fee, e = lib6.GetFees(1, 1, 2, "alice", 10_000)
		return
	}))
	require.EqualValues(t, 6, fee.EqFee)
	require.EqualValues(t, 1, fee.ProtocolFee)
	require.EqualValues(t, 10, fee.LpFee)
	// the reward is capped by the accumulated eq fee pool
	require.EqualValues(t, 1, fee.EqReward)
	// above ideal no reward flows
	require.NoError(t, s.Transact(func() lib.ErrorI {
		p, e := s.GetPool(1)
		if e != nil {
			return e
		}
		p.ChainPaths[0].Balance = 200_000
		return s.SetPool(p)
	}))
	require.NoError(t, s.Transact(func() (e lib.ErrorI) {
		fee, e = lib6.GetFees(1, 1, 2, "alice", 10_000)
		return
	}))
	require.EqualValues(t, 0, fee.EqReward)
}

func TestFeeContractViolationIsFatal(t *testing.T) {
	s, _ := testState(t)
	// a strategy charging 110% is a configuration bug
	broken := NewFlatFeeLibrary(s, 5000, 0, 5000, 1000)
	s.RegisterFeeLibrary(broken)
	createTestPool(t, s, 1, 0, true)
	require.NoError(t, s.Transact(func() lib.ErrorI { return s.SetFeeLibrary(1, "flat") }))
	setChainPathBalance(t, s, 1, 100_000)
	err := s.Transact(func() lib.ErrorI {
		_, e := s.Swap(1, 2, 1, "alice", 10_000_00, 0)
		return e
	})
	require.Error(t, err)
	require.Equal(t, lib.CodeFeesExceedAmount, err.Code())
}
