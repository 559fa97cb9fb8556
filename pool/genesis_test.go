package pool

import (
	"testing"

	"github.com/omnipool-network/omnipool/lib"
	"github.com/stretchr/testify/require"
)

func testGenesis() *GenesisState {
	return &GenesisState{Pools: []GenesisPool{{
		Id:             1,
		TokenSymbol:    testSymbol,
		LocalDecimals:  8,
		SharedDecimals: 6,
		FeeLibrary:     "zero",
		ChainPaths: []GenesisChainPath{
			{DstChainId: 2, DstPoolId: 1, Weight: 1, Ready: true},
			{DstChainId: 3, DstPoolId: 1, Weight: 2},
		},
	}}}
}

func TestImportGenesis(t *testing.T) {
	s, _ := testState(t)
	require.NoError(t, s.Transact(func() lib.ErrorI { return s.ImportGenesis(testGenesis()) }))
	p := getPool(t, s, 1)
	require.Len(t, p.ChainPaths, 2)
	require.True(t, p.ChainPaths[0].Ready)
	require.False(t, p.ChainPaths[1].Ready)
}

func TestImportGenesisValidation(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		mutate func(g *GenesisState)
	}{
		{
			name:   "duplicate pool",
			detail: "pool identifiers must be unique",
			mutate: func(g *GenesisState) { g.Pools = append(g.Pools, g.Pools[0]) },
		},
		{
			name:   "inverted decimals",
			detail: "shared decimals may not exceed local decimals",
			mutate: func(g *GenesisState) { g.Pools[0].SharedDecimals = 9 },
		},
		{
			name:   "mint fee above denominator",
			detail: "the deposit fee is capped at 100%",
			mutate: func(g *GenesisState) { g.Pools[0].MintFeeBP = lib.BasisPointDenominator + 1 },
		},
		{
			name:   "unknown fee library",
			detail: "pools may only reference registered strategies",
			mutate: func(g *GenesisState) { g.Pools[0].FeeLibrary = "missing" },
		},
		{
			name:   "unknown token",
			detail: "pools may only reference registered assets",
			mutate: func(g *GenesisState) { g.Pools[0].TokenSymbol = "missing" },
		},
		{
			name:   "duplicate chain path",
			detail: "a (chain, pool) pair appears at most once",
			mutate: func(g *GenesisState) { g.Pools[0].ChainPaths[1] = g.Pools[0].ChainPaths[0] },
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _ := testState(t)
			g := testGenesis()
			test.mutate(g)
			err := s.Transact(func() lib.ErrorI { return s.ImportGenesis(g) })
			require.Error(t, err, test.detail)
		})
	}
}

func TestEventsIndexed(t *testing.T) {
	s, tok := testState(t)
	createTestPool(t, s, 1, 0, false)
	fund(t, tok, "alice", 1000_00)
	_, err := transactAddLiquidity(s, 1, "alice", 1000_00)
	require.NoError(t, err)
	require.NoError(t, s.Transact(func() lib.ErrorI { return s.CreateChainPath(1, 3, 1, 2) }))
	var events []*Event
	require.NoError(t, s.Transact(func() (e lib.ErrorI) {
		events, e = s.GetEvents(0)
		return
	}))
	// the deposit emitted a mint, the new path a chain path update
	require.Len(t, events, 2)
	require.Equal(t, EventMint, events[0].Type)
	require.EqualValues(t, 1000, events[0].AmountSD)
	require.Equal(t, EventChainPathUpdate, events[1].Type)
}
