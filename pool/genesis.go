package pool

import (
	"fmt"

	"github.com/omnipool-network/omnipool/lib"
)

// GenesisState describes the initial pools and chain paths of a chain
type GenesisState struct {
	Pools []GenesisPool `json:"pools"`
}

// GenesisPool is the declarative form of a pool record
type GenesisPool struct {
	Id              uint64             `json:"id"`
	TokenSymbol     string             `json:"tokenSymbol"`
	LocalDecimals   uint8              `json:"localDecimals"`
	SharedDecimals  uint8              `json:"sharedDecimals"`
	MintFeeBP       uint64             `json:"mintFeeBP"`
	FeeLibrary      string             `json:"feeLibrary"`
	Batched         bool               `json:"batched"`
	SwapDeltaBP     uint64             `json:"swapDeltaBP"`
	LpDeltaBP       uint64             `json:"lpDeltaBP"`
	DefaultSwapMode bool               `json:"defaultSwapMode"`
	DefaultLPMode   bool               `json:"defaultLPMode"`
	ChainPaths      []GenesisChainPath `json:"chainPaths"`
}

// GenesisChainPath is the declarative form of a chain path record
type GenesisChainPath struct {
	DstChainId uint64 `json:"dstChainId"`
	DstPoolId  uint64 `json:"dstPoolId"`
	Weight     uint64 `json:"weight"`
	Ready      bool   `json:"ready"`
}

// NewGenesisFromFile() loads and parses the genesis file in the data directory
func NewGenesisFromFile(dataDirPath string) (*GenesisState, lib.ErrorI) {
	g := new(GenesisState)
	if err := lib.NewJSONFromFile(g, dataDirPath, lib.GenesisFilePath); err != nil {
		return nil, err
	}
	return g, nil
}

// ImportGenesis() validates the genesis state and writes the initial pool
// records; the caller wraps the import in a transaction
func (s *State) ImportGenesis(g *GenesisState) lib.ErrorI {
	seen := make(map[uint64]bool)
	for _, gp := range g.Pools {
		if seen[gp.Id] {
			return ErrInvalidGenesis(fmt.Sprintf("duplicate pool id %d", gp.Id))
		}
		seen[gp.Id] = true
		if gp.LocalDecimals < gp.SharedDecimals {
			return ErrInvalidGenesis(fmt.Sprintf("pool %d shared decimals exceed local decimals", gp.Id))
		}
		if gp.MintFeeBP > lib.BasisPointDenominator {
			return ErrInvalidGenesis(fmt.Sprintf("pool %d mint fee exceeds the denominator", gp.Id))
		}
		if _, found := s.feeLibs[gp.FeeLibrary]; !found {
			return ErrInvalidGenesis(fmt.Sprintf("pool %d references unknown fee library %s", gp.Id, gp.FeeLibrary))
		}
		if _, found := s.tokens[gp.TokenSymbol]; !found {
			return ErrInvalidGenesis(fmt.Sprintf("pool %d references unknown token %s", gp.Id, gp.TokenSymbol))
		}
		p := &Pool{
			Id:              gp.Id,
			TokenSymbol:     gp.TokenSymbol,
			LocalDecimals:   gp.LocalDecimals,
			SharedDecimals:  gp.SharedDecimals,
			MintFeeBP:       gp.MintFeeBP,
			FeeLibrary:      gp.FeeLibrary,
			Batched:         gp.Batched,
			SwapDeltaBP:     gp.SwapDeltaBP,
			LpDeltaBP:       gp.LpDeltaBP,
			DefaultSwapMode: gp.DefaultSwapMode,
			DefaultLPMode:   gp.DefaultLPMode,
		}
		paths := make(map[[2]uint64]bool)
		for _, gcp := range gp.ChainPaths {
			key := [2]uint64{gcp.DstChainId, gcp.DstPoolId}
			if paths[key] {
				return ErrInvalidGenesis(fmt.Sprintf("pool %d has a duplicate chain path to pool %d on chain %d", gp.Id, gcp.DstPoolId, gcp.DstChainId))
			}
			paths[key] = true
			p.ChainPaths = append(p.ChainPaths, ChainPath{
				Ready:      gcp.Ready,
				DstChainId: gcp.DstChainId,
				DstPoolId:  gcp.DstPoolId,
				Weight:     gcp.Weight,
			})
		}
		if err := s.CreatePool(p); err != nil {
			return err
		}
	}
	return nil
}
