// Package pool implements the per-chain liquidity ledger and its cross-chain
// reconciliation protocol: chain-path accounting, weight-based delta
// rebalancing, the two-phase swap/redeem protocols, and the bookkeeping that
// keeps the ledger solvent while messages are in flight.
package pool

import (
	"github.com/omnipool-network/omnipool/lib"
)

// Pool is the ledger for one asset on one chain.
// All amount fields are in shared decimals, the lowest common precision for
// the asset across every participating chain.
type Pool struct {
	Id                 uint64      `json:"id"`                 // unique pool identifier
	TokenSymbol        string      `json:"tokenSymbol"`        // underlying asset ticker
	LocalDecimals      uint8       `json:"localDecimals"`      // precision of the asset on this chain
	SharedDecimals     uint8       `json:"sharedDecimals"`     // common cross-chain precision
	TotalLiquidity     uint64      `json:"totalLiquidity"`     // asset actually backing shares
	TotalSupply        uint64      `json:"totalSupply"`        // outstanding liquidity shares
	DeltaCredit        uint64      `json:"deltaCredit"`        // uncommitted liquidity; instant-redeemable or rebalanceable
	EqFeePool          uint64      `json:"eqFeePool"`          // accumulated equilibrium fees; funds equilibrium rewards
	ProtocolFeeBalance uint64      `json:"protocolFeeBalance"` // accumulated protocol fees
	MintFeeBalance     uint64      `json:"mintFeeBalance"`     // accumulated liquidity deposit fees
	MintFeeBP          uint64      `json:"mintFeeBP"`          // deposit fee in basis points
	FeeLibrary         string      `json:"feeLibrary"`         // name of the registered fee strategy
	StopSwap           bool        `json:"stopSwap"`           // swap halt flag
	Batched            bool        `json:"batched"`            // defer rebalancing until the deviation threshold is crossed
	SwapDeltaBP        uint64      `json:"swapDeltaBP"`        // deviation threshold for swap-triggered rebalances
	LpDeltaBP          uint64      `json:"lpDeltaBP"`          // deviation threshold for liquidity-triggered rebalances
	DefaultSwapMode    bool        `json:"defaultSwapMode"`    // full rebalance on swap-triggered invocations
	DefaultLPMode      bool        `json:"defaultLPMode"`      // full rebalance on liquidity-triggered invocations
	ChainPaths         []ChainPath `json:"chainPaths"`         // ordered accounting records toward counterpart pools
}

// ChainPath is the directed accounting record from this pool toward one
// counterpart pool on one counterpart chain. Created once, never deleted;
// Ready flips to true exactly once on activation.
type ChainPath struct {
	Ready        bool   `json:"ready"`        // activation flag
	DstChainId   uint64 `json:"dstChainId"`   // counterpart chain identifier
	DstPoolId    uint64 `json:"dstPoolId"`    // counterpart pool identifier
	Weight       uint64 `json:"weight"`       // rebalancing share
	Balance      uint64 `json:"balance"`      // liquidity this side believes it may still draw from the counterpart
	IdealBalance uint64 `json:"idealBalance"` // weight-proportional target balance
	Credits      uint64 `json:"credits"`      // liquidity earmarked for the counterpart, not yet transmitted
	Lkb          uint64 `json:"lkb"`          // cumulative liquidity promised outward to the counterpart
}

// CreditObj is the payload body of a credit transmission toward a counterpart
// chain path: the flushed credits plus the sender's ideal-balance view for audit.
type CreditObj struct {
	Credits      uint64 `json:"credits"`
	IdealBalance uint64 `json:"idealBalance"`
}

// ConvertRate() returns the factor between local and shared decimal amounts
func (p *Pool) ConvertRate() uint64 {
	rate := uint64(1)
	for i := p.SharedDecimals; i < p.LocalDecimals; i++ {
		rate *= 10
	}
	return rate
}

// AmountLDtoSD() converts a local-decimal amount to shared decimals; the
// unconvertible remainder is dust that stays with the caller
func (p *Pool) AmountLDtoSD(amountLD uint64) uint64 { return amountLD / p.ConvertRate() }

// AmountSDtoLD() converts a shared-decimal amount to local decimals
func (p *Pool) AmountSDtoLD(amountSD uint64) uint64 { return amountSD * p.ConvertRate() }

// AmountLPtoSD() converts liquidity shares to the shared-decimal asset amount they redeem for
func (p *Pool) AmountLPtoSD(amountLP uint64) (uint64, lib.ErrorI) {
	if p.TotalSupply == 0 {
		return 0, ErrZeroTotalSupply(p.Id)
	}
	return lib.SafeMulDiv(amountLP, p.TotalLiquidity, p.TotalSupply), nil
}

// AmountSDtoLP() converts a shared-decimal asset amount to the liquidity shares it is worth
func (p *Pool) AmountSDtoLP(amountSD uint64) (uint64, lib.ErrorI) {
	if p.TotalLiquidity == 0 {
		return 0, ErrInsufficientLiquidity(p.Id)
	}
	return lib.SafeMulDiv(amountSD, p.TotalSupply, p.TotalLiquidity), nil
}

// GetChainPath() returns a pointer into the pool's chain path slice or a named error
func (p *Pool) GetChainPath(dstChainId, dstPoolId uint64) (*ChainPath, lib.ErrorI) {
	for i := range p.ChainPaths {
		cp := &p.ChainPaths[i]
		if cp.DstChainId == dstChainId && cp.DstPoolId == dstPoolId {
			return cp, nil
		}
	}
	return nil, ErrUnknownChainPath(dstChainId, dstPoolId)
}

// GetActiveChainPath() returns the chain path or a named error if absent or not yet activated
func (p *Pool) GetActiveChainPath(dstChainId, dstPoolId uint64) (*ChainPath, lib.ErrorI) {
	cp, err := p.GetChainPath(dstChainId, dstPoolId)
	if err != nil {
		return nil, err
	}
	if !cp.Ready {
		return nil, ErrChainPathNotReady(dstChainId, dstPoolId)
	}
	return cp, nil
}

// TotalWeight() sums the weights of the active chain paths; paths that were
// never activated carry no rebalancing share
func (p *Pool) TotalWeight() (total uint64) {
	for i := range p.ChainPaths {
		if p.ChainPaths[i].Ready {
			total += p.ChainPaths[i].Weight
		}
	}
	return
}
