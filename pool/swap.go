package pool

import "github.com/omnipool-network/omnipool/lib"

// SwapObj is the wire-carried result of a swap's local phase: the net amount
// to deliver plus the exact fee breakdown the source committed, so the
// destination applies precisely what was quoted
type SwapObj struct {
	Amount      uint64 `json:"amount"`      // net shared-decimal amount for the recipient
	EqFee       uint64 `json:"eqFee"`       // equilibrium fee withheld at the source
	EqReward    uint64 `json:"eqReward"`    // equilibrium reward paid on top at the destination
	ProtocolFee uint64 `json:"protocolFee"` // protocol fee withheld at the source
	LpFee       uint64 `json:"lpFee"`       // provider fee folded into source liquidity
	LkbRemove   uint64 `json:"lkbRemove"`   // amount consumed from the source's belief of the destination
}

// Swap() is the local phase of a cross-chain swap: it pulls the asset from
// the sender, withholds the fee breakdown into the pool accumulators, and
// consumes the chain path's drawable balance by the amount promised outward.
// The returned SwapObj is handed to the transport for the remote phase.
func (s *State) Swap(poolId, dstChainId, dstPoolId uint64, from string, amountLD, minAmountLD uint64) (sw SwapObj, err lib.ErrorI) {
	if from == "" {
		return sw, ErrZeroAccount()
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return
	}
	if p.StopSwap {
		return sw, ErrSwapsHalted(poolId)
	}
	cp, err := p.GetActiveChainPath(dstChainId, dstPoolId)
	if err != nil {
		return
	}
	amountSD := p.AmountLDtoSD(amountLD)
	if amountSD == 0 {
		return sw, ErrZeroAmount()
	}
	feeLib, err := s.FeeLibrary(p)
	if err != nil {
		return
	}
	fee, err := feeLib.GetFees(poolId, dstPoolId, dstChainId, from, amountSD)
	if err != nil {
		return
	}
	// enforce the fee contract regardless of which library produced the breakdown
	if err = checkFees(fee, amountSD); err != nil {
		return
	}
	sw = SwapObj{
		Amount:      amountSD - fee.EqFee - fee.ProtocolFee - fee.LpFee,
		EqFee:       fee.EqFee,
		EqReward:    fee.EqReward,
		ProtocolFee: fee.ProtocolFee,
		LpFee:       fee.LpFee,
		LkbRemove:   amountSD - fee.LpFee + fee.EqReward,
	}
	if cp.Balance < sw.LkbRemove {
		return sw, ErrInsufficientBalance(dstChainId, dstPoolId, cp.Balance, sw.LkbRemove)
	}
	// slippage floor on what the recipient will actually receive
	if sw.Amount+sw.EqReward < p.AmountLDtoSD(minAmountLD) {
		return sw, ErrSlippageTooHigh(sw.Amount+sw.EqReward, p.AmountLDtoSD(minAmountLD))
	}
	tok, err := s.Token(p)
	if err != nil {
		return
	}
	if err = tok.Transfer(from, VaultAddress(p.Id), p.AmountSDtoLD(amountSD)); err != nil {
		return
	}
	// fee booking: lpFee to the providers, eqFee into the reward pool,
	// eqReward out of it, protocolFee into its accumulator
	if p.TotalLiquidity, err = lib.SafeAdd(p.TotalLiquidity, sw.LpFee, "swap.totalLiquidity"); err != nil {
		return
	}
	if p.EqFeePool, err = lib.SafeAdd(p.EqFeePool, sw.EqFee, "swap.eqFeePool"); err != nil {
		return
	}
	if p.EqFeePool, err = lib.SafeSub(p.EqFeePool, sw.EqReward, "swap.eqReward"); err != nil {
		return
	}
	if p.ProtocolFeeBalance, err = lib.SafeAdd(p.ProtocolFeeBalance, sw.ProtocolFee, "swap.protocolFee"); err != nil {
		return
	}
	cp.Balance -= sw.LkbRemove
	p.deltaOnEvent(p.DefaultSwapMode, p.SwapDeltaBP)
	if err = s.EmitEvent(&Event{Type: EventSwap, PoolId: poolId, DstChainId: dstChainId, DstPoolId: dstPoolId, Account: from, AmountSD: sw.Amount, ExtraSD: sw.LkbRemove}); err != nil {
		return
	}
	return sw, s.SetPool(p)
}

// SwapRemote() is the remote phase: the destination reconciles its outward
// promise against what the source consumed and releases the net amount plus
// the equilibrium reward to the recipient. Failures here are cached by the
// dispatch layer, never dropped.
func (s *State) SwapRemote(poolId, srcChainId, srcPoolId uint64, to string, sw SwapObj) (amountLD uint64, err lib.ErrorI) {
	if to == "" {
		return 0, ErrZeroAccount()
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return
	}
	cp, err := p.GetChainPath(srcChainId, srcPoolId)
	if err != nil {
		return
	}
	if cp.Lkb < sw.LkbRemove {
		return 0, ErrLkbUnderflow(srcChainId, srcPoolId, cp.Lkb, sw.LkbRemove)
	}
	cp.Lkb -= sw.LkbRemove
	amountLD = p.AmountSDtoLD(sw.Amount + sw.EqReward)
	tok, err := s.Token(p)
	if err != nil {
		return
	}
	if err = tok.Transfer(VaultAddress(p.Id), to, amountLD); err != nil {
		return
	}
	if err = s.EmitEvent(&Event{Type: EventSwapRemote, PoolId: poolId, DstChainId: srcChainId, DstPoolId: srcPoolId, Account: to, AmountSD: sw.Amount, ExtraSD: sw.EqReward}); err != nil {
		return
	}
	return amountLD, s.SetPool(p)
}
