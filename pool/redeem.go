package pool

import "github.com/omnipool-network/omnipool/lib"

// RedeemRemote() is the local phase of a burn-then-credit redemption: the
// caller's shares are burned immediately and the destination is instructed to
// release the underlying asset. Whether the destination can actually cover
// the release is checked remotely, since the local belief may be stale.
func (s *State) RedeemRemote(poolId, dstChainId, dstPoolId uint64, from string, amountLP, minAmountLD uint64) (sw SwapObj, err lib.ErrorI) {
	if from == "" {
		return sw, ErrZeroAccount()
	}
	if amountLP == 0 {
		return sw, ErrZeroAmount()
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return
	}
	cp, err := p.GetActiveChainPath(dstChainId, dstPoolId)
	if err != nil {
		return
	}
	amountSD, err := s.burnShares(p, from, amountLP)
	if err != nil {
		return
	}
	feeLib, err := s.FeeLibrary(p)
	if err != nil {
		return
	}
	fee, err := feeLib.GetFees(poolId, dstPoolId, dstChainId, from, amountSD)
	if err != nil {
		return
	}
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
	if sw.Amount+sw.EqReward < p.AmountLDtoSD(minAmountLD) {
		return sw, ErrSlippageTooHigh(sw.Amount+sw.EqReward, p.AmountLDtoSD(minAmountLD))
	}
	if p.TotalLiquidity, err = lib.SafeAdd(p.TotalLiquidity, sw.LpFee, "redeemRemote.totalLiquidity"); err != nil {
		return
	}
	if p.EqFeePool, err = lib.SafeAdd(p.EqFeePool, sw.EqFee, "redeemRemote.eqFeePool"); err != nil {
		return
	}
	if p.EqFeePool, err = lib.SafeSub(p.EqFeePool, sw.EqReward, "redeemRemote.eqReward"); err != nil {
		return
	}
	if p.ProtocolFeeBalance, err = lib.SafeAdd(p.ProtocolFeeBalance, sw.ProtocolFee, "redeemRemote.protocolFee"); err != nil {
		return
	}
	cp.Balance -= sw.LkbRemove
	p.deltaOnEvent(p.DefaultSwapMode, p.SwapDeltaBP)
	if err = s.EmitEvent(&Event{Type: EventBurn, PoolId: poolId, DstChainId: dstChainId, DstPoolId: dstPoolId, Account: from, AmountSD: sw.Amount, AmountLP: amountLP}); err != nil {
		return
	}
	return sw, s.SetPool(p)
}

// RedeemLocal() is the first hop of the compensating redemption: the shares
// are burned optimistically before the destination has confirmed anything.
// If the destination cannot cover the request, the third hop re-mints the
// uncovered remainder; the burn itself is never rolled back.
func (s *State) RedeemLocal(poolId, dstChainId, dstPoolId uint64, from string, amountLP uint64) (amountSD uint64, err lib.ErrorI) {
	if from == "" {
		return 0, ErrZeroAccount()
	}
	if amountLP == 0 {
		return 0, ErrZeroAmount()
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return
	}
	// the path must exist; readiness is judged by the destination
	if _, err = p.GetChainPath(dstChainId, dstPoolId); err != nil {
		return
	}
	if amountSD, err = s.burnShares(p, from, amountLP); err != nil {
		return
	}
	if err = s.EmitEvent(&Event{Type: EventRedeemLocal, PoolId: poolId, DstChainId: dstChainId, DstPoolId: dstPoolId, Account: from, AmountSD: amountSD, AmountLP: amountLP}); err != nil {
		return
	}
	return amountSD, s.SetPool(p)
}

// RedeemLocalCheckOnRemote() is the second hop, executed by the destination:
// it covers as much of the request as its own drawable balance allows and
// reports the uncovered remainder back for compensation. A path that was
// never activated covers nothing.
func (s *State) RedeemLocalCheckOnRemote(poolId, srcChainId, srcPoolId, amountSD uint64) (swapAmount, mintAmount uint64, err lib.ErrorI) {
	p, err := s.GetPool(poolId)
	if err != nil {
		return
	}
	cp, err := p.GetChainPath(srcChainId, srcPoolId)
	if err != nil {
		return
	}
	switch {
	case !cp.Ready:
		mintAmount = amountSD
	case amountSD > cp.Balance:
		swapAmount, mintAmount = cp.Balance, amountSD-cp.Balance
		cp.Balance = 0
	default:
		swapAmount = amountSD
		cp.Balance -= amountSD
	}
	if err = s.EmitEvent(&Event{Type: EventWithdrawRemote, PoolId: poolId, DstChainId: srcChainId, DstPoolId: srcPoolId, AmountSD: swapAmount, ExtraSD: mintAmount}); err != nil {
		return
	}
	return swapAmount, mintAmount, s.SetPool(p)
}

// RedeemLocalCallback() is the third hop, back on the origin chain: the
// covered amount is released from the vault and the uncovered amount is
// re-minted as shares, exactly compensating the optimistic burn
func (s *State) RedeemLocalCallback(poolId, srcChainId, srcPoolId uint64, to string, swapAmountSD, mintAmountSD uint64) (err lib.ErrorI) {
	if to == "" {
		return ErrZeroAccount()
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return
	}
	cp, err := p.GetChainPath(srcChainId, srcPoolId)
	if err != nil {
		return
	}
	mintedLP := uint64(0)
	if mintAmountSD > 0 {
		if mintedLP, err = s.mintShares(p, to, mintAmountSD); err != nil {
			return
		}
	}
	if swapAmountSD > 0 {
		if cp.Lkb < swapAmountSD {
			return ErrLkbUnderflow(srcChainId, srcPoolId, cp.Lkb, swapAmountSD)
		}
		cp.Lkb -= swapAmountSD
		tok, tokenErr := s.Token(p)
		if tokenErr != nil {
			return tokenErr
		}
		if err = tok.Transfer(VaultAddress(p.Id), to, p.AmountSDtoLD(swapAmountSD)); err != nil {
			return
		}
	}
	if err = s.EmitEvent(&Event{Type: EventRedeemLocalCallback, PoolId: poolId, DstChainId: srcChainId, DstPoolId: srcPoolId, Account: to, AmountSD: swapAmountSD, AmountLP: mintedLP, ExtraSD: mintAmountSD}); err != nil {
		return
	}
	return s.SetPool(p)
}
