package pool

import "github.com/omnipool-network/omnipool/lib"

// AddLiquidity() deposits the underlying asset into a pool and mints
// liquidity shares pro rata to the existing supply (1:1 when supply is zero).
// The deposit lands in delta credit and triggers a liquidity-mode rebalance.
func (s *State) AddLiquidity(poolId uint64, provider string, amountLD uint64) (amountLP uint64, err lib.ErrorI) {
	if provider == "" {
		return 0, ErrZeroAccount()
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return
	}
	amountSD := p.AmountLDtoSD(amountLD)
	if amountSD == 0 {
		return 0, ErrZeroAmount()
	}
	tok, err := s.Token(p)
	if err != nil {
		return
	}
	// pull only the convertible amount; the dust stays in the provider's wallet
	if err = tok.Transfer(provider, VaultAddress(p.Id), p.AmountSDtoLD(amountSD)); err != nil {
		return
	}
	// deposit fee
	mintFee := lib.BasisPoints(amountSD, p.MintFeeBP)
	p.MintFeeBalance += mintFee
	amountSD -= mintFee
	if amountLP, err = s.mintShares(p, provider, amountSD); err != nil {
		return
	}
	if p.DeltaCredit, err = lib.SafeAdd(p.DeltaCredit, amountSD, "addLiquidity.deltaCredit"); err != nil {
		return
	}
	p.deltaOnEvent(p.DefaultLPMode, p.LpDeltaBP)
	if err = s.EmitEvent(&Event{Type: EventMint, PoolId: poolId, Account: provider, AmountSD: amountSD, AmountLP: amountLP, ExtraSD: mintFee}); err != nil {
		return
	}
	return amountLP, s.SetPool(p)
}

// InstantRedeemLocal() redeems shares against the pool's uncommitted delta
// credit only. A request beyond the available credit is silently capped, never
// rejected; the only failure modes are an empty pool and an asset transfer failure.
func (s *State) InstantRedeemLocal(poolId uint64, from, to string, amountLP uint64) (amountSD uint64, err lib.ErrorI) {
	if from == "" || to == "" {
		return 0, ErrZeroAccount()
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return
	}
	capLP, err := p.AmountSDtoLP(p.DeltaCredit)
	if err != nil {
		return
	}
	if amountLP > capLP {
		amountLP = capLP
	}
	if amountLP == 0 {
		return 0, nil
	}
	if amountSD, err = s.burnShares(p, from, amountLP); err != nil {
		return
	}
	if p.DeltaCredit, err = lib.SafeSub(p.DeltaCredit, amountSD, "instantRedeem.deltaCredit"); err != nil {
		return
	}
	tok, err := s.Token(p)
	if err != nil {
		return
	}
	if err = tok.Transfer(VaultAddress(p.Id), to, p.AmountSDtoLD(amountSD)); err != nil {
		return
	}
	if err = s.EmitEvent(&Event{Type: EventInstantRedeemLocal, PoolId: poolId, Account: to, AmountSD: amountSD, AmountLP: amountLP}); err != nil {
		return
	}
	return amountSD, s.SetPool(p)
}

// mintShares() grows the pool by amountSD and mints the pro-rata share amount to the recipient
func (s *State) mintShares(p *Pool, to string, amountSD uint64) (amountLP uint64, err lib.ErrorI) {
	if p.TotalSupply == 0 {
		amountLP = amountSD
	} else {
		amountLP = lib.SafeMulDiv(amountSD, p.TotalSupply, p.TotalLiquidity)
	}
	if p.TotalLiquidity, err = lib.SafeAdd(p.TotalLiquidity, amountSD, "mintShares.totalLiquidity"); err != nil {
		return
	}
	if p.TotalSupply, err = lib.SafeAdd(p.TotalSupply, amountLP, "mintShares.totalSupply"); err != nil {
		return
	}
	return amountLP, s.ShareToken(p).Mint(to, amountLP)
}

// burnShares() destroys the holder's shares and shrinks the pool by the asset amount they redeem for
func (s *State) burnShares(p *Pool, from string, amountLP uint64) (amountSD uint64, err lib.ErrorI) {
	if amountSD, err = p.AmountLPtoSD(amountLP); err != nil {
		return
	}
	if err = s.ShareToken(p).Burn(from, amountLP); err != nil {
		return
	}
	if p.TotalSupply, err = lib.SafeSub(p.TotalSupply, amountLP, "burnShares.totalSupply"); err != nil {
		return
	}
	if p.TotalLiquidity, err = lib.SafeSub(p.TotalLiquidity, amountSD, "burnShares.totalLiquidity"); err != nil {
		return
	}
	return
}

// WithdrawProtocolFeeBalance() pays the accumulated protocol fees out of the
// vault; a zero balance is a no-op
func (s *State) WithdrawProtocolFeeBalance(poolId uint64, to string) lib.ErrorI {
	return s.withdrawFees(poolId, to, func(p *Pool) *uint64 { return &p.ProtocolFeeBalance })
}

// WithdrawMintFeeBalance() pays the accumulated deposit fees out of the
// vault; a zero balance is a no-op
func (s *State) WithdrawMintFeeBalance(poolId uint64, to string) lib.ErrorI {
	return s.withdrawFees(poolId, to, func(p *Pool) *uint64 { return &p.MintFeeBalance })
}

// withdrawFees() zeroes the selected accumulator and transfers its value out of the vault
func (s *State) withdrawFees(poolId uint64, to string, accumulator func(p *Pool) *uint64) lib.ErrorI {
	if to == "" {
		return ErrZeroAccount()
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return err
	}
	balance := accumulator(p)
	if *balance == 0 {
		return nil
	}
	amountSD := *balance
	*balance = 0
	tok, err := s.Token(p)
	if err != nil {
		return err
	}
	if err = tok.Transfer(VaultAddress(p.Id), to, p.AmountSDtoLD(amountSD)); err != nil {
		return err
	}
	if err = s.EmitEvent(&Event{Type: EventFeeWithdrawal, PoolId: poolId, Account: to, AmountSD: amountSD}); err != nil {
		return err
	}
	return s.SetPool(p)
}

// SetFee() configures the deposit fee in basis points, capped at the denominator
func (s *State) SetFee(poolId, mintFeeBP uint64) lib.ErrorI {
	if mintFeeBP > lib.BasisPointDenominator {
		return ErrInvalidBasisPoints(mintFeeBP)
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return err
	}
	p.MintFeeBP = mintFeeBP
	return s.SetPool(p)
}

// SetFeeLibrary() points the pool at a registered fee strategy
func (s *State) SetFeeLibrary(poolId uint64, name string) lib.ErrorI {
	if _, found := s.feeLibs[name]; !found {
		return ErrUnknownFeeLibrary(name)
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return err
	}
	p.FeeLibrary = name
	return s.SetPool(p)
}

// SetSwapStop() toggles the swap halt flag
func (s *State) SetSwapStop(poolId uint64, stop bool) lib.ErrorI {
	p, err := s.GetPool(poolId)
	if err != nil {
		return err
	}
	p.StopSwap = stop
	return s.SetPool(p)
}

// SetDeltaParam() configures the implicit rebalancing behavior
func (s *State) SetDeltaParam(poolId uint64, batched bool, swapDeltaBP, lpDeltaBP uint64, defaultSwapMode, defaultLPMode bool) lib.ErrorI {
	if swapDeltaBP > lib.BasisPointDenominator {
		return ErrInvalidBasisPoints(swapDeltaBP)
	}
	if lpDeltaBP > lib.BasisPointDenominator {
		return ErrInvalidBasisPoints(lpDeltaBP)
	}
	p, err := s.GetPool(poolId)
	if err != nil {
		return err
	}
	p.Batched, p.SwapDeltaBP, p.LpDeltaBP = batched, swapDeltaBP, lpDeltaBP
	p.DefaultSwapMode, p.DefaultLPMode = defaultSwapMode, defaultLPMode
	return s.SetPool(p)
}
