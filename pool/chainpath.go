package pool

import "github.com/omnipool-network/omnipool/lib"

// CreateChainPath() registers a new accounting record toward a counterpart
// pool; the path starts inactive with all balances zero and a duplicate is rejected
func (s *State) CreateChainPath(poolId, dstChainId, dstPoolId, weight uint64) lib.ErrorI {
	p, err := s.GetPool(poolId)
	if err != nil {
		return err
	}
	if _, err = p.GetChainPath(dstChainId, dstPoolId); err == nil {
		return ErrDuplicateChainPath(dstChainId, dstPoolId)
	}
	p.ChainPaths = append(p.ChainPaths, ChainPath{
		DstChainId: dstChainId,
		DstPoolId:  dstPoolId,
		Weight:     weight,
	})
	if err = s.EmitEvent(&Event{Type: EventChainPathUpdate, PoolId: poolId, DstChainId: dstChainId, DstPoolId: dstPoolId, AmountSD: weight}); err != nil {
		return err
	}
	return s.SetPool(p)
}

// ActivateChainPath() flips a path to ready exactly once; activation is the
// acknowledgement from the remote side and is irreversible
func (s *State) ActivateChainPath(poolId, dstChainId, dstPoolId uint64) lib.ErrorI {
	p, err := s.GetPool(poolId)
	if err != nil {
		return err
	}
	cp, err := p.GetChainPath(dstChainId, dstPoolId)
	if err != nil {
		return err
	}
	if cp.Ready {
		return ErrChainPathAlreadyActive(dstChainId, dstPoolId)
	}
	cp.Ready = true
	return s.SetPool(p)
}

// SetWeightForChainPath() updates a path's rebalancing share and refreshes
// the ideal balances of the active paths under the new weights
func (s *State) SetWeightForChainPath(poolId, dstChainId, dstPoolId, weight uint64) lib.ErrorI {
	p, err := s.GetPool(poolId)
	if err != nil {
		return err
	}
	if len(p.ChainPaths) == 0 {
		return ErrNoChainPaths(poolId)
	}
	cp, err := p.GetChainPath(dstChainId, dstPoolId)
	if err != nil {
		return err
	}
	cp.Weight = weight
	p.refreshIdealBalances()
	return s.SetPool(p)
}

// CreditChainPath() applies a credit delivered by the counterpart: the local
// belief of drawable liquidity grows by the transmitted credits, and the
// sender's ideal-balance view is indexed for audit
func (s *State) CreditChainPath(poolId, srcChainId, srcPoolId uint64, c CreditObj) lib.ErrorI {
	p, err := s.GetPool(poolId)
	if err != nil {
		return err
	}
	cp, err := p.GetChainPath(srcChainId, srcPoolId)
	if err != nil {
		return err
	}
	if cp.Balance, err = lib.SafeAdd(cp.Balance, c.Credits, "creditChainPath.balance"); err != nil {
		return err
	}
	if err = s.EmitEvent(&Event{Type: EventCreditChainPath, PoolId: poolId, DstChainId: srcChainId, DstPoolId: srcPoolId, AmountSD: c.Credits, ExtraSD: c.IdealBalance}); err != nil {
		return err
	}
	return s.SetPool(p)
}

// SendCredits() flushes a path's earmarked credits into its outward promise
// and returns the credit object to be transmitted to the counterpart
func (s *State) SendCredits(poolId, dstChainId, dstPoolId uint64) (c CreditObj, err lib.ErrorI) {
	p, err := s.GetPool(poolId)
	if err != nil {
		return
	}
	cp, err := p.GetActiveChainPath(dstChainId, dstPoolId)
	if err != nil {
		return
	}
	if cp.Lkb, err = lib.SafeAdd(cp.Lkb, cp.Credits, "sendCredits.lkb"); err != nil {
		return
	}
	totalWeight := p.TotalWeight()
	if totalWeight == 0 {
		return c, ErrZeroTotalWeight(poolId)
	}
	c.IdealBalance = lib.SafeMulDiv(p.TotalLiquidity, cp.Weight, totalWeight)
	c.Credits = cp.Credits
	cp.Credits = 0
	if err = s.EmitEvent(&Event{Type: EventSendCredits, PoolId: poolId, DstChainId: dstChainId, DstPoolId: dstPoolId, AmountSD: c.Credits, ExtraSD: c.IdealBalance}); err != nil {
		return
	}
	return c, s.SetPool(p)
}
