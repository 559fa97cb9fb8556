package pool

import (
	"sort"

	"github.com/omnipool-network/omnipool/lib"
)

/*
	Delta rebalancing keeps each active chain path's balance proportional to
	its weight without promising more than the pool actually holds.

	Deficit paths are filled from the pool's uncommitted delta credit in
	ascending order of deficit, so small gaps close first and a shallow credit
	reserve still shrinks the worst-case spread. Partial coverage is valid.
	Full mode additionally spreads any surplus credit across the active paths
	pro rata by weight. Paths that were never activated are skipped entirely.

	Conservation holds at every step: deltaCredit + Σcredits never changes;
	rebalancing only reassigns uncommitted liquidity to committed.
*/

// CallDelta() runs an explicit rebalance in the requested mode
func (s *State) CallDelta(poolId uint64, fullMode bool) lib.ErrorI {
	p, err := s.GetPool(poolId)
	if err != nil {
		return err
	}
	p.delta(fullMode)
	return s.SetPool(p)
}

// deltaOnEvent() runs the configured implicit rebalance after a liquidity or
// swap event: immediately when batching is off, otherwise only once the
// uncommitted credit crosses the basis-point share of total liquidity
func (p *Pool) deltaOnEvent(fullMode bool, thresholdBP uint64) {
	if !p.Batched || p.DeltaCredit > lib.BasisPoints(p.TotalLiquidity, thresholdBP) {
		p.delta(fullMode)
	}
}

// delta() redistributes the pool's uncommitted credit toward weight-proportional targets
func (p *Pool) delta(fullMode bool) {
	totalWeight := p.TotalWeight()
	if totalWeight == 0 {
		return
	}
	p.refreshIdealBalances()
	// collect the active paths below their ideal balance
	type deficitPath struct {
		cp      *ChainPath
		deficit uint64
	}
	var deficits []deficitPath
	for i := range p.ChainPaths {
		cp := &p.ChainPaths[i]
		if !cp.Ready {
			continue
		}
		committed := cp.Balance + cp.Credits
		if committed < cp.IdealBalance {
			deficits = append(deficits, deficitPath{cp: cp, deficit: cp.IdealBalance - committed})
		}
	}
	// fill in ascending order of deficit until the credit runs out
	sort.SliceStable(deficits, func(i, j int) bool { return deficits[i].deficit < deficits[j].deficit })
	for _, d := range deficits {
		if p.DeltaCredit == 0 {
			break
		}
		amount := d.deficit
		if amount > p.DeltaCredit {
			amount = p.DeltaCredit
		}
		d.cp.Credits += amount
		p.DeltaCredit -= amount
	}
	if !fullMode || p.DeltaCredit == 0 {
		return
	}
	// full mode commits the surplus pro rata by weight; the remainder from
	// integer division stays uncommitted
	surplus := p.DeltaCredit
	for i := range p.ChainPaths {
		cp := &p.ChainPaths[i]
		if !cp.Ready {
			continue
		}
		amount := lib.SafeMulDiv(surplus, cp.Weight, totalWeight)
		cp.Credits += amount
		p.DeltaCredit -= amount
	}
}

// refreshIdealBalances() recomputes the weight-proportional targets of the active paths
func (p *Pool) refreshIdealBalances() {
	totalWeight := p.TotalWeight()
	if totalWeight == 0 {
		return
	}
	for i := range p.ChainPaths {
		cp := &p.ChainPaths[i]
		if !cp.Ready {
			continue
		}
		cp.IdealBalance = lib.SafeMulDiv(p.TotalLiquidity, cp.Weight, totalWeight)
	}
}
