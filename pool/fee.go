package pool

import "github.com/omnipool-network/omnipool/lib"

// FeeObj is the ephemeral fee breakdown produced once per swap or remote
// redeem; its components are folded into pool accumulators, never persisted
type FeeObj struct {
	EqFee       uint64 `json:"eqFee"`       // equilibrium fee, accrued into eqFeePool
	EqReward    uint64 `json:"eqReward"`    // equilibrium reward, drawn from eqFeePool
	ProtocolFee uint64 `json:"protocolFee"` // accrued into protocolFeeBalance
	LpFee       uint64 `json:"lpFee"`       // accrued into totalLiquidity for the providers
}

// FeeLibraryI is the pluggable fee strategy consumed as a black box.
// GetFees must be deterministic for a given ledger state so that the quoted
// breakdown the user approved matches what is actually debited.
type FeeLibraryI interface {
	// Name() identifies the strategy in pool configuration
	Name() string
	// GetFees() maps a proposed transfer to a fee breakdown; called once before any mutation
	GetFees(srcPoolId, dstPoolId, dstChainId uint64, from string, amountSD uint64) (FeeObj, lib.ErrorI)
}

// checkFees() enforces the fee strategy contract; violation is a fatal
// configuration bug, not a recoverable condition
func checkFees(fee FeeObj, amountSD uint64) lib.ErrorI {
	total, err := lib.SafeAdd(fee.EqFee, fee.ProtocolFee, "fee.check")
	if err != nil {
		return err
	}
	if total, err = lib.SafeAdd(total, fee.LpFee, "fee.check"); err != nil {
		return err
	}
	if total > amountSD {
		return ErrFeesExceedAmount(total, amountSD)
	}
	return nil
}

// enforce the FeeLibraryI interface
var _ FeeLibraryI = &FlatFeeLibrary{}

// FlatFeeLibrary is the default strategy: flat basis-point fees, with an
// equilibrium reward paid out of the accumulated eqFeePool whenever the
// destination path sits below its ideal balance
type FlatFeeLibrary struct {
	state       *State
	EqFeeBP     uint64
	EqRewardBP  uint64
	ProtocolBP  uint64
	LpBP        uint64
}

// NewFlatFeeLibrary() creates the default basis-point fee strategy over the registry
func NewFlatFeeLibrary(state *State, eqFeeBP, eqRewardBP, protocolBP, lpBP uint64) *FlatFeeLibrary {
	return &FlatFeeLibrary{state: state, EqFeeBP: eqFeeBP, EqRewardBP: eqRewardBP, ProtocolBP: protocolBP, LpBP: lpBP}
}

// Name() identifies the strategy in pool configuration
func (f *FlatFeeLibrary) Name() string { return "flat" }

// GetFees() computes flat basis-point fees on the amount; the equilibrium
// reward is capped by the accumulated eqFeePool and paid only toward paths
// below their ideal balance
func (f *FlatFeeLibrary) GetFees(srcPoolId, dstPoolId, dstChainId uint64, _ string, amountSD uint64) (fee FeeObj, err lib.ErrorI) {
	p, err := f.state.GetPool(srcPoolId)
	if err != nil {
		return
	}
	cp, err := p.GetChainPath(dstChainId, dstPoolId)
	if err != nil {
		return
	}
	fee.EqFee = lib.BasisPoints(amountSD, f.EqFeeBP)
	fee.ProtocolFee = lib.BasisPoints(amountSD, f.ProtocolBP)
	fee.LpFee = lib.BasisPoints(amountSD, f.LpBP)
	// reward flows only while the path is under-collateralized
	if cp.Balance+cp.Credits < cp.IdealBalance {
		fee.EqReward = lib.BasisPoints(amountSD, f.EqRewardBP)
		if fee.EqReward > p.EqFeePool {
			fee.EqReward = p.EqFeePool
		}
	}
	err = checkFees(fee, amountSD)
	return
}

// enforce the FeeLibraryI interface
var _ FeeLibraryI = &ZeroFeeLibrary{}

// ZeroFeeLibrary charges nothing; useful for closed deployments and tests
type ZeroFeeLibrary struct{}

// Name() identifies the strategy in pool configuration
func (f *ZeroFeeLibrary) Name() string { return "zero" }

// GetFees() returns an empty breakdown
func (f *ZeroFeeLibrary) GetFees(_, _, _ uint64, _ string, _ uint64) (FeeObj, lib.ErrorI) {
	return FeeObj{}, nil
}
