package rpc

import (
	"net/http"
	"os"
	"runtime"

	"github.com/julienschmidt/httprouter"
	"github.com/omnipool-network/omnipool/bridge"
	"github.com/omnipool-network/omnipool/lib"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type liquidityRequest struct {
	PoolId   uint64 `json:"poolId"`
	Account  string `json:"account"`
	To       string `json:"to"`
	AmountLD uint64 `json:"amountLD"`
	AmountLP uint64 `json:"amountLP"`
}

type swapRequest struct {
	SrcPoolId   uint64          `json:"srcPoolId"`
	DstChainId  uint64          `json:"dstChainId"`
	DstPoolId   uint64          `json:"dstPoolId"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	AmountLD    uint64          `json:"amountLD"`
	AmountLP    uint64          `json:"amountLP"`
	MinAmountLD uint64          `json:"minAmountLD"`
	Refund      string          `json:"refund"`
	Params      bridge.TxParams `json:"params"`
}

type chainPathRequest struct {
	PoolId     uint64 `json:"poolId"`
	DstChainId uint64 `json:"dstChainId"`
	DstPoolId  uint64 `json:"dstPoolId"`
	Weight     uint64 `json:"weight"`
	Refund     string `json:"refund"`
}

type poolConfigRequest struct {
	PoolId          uint64 `json:"poolId"`
	MintFeeBP       uint64 `json:"mintFeeBP"`
	FeeLibrary      string `json:"feeLibrary"`
	StopSwap        bool   `json:"stopSwap"`
	Batched         bool   `json:"batched"`
	SwapDeltaBP     uint64 `json:"swapDeltaBP"`
	LpDeltaBP       uint64 `json:"lpDeltaBP"`
	DefaultSwapMode bool   `json:"defaultSwapMode"`
	DefaultLPMode   bool   `json:"defaultLPMode"`
	FullMode        bool   `json:"fullMode"`
	To              string `json:"to"`
}

type retryRequest struct {
	SrcChainId uint64 `json:"srcChainId"`
	SrcAddress string `json:"srcAddress"`
	Nonce      uint64 `json:"nonce"`
	Refund     string `json:"refund"`
}

// AddLiquidity() deposits into a local pool and reports the shares minted
func (s *Server) AddLiquidity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(liquidityRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	amountLP, err := s.bridge.AddLiquidity(request.PoolId, request.Account, request.AmountLD)
	if err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, amountLP)
}

// InstantRedeem() redeems shares against uncommitted credit and reports the amount released
func (s *Server) InstantRedeem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(liquidityRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	amountSD, err := s.bridge.InstantRedeemLocal(request.PoolId, request.Account, request.To, request.AmountLP)
	if err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, amountSD)
}

// Swap() runs the local swap phase and enqueues the remote leg
func (s *Server) Swap(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(swapRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	if err := s.bridge.Swap(request.SrcPoolId, request.DstChainId, request.DstPoolId,
		request.From, request.To, request.AmountLD, request.MinAmountLD, request.Refund, request.Params); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, "swap enqueued")
}

// RedeemRemote() burns shares locally and releases the asset at the destination
func (s *Server) RedeemRemote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(swapRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	if err := s.bridge.RedeemRemote(request.SrcPoolId, request.DstChainId, request.DstPoolId,
		request.From, request.To, request.AmountLP, request.MinAmountLD, request.Refund, request.Params); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, "redeem remote enqueued")
}

// RedeemLocal() opens the compensating redemption toward the destination
func (s *Server) RedeemLocal(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(swapRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	if err := s.bridge.RedeemLocal(request.SrcPoolId, request.DstChainId, request.DstPoolId,
		request.From, request.To, request.AmountLP, request.Refund, request.Params); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, "redeem local enqueued")
}

// SendCredits() flushes earmarked credits toward the counterpart chain path
func (s *Server) SendCredits(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(chainPathRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	if err := s.bridge.SendCredits(request.PoolId, request.DstChainId, request.DstPoolId, request.Refund); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, "credits enqueued")
}

// CreateChainPath() registers a new path on a local pool
func (s *Server) CreateChainPath(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.chainPathOp(w, r, func(request *chainPathRequest) lib.ErrorI {
		return s.bridge.State().CreateChainPath(request.PoolId, request.DstChainId, request.DstPoolId, request.Weight)
	})
}

// ActivateChainPath() flips a path to ready exactly once
func (s *Server) ActivateChainPath(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.chainPathOp(w, r, func(request *chainPathRequest) lib.ErrorI {
		return s.bridge.State().ActivateChainPath(request.PoolId, request.DstChainId, request.DstPoolId)
	})
}

// SetWeight() updates a path's rebalancing share
func (s *Server) SetWeight(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.chainPathOp(w, r, func(request *chainPathRequest) lib.ErrorI {
		return s.bridge.State().SetWeightForChainPath(request.PoolId, request.DstChainId, request.DstPoolId, request.Weight)
	})
}

// chainPathOp() reads chain path params and runs the operation in a ledger transaction
func (s *Server) chainPathOp(w http.ResponseWriter, r *http.Request, op func(*chainPathRequest) lib.ErrorI) {
	request := new(chainPathRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	if err := s.bridge.State().Transact(func() lib.ErrorI { return op(request) }); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, "done")
}

// SetFee() configures the deposit fee basis points
func (s *Server) SetFee(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.poolConfigOp(w, r, func(request *poolConfigRequest) lib.ErrorI {
		return s.bridge.State().SetFee(request.PoolId, request.MintFeeBP)
	})
}

// SetFeeLibrary() points the pool at a registered fee strategy
func (s *Server) SetFeeLibrary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.poolConfigOp(w, r, func(request *poolConfigRequest) lib.ErrorI {
		return s.bridge.State().SetFeeLibrary(request.PoolId, request.FeeLibrary)
	})
}

// SetSwapStop() toggles the swap halt flag
func (s *Server) SetSwapStop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.poolConfigOp(w, r, func(request *poolConfigRequest) lib.ErrorI {
		return s.bridge.State().SetSwapStop(request.PoolId, request.StopSwap)
	})
}

// SetDeltaParam() configures implicit rebalancing
func (s *Server) SetDeltaParam(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.poolConfigOp(w, r, func(request *poolConfigRequest) lib.ErrorI {
		return s.bridge.State().SetDeltaParam(request.PoolId, request.Batched,
			request.SwapDeltaBP, request.LpDeltaBP, request.DefaultSwapMode, request.DefaultLPMode)
	})
}

// CallDelta() runs an explicit rebalance
func (s *Server) CallDelta(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.poolConfigOp(w, r, func(request *poolConfigRequest) lib.ErrorI {
		return s.bridge.State().CallDelta(request.PoolId, request.FullMode)
	})
}

// WithdrawProtocolFee() pays out the accumulated protocol fees
func (s *Server) WithdrawProtocolFee(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.poolConfigOp(w, r, func(request *poolConfigRequest) lib.ErrorI {
		return s.bridge.State().WithdrawProtocolFeeBalance(request.PoolId, request.To)
	})
}

// WithdrawMintFee() pays out the accumulated deposit fees
func (s *Server) WithdrawMintFee(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.poolConfigOp(w, r, func(request *poolConfigRequest) lib.ErrorI {
		return s.bridge.State().WithdrawMintFeeBalance(request.PoolId, request.To)
	})
}

// poolConfigOp() reads pool config params and runs the operation in a ledger transaction
func (s *Server) poolConfigOp(w http.ResponseWriter, r *http.Request, op func(*poolConfigRequest) lib.ErrorI) {
	request := new(poolConfigRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	if err := s.bridge.State().Transact(func() lib.ErrorI { return op(request) }); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, "done")
}

// Retry() re-dispatches a cached payload through its original processing path
func (s *Server) Retry(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(retryRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	if err := s.bridge.Retry(request.SrcChainId, request.SrcAddress, request.Nonce); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, "retried")
}

// Revert() resolves a cached redeem-local hop by compensation
func (s *Server) Revert(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(retryRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	if err := s.bridge.Revert(request.SrcChainId, request.SrcAddress, request.Nonce, request.Refund); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, "reverted")
}

// resourceUsage is a snapshot of process and system utilization
type resourceUsage struct {
	ProcessCPUPercent float64 `json:"processCPUPercent"`
	ProcessRAMPercent float32 `json:"processRAMPercent"`
	Goroutines        int     `json:"goroutines"`
	Threads           int32   `json:"threads"`
	FDs               int32   `json:"fds"`
	SystemCPUPercent  float64 `json:"systemCPUPercent"`
	SystemRAMPercent  float64 `json:"systemRAMPercent"`
	SystemDiskPercent float64 `json:"systemDiskPercent"`
}

// Resource() reports process and system resource utilization
func (s *Server) Resource(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	usage := &resourceUsage{Goroutines: runtime.NumGoroutine()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		usage.ProcessCPUPercent, _ = p.CPUPercent()
		usage.ProcessRAMPercent, _ = p.MemoryPercent()
		usage.Threads, _ = p.NumThreads()
		usage.FDs, _ = p.NumFDs()
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) != 0 {
		usage.SystemCPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		usage.SystemRAMPercent = vm.UsedPercent
	}
	if d, err := disk.Usage("/"); err == nil {
		usage.SystemDiskPercent = d.UsedPercent
	}
	s.ok(w, usage)
}
