// Package rpc exposes the pool engine over HTTP: a public query surface and
// an owner-gated administrative surface on separate ports.
package rpc

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/omnipool-network/omnipool/bridge"
	"github.com/omnipool-network/omnipool/lib"
	"github.com/rs/cors"
)

const (
	// query routes
	PoolRoutePath          = "/v1/query/pool"
	PoolsRoutePath         = "/v1/query/pools"
	EventsRoutePath        = "/v1/query/events"
	CachedPayloadRoutePath = "/v1/query/cached-payload"

	// admin routes
	AddLiquidityRoutePath      = "/v1/admin/add-liquidity"
	SwapRoutePath              = "/v1/admin/swap"
	RedeemRemoteRoutePath      = "/v1/admin/redeem-remote"
	RedeemLocalRoutePath       = "/v1/admin/redeem-local"
	InstantRedeemRoutePath     = "/v1/admin/instant-redeem"
	SendCreditsRoutePath       = "/v1/admin/send-credits"
	CreateChainPathRoutePath   = "/v1/admin/create-chain-path"
	ActivateChainPathRoutePath = "/v1/admin/activate-chain-path"
	SetWeightRoutePath         = "/v1/admin/set-weight"
	SetFeeRoutePath            = "/v1/admin/set-fee"
	SetFeeLibraryRoutePath     = "/v1/admin/set-fee-library"
	SetSwapStopRoutePath       = "/v1/admin/set-swap-stop"
	SetDeltaParamRoutePath     = "/v1/admin/set-delta-param"
	CallDeltaRoutePath         = "/v1/admin/call-delta"
	WithdrawProtocolRoutePath  = "/v1/admin/withdraw-protocol-fee"
	WithdrawMintRoutePath      = "/v1/admin/withdraw-mint-fee"
	RetryRoutePath             = "/v1/admin/retry"
	RevertRoutePath            = "/v1/admin/revert"
	ResourceRoutePath          = "/v1/admin/resource"
)

// Server hosts the query and admin HTTP APIs over one bridge
type Server struct {
	bridge *bridge.Bridge
	config lib.Config
	log    lib.LoggerI
}

// NewServer() creates an rpc server over the bridge
func NewServer(b *bridge.Bridge, config lib.Config, log lib.LoggerI) *Server {
	return &Server{bridge: b, config: config, log: log}
}

// Start() serves the query API on RPCPort and the admin API on AdminPort
func (s *Server) Start() {
	go s.serve(s.config.RPCPort, s.queryRouter())
	go s.serve(s.config.AdminPort, s.adminRouter())
	s.log.Infof("rpc server started on ports %s (query) and %s (admin)", s.config.RPCPort, s.config.AdminPort)
}

// queryRouter() wires the public read-only routes
func (s *Server) queryRouter() *httprouter.Router {
	router := httprouter.New()
	router.POST(PoolRoutePath, s.Pool)
	router.POST(PoolsRoutePath, s.Pools)
	router.POST(EventsRoutePath, s.Events)
	router.POST(CachedPayloadRoutePath, s.CachedPayload)
	return router
}

// adminRouter() wires the owner-gated routes
func (s *Server) adminRouter() *httprouter.Router {
	router := httprouter.New()
	router.POST(AddLiquidityRoutePath, s.AddLiquidity)
	router.POST(SwapRoutePath, s.Swap)
	router.POST(RedeemRemoteRoutePath, s.RedeemRemote)
	router.POST(RedeemLocalRoutePath, s.RedeemLocal)
	router.POST(InstantRedeemRoutePath, s.InstantRedeem)
	router.POST(SendCreditsRoutePath, s.SendCredits)
	router.POST(CreateChainPathRoutePath, s.CreateChainPath)
	router.POST(ActivateChainPathRoutePath, s.ActivateChainPath)
	router.POST(SetWeightRoutePath, s.SetWeight)
	router.POST(SetFeeRoutePath, s.SetFee)
	router.POST(SetFeeLibraryRoutePath, s.SetFeeLibrary)
	router.POST(SetSwapStopRoutePath, s.SetSwapStop)
	router.POST(SetDeltaParamRoutePath, s.SetDeltaParam)
	router.POST(CallDeltaRoutePath, s.CallDelta)
	router.POST(WithdrawProtocolRoutePath, s.WithdrawProtocolFee)
	router.POST(WithdrawMintRoutePath, s.WithdrawMintFee)
	router.POST(RetryRoutePath, s.Retry)
	router.POST(RevertRoutePath, s.Revert)
	router.GET(ResourceRoutePath, s.Resource)
	return router
}

// serve() blocks serving the router on the port with cors and timeouts applied
func (s *Server) serve(port string, router *httprouter.Router) {
	timeout := time.Duration(s.config.TimeoutS) * time.Second
	server := &http.Server{
		Addr:              net.JoinHostPort("", port),
		Handler:           cors.AllowAll().Handler(router),
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	if err := server.ListenAndServe(); err != nil {
		s.log.Fatalf("rpc server on port %s stopped: %s", port, err.Error())
	}
}

// readRequest() decodes the json body into the params pointer
func readRequest(r *http.Request, params any) lib.ErrorI {
	if err := json.NewDecoder(r.Body).Decode(params); err != nil {
		return ErrInvalidRequest(err)
	}
	return nil
}

// write() marshals the payload as json with the given status code
func (s *Server) write(w http.ResponseWriter, payload any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	bz, err := lib.MarshalJSONIndent(payload)
	if err != nil {
		s.log.Errorf("rpc response marshal failed: %s", err.Error())
		return
	}
	if _, e := w.Write(bz); e != nil {
		s.log.Errorf("rpc response write failed: %s", e.Error())
	}
}

// ok() writes a 200 response
func (s *Server) ok(w http.ResponseWriter, payload any) { s.write(w, payload, http.StatusOK) }

// err() writes the coded error as a 400 response
func (s *Server) err(w http.ResponseWriter, err lib.ErrorI) {
	s.write(w, err, http.StatusBadRequest)
}
