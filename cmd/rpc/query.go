package rpc

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/omnipool-network/omnipool/lib"
	"github.com/omnipool-network/omnipool/pool"
)

type poolRequest struct {
	PoolId uint64 `json:"poolId"`
}

type eventsRequest struct {
	Limit int `json:"limit"`
}

type cachedPayloadRequest struct {
	SrcChainId uint64 `json:"srcChainId"`
	SrcAddress string `json:"srcAddress"`
	Nonce      uint64 `json:"nonce"`
}

// Pool() returns one pool record by identifier
func (s *Server) Pool(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(poolRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	state := s.bridge.State()
	var p *pool.Pool
	if err := state.Transact(func() (e lib.ErrorI) {
		p, e = state.GetPool(request.PoolId)
		return
	}); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, p)
}

// Pools() returns every pool record on this chain
func (s *Server) Pools(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	state := s.bridge.State()
	var pools []*pool.Pool
	if err := state.Transact(func() (e lib.ErrorI) {
		pools, e = state.GetPools()
		return
	}); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, pools)
}

// Events() returns indexed ledger events in sequence order
func (s *Server) Events(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(eventsRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	state := s.bridge.State()
	var events []*pool.Event
	if err := state.Transact(func() (e lib.ErrorI) {
		events, e = state.GetEvents(request.Limit)
		return
	}); err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, events)
}

// CachedPayload() returns the pending-failure record for a delivery key;
// a null response means the key already resolved or never failed
func (s *Server) CachedPayload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(cachedPayloadRequest)
	if err := readRequest(r, request); err != nil {
		s.err(w, err)
		return
	}
	record, err := s.bridge.GetCachedPayload(request.SrcChainId, request.SrcAddress, request.Nonce)
	if err != nil {
		s.err(w, err)
		return
	}
	s.ok(w, record)
}
