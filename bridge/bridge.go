// Package bridge is the cross-chain boundary of the pool engine: it runs the
// local phase of each protocol, hands payloads to the transport, authorizes
// and dispatches inbound deliveries, and caches every processing failure for
// retry or compensation.
package bridge

import (
	"github.com/omnipool-network/omnipool/lib"
	"github.com/omnipool-network/omnipool/pool"
)

// enforce the ReceiverI interface
var _ ReceiverI = &Bridge{}

// Bridge couples one chain's pool registry to the transport layer
type Bridge struct {
	state     *pool.State
	store     lib.RWStoreI // failure cache storage, outside the ledger transaction
	transport TransportI
	config    lib.TransportConfig
	log       lib.LoggerI
}

// New() creates the bridge over a pool registry and a transport handle
func New(state *pool.State, store lib.RWStoreI, transport TransportI, config lib.TransportConfig, log lib.LoggerI) *Bridge {
	return &Bridge{state: state, store: store, transport: transport, config: config, log: log}
}

// UseTransport() binds the transport handle; registration with the transport
// needs the bridge as receiver first, so the handle arrives after construction
func (b *Bridge) UseTransport(t TransportI) { b.transport = t }

// State() exposes the pool registry for queries and local-only administration
func (b *Bridge) State() *pool.State { return b.state }

// AddLiquidity() deposits into a local pool; purely local, no message leaves the chain
func (b *Bridge) AddLiquidity(poolId uint64, provider string, amountLD uint64) (amountLP uint64, err lib.ErrorI) {
	err = b.state.Transact(func() (e lib.ErrorI) {
		amountLP, e = b.state.AddLiquidity(poolId, provider, amountLD)
		return
	})
	return
}

// InstantRedeemLocal() redeems against uncommitted credit; purely local
func (b *Bridge) InstantRedeemLocal(poolId uint64, from, to string, amountLP uint64) (amountSD uint64, err lib.ErrorI) {
	err = b.state.Transact(func() (e lib.ErrorI) {
		amountSD, e = b.state.InstantRedeemLocal(poolId, from, to, amountLP)
		return
	})
	return
}

// Swap() runs the local swap phase and enqueues the remote leg; the ledger
// mutation and the transport handoff commit or abort together
func (b *Bridge) Swap(srcPoolId, dstChainId, dstPoolId uint64, from, to string, amountLD, minAmountLD uint64, refundAddress string, params TxParams) lib.ErrorI {
	return b.state.Transact(func() lib.ErrorI {
		sw, err := b.state.Swap(srcPoolId, dstChainId, dstPoolId, from, amountLD, minAmountLD)
		if err != nil {
			return err
		}
		return b.send(dstChainId, &PayloadSwap{SrcPoolId: srcPoolId, DstPoolId: dstPoolId, To: to, Swap: sw}, refundAddress, params)
	})
}

// RedeemRemote() burns shares locally and instructs the destination to release the asset
func (b *Bridge) RedeemRemote(srcPoolId, dstChainId, dstPoolId uint64, from, to string, amountLP, minAmountLD uint64, refundAddress string, params TxParams) lib.ErrorI {
	return b.state.Transact(func() lib.ErrorI {
		sw, err := b.state.RedeemRemote(srcPoolId, dstChainId, dstPoolId, from, amountLP, minAmountLD)
		if err != nil {
			return err
		}
		return b.send(dstChainId, &PayloadSwap{SrcPoolId: srcPoolId, DstPoolId: dstPoolId, To: to, Swap: sw}, refundAddress, params)
	})
}

// RedeemLocal() opens the compensating redemption: shares are burned
// optimistically and the destination is asked whether it can cover the amount
func (b *Bridge) RedeemLocal(srcPoolId, dstChainId, dstPoolId uint64, from, to string, amountLP uint64, refundAddress string, params TxParams) lib.ErrorI {
	return b.state.Transact(func() lib.ErrorI {
		amountSD, err := b.state.RedeemLocal(srcPoolId, dstChainId, dstPoolId, from, amountLP)
		if err != nil {
			return err
		}
		return b.send(dstChainId, &PayloadWithdrawRemote{SrcPoolId: srcPoolId, DstPoolId: dstPoolId, AmountSD: amountSD, To: to}, refundAddress, params)
	})
}

// SendCredits() flushes a chain path's earmarked credits to the counterpart
func (b *Bridge) SendCredits(srcPoolId, dstChainId, dstPoolId uint64, refundAddress string) lib.ErrorI {
	return b.state.Transact(func() lib.ErrorI {
		c, err := b.state.SendCredits(srcPoolId, dstChainId, dstPoolId)
		if err != nil {
			return err
		}
		return b.send(dstChainId, &PayloadCredit{SrcPoolId: srcPoolId, DstPoolId: dstPoolId, Credit: c}, refundAddress, TxParams{})
	})
}

// QuoteFee() estimates the native transport fee for an operation tag
func (b *Bridge) QuoteFee(dstChainId uint64, p PayloadI) (uint64, lib.ErrorI) {
	bz, err := EncodePayload(p)
	if err != nil {
		return 0, err
	}
	return b.transport.Quote(dstChainId, len(bz)), nil
}

// send() encodes a payload and hands it to the transport addressed to the configured peer
func (b *Bridge) send(dstChainId uint64, p PayloadI, refundAddress string, params TxParams) lib.ErrorI {
	peer := b.config.PeerAddress(dstChainId)
	if peer == "" {
		return ErrUnknownPeer(dstChainId)
	}
	bz, err := EncodePayload(p)
	if err != nil {
		return err
	}
	return b.transport.Send(dstChainId, peer, bz, refundAddress, params)
}

// Receive() is the inbound dispatch boundary. Only the configured peer for
// the source chain is accepted. A processing failure is captured in the
// failure cache and reported as success to the transport: delivery happened,
// resolution is now the caller's retry/revert decision.
func (b *Bridge) Receive(srcChainId uint64, srcChannelAddress string, nonce uint64, payload []byte) lib.ErrorI {
	peer := b.config.PeerAddress(srcChainId)
	if peer == "" {
		return ErrUnknownPeer(srcChainId)
	}
	if peer != srcChannelAddress {
		return ErrUnauthorizedSource(srcChainId, srcChannelAddress)
	}
	if err := b.process(srcChainId, payload); err != nil {
		b.log.Warnf("payload from chain %d nonce %d failed processing: %s", srcChainId, nonce, err.Error())
		return b.cacheFailure(srcChainId, srcChannelAddress, nonce, payload)
	}
	return nil
}

// process() decodes and dispatches a payload through its processing routine
func (b *Bridge) process(srcChainId uint64, payload []byte) lib.ErrorI {
	p, err := DecodePayload(payload)
	if err != nil {
		return err
	}
	return b.dispatch(srcChainId, p)
}

// dispatch() routes a payload to exactly one processing routine by concrete
// type; each routine runs inside its own ledger transaction
func (b *Bridge) dispatch(srcChainId uint64, p PayloadI) lib.ErrorI {
	switch m := p.(type) {
	case *PayloadSwap:
		return b.state.Transact(func() lib.ErrorI {
			_, err := b.state.SwapRemote(m.DstPoolId, srcChainId, m.SrcPoolId, m.To, m.Swap)
			return err
		})
	case *PayloadCredit:
		return b.state.Transact(func() lib.ErrorI {
			return b.state.CreditChainPath(m.DstPoolId, srcChainId, m.SrcPoolId, m.Credit)
		})
	case *PayloadWithdrawRemote:
		return b.state.Transact(func() lib.ErrorI {
			swapAmount, mintAmount, err := b.state.RedeemLocalCheckOnRemote(m.DstPoolId, srcChainId, m.SrcPoolId, m.AmountSD)
			if err != nil {
				return err
			}
			return b.send(srcChainId, &PayloadRedeemLocalCallback{
				SrcPoolId:    m.DstPoolId,
				DstPoolId:    m.SrcPoolId,
				To:           m.To,
				SwapAmountSD: swapAmount,
				MintAmountSD: mintAmount,
			}, m.To, TxParams{})
		})
	case *PayloadRedeemLocalCallback:
		return b.state.Transact(func() lib.ErrorI {
			return b.state.RedeemLocalCallback(m.DstPoolId, srcChainId, m.SrcPoolId, m.To, m.SwapAmountSD, m.MintAmountSD)
		})
	default:
		return lib.ErrUnknownPayloadTag(p.Tag())
	}
}
