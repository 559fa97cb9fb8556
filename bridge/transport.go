package bridge

import "github.com/omnipool-network/omnipool/lib"

// TxParams is forwarded opaquely to the transport for destination-side
// incidental execution; the core never interprets it
type TxParams struct {
	ExtraGas             uint64 `json:"extraGas"`             // extra gas for the remote call
	ExtraNative          uint64 `json:"extraNative"`          // native asset to deliver alongside the payload
	ExtraNativeRecipient string `json:"extraNativeRecipient"` // recipient of the native asset
}

// TransportI is the message layer that moves payloads between chains.
// Send is fire-and-forget: the payload is either delivered with a
// monotonically assigned nonce per (source, destination channel) pair, or
// never delivered. No silent corruption.
type TransportI interface {
	// Send() hands a payload to the transport addressed to a counterpart channel
	Send(dstChainId uint64, dstChannelAddress string, payload []byte, refundAddress string, params TxParams) lib.ErrorI
	// Quote() estimates the native fee for delivering a payload of the given size
	Quote(dstChainId uint64, payloadLen int) uint64
}

// ReceiverI is the inbound half: the transport invokes Receive exactly once
// per (channel, nonce) into the dispatch boundary
type ReceiverI interface {
	Receive(srcChainId uint64, srcChannelAddress string, nonce uint64, payload []byte) lib.ErrorI
}
