package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/omnipool-network/omnipool/lib"
	"golang.org/x/sync/errgroup"
)

/*
	Relay is an in-process transport hub wiring multiple chain bridges
	together for local simulation and end-to-end tests.

	It honors the transport contract from the bridges' perspective: nonces are
	assigned monotonically per (source endpoint, destination channel) pair and
	each envelope reaches the destination's Receive at most once per nonce.
	Delivery-level rejections (misconfigured peers) are redelivered with
	exponential backoff in async mode; processing-level failures are the
	receiving bridge's concern and land in its failure cache.
*/

type Relay struct {
	mu        sync.Mutex
	log       lib.LoggerI
	quoteFee  uint64               // flat native fee per message
	endpoints map[uint64]*endpoint // registered chains by id
	queue     []*envelope          // envelopes awaiting delivery
}

// endpoint is one registered chain on the relay
type endpoint struct {
	relay          *Relay
	chainId        uint64
	channelAddress string
	receiver       ReceiverI
	nonces         map[string]uint64 // next nonce per destination channel
}

// envelope is one in-flight payload
type envelope struct {
	srcChainId uint64
	srcAddress string
	dstChainId uint64
	dstAddress string
	nonce      uint64
	payload    []byte
}

// NewRelay() creates an empty transport hub
func NewRelay(quoteFee uint64, log lib.LoggerI) *Relay {
	return &Relay{log: log, quoteFee: quoteFee, endpoints: make(map[uint64]*endpoint)}
}

// Register() attaches a chain's receiver under its channel address and
// returns the chain's sending handle
func (r *Relay) Register(chainId uint64, channelAddress string, receiver ReceiverI) (TransportI, lib.ErrorI) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.endpoints[chainId]; found {
		return nil, ErrDuplicateEndpoint(chainId)
	}
	ep := &endpoint{relay: r, chainId: chainId, channelAddress: channelAddress, receiver: receiver, nonces: make(map[string]uint64)}
	r.endpoints[chainId] = ep
	return ep, nil
}

// InFlight() returns the number of envelopes not yet delivered
func (r *Relay) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// DeliverAll() synchronously drains the queue, including envelopes enqueued
// by deliveries themselves, until the system is quiescent
func (r *Relay) DeliverAll() lib.ErrorI {
	for {
		e := r.pop()
		if e == nil {
			return nil
		}
		if err := r.deliver(e); err != nil {
			return err
		}
	}
}

// Start() runs background delivery until the context is done; delivery-level
// rejections are redelivered with exponential backoff capped by maxElapsed
func (r *Relay) Start(ctx context.Context, maxElapsed time.Duration) *errgroup.Group {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				e := r.pop()
				if e == nil {
					continue
				}
				b := backoff.NewExponentialBackOff()
				b.MaxElapsedTime = maxElapsed
				if err := backoff.Retry(func() error {
					if deliverErr := r.deliver(e); deliverErr != nil {
						return deliverErr
					}
					return nil
				}, backoff.WithContext(b, ctx)); err != nil {
					r.log.Errorf("envelope to chain %d nonce %d dropped after redelivery: %s", e.dstChainId, e.nonce, err.Error())
				}
			}
		}
	})
	return g
}

// pop() removes the oldest envelope from the queue
func (r *Relay) pop() *envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return nil
	}
	e := r.queue[0]
	r.queue = r.queue[1:]
	return e
}

// deliver() hands an envelope to the destination receiver
func (r *Relay) deliver(e *envelope) lib.ErrorI {
	r.mu.Lock()
	dst, found := r.endpoints[e.dstChainId]
	r.mu.Unlock()
	if !found {
		return ErrUnknownPeer(e.dstChainId)
	}
	return dst.receiver.Receive(e.srcChainId, e.srcAddress, e.nonce, e.payload)
}

// enforce the TransportI interface
var _ TransportI = &endpoint{}

// Send() assigns the next nonce for the destination channel and enqueues the envelope
func (ep *endpoint) Send(dstChainId uint64, dstChannelAddress string, payload []byte, _ string, _ TxParams) lib.ErrorI {
	r := ep.relay
	r.mu.Lock()
	defer r.mu.Unlock()
	ep.nonces[dstChannelAddress]++
	r.queue = append(r.queue, &envelope{
		srcChainId: ep.chainId,
		srcAddress: ep.channelAddress,
		dstChainId: dstChainId,
		dstAddress: dstChannelAddress,
		nonce:      ep.nonces[dstChannelAddress],
		payload:    append([]byte(nil), payload...),
	})
	return nil
}

// Quote() returns the flat native fee regardless of payload size
func (ep *endpoint) Quote(_ uint64, _ int) uint64 { return ep.relay.quoteFee }
