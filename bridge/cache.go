package bridge

import (
	"github.com/omnipool-network/omnipool/lib"
	"github.com/omnipool-network/omnipool/pool"
)

var cachePrefix = []byte{10} // store key prefix for pending-failure records

// KeyForCachedPayload() returns the store key of a pending-failure record
func KeyForCachedPayload(srcChainId uint64, srcChannelAddress string, nonce uint64) []byte {
	return lib.JoinLenPrefix(cachePrefix, lib.Uint64ToBytes(srcChainId), []byte(srcChannelAddress), lib.Uint64ToBytes(nonce))
}

// CachedPayload is a pending-failure record: the exact payload that failed
// during remote processing, awaiting retry or compensation. Absence of a
// record for a key means "already resolved or never failed."
type CachedPayload struct {
	SrcChainId uint64 `json:"srcChainId"`
	SrcAddress string `json:"srcAddress"`
	Nonce      uint64 `json:"nonce"`
	Payload    []byte `json:"payload"`
}

// cacheFailure() captures a failed payload under its delivery key and indexes the event
func (b *Bridge) cacheFailure(srcChainId uint64, srcChannelAddress string, nonce uint64, payload []byte) lib.ErrorI {
	record := &CachedPayload{SrcChainId: srcChainId, SrcAddress: srcChannelAddress, Nonce: nonce, Payload: payload}
	value, err := lib.Marshal(record)
	if err != nil {
		return err
	}
	if err = b.store.Set(KeyForCachedPayload(srcChainId, srcChannelAddress, nonce), value); err != nil {
		return err
	}
	return b.state.Transact(func() lib.ErrorI {
		return b.state.EmitEvent(&pool.Event{Type: pool.EventCachedPayloadSaved, DstChainId: srcChainId, AmountSD: nonce})
	})
}

// GetCachedPayload() returns the pending-failure record for a key or nil if resolved
func (b *Bridge) GetCachedPayload(srcChainId uint64, srcChannelAddress string, nonce uint64) (*CachedPayload, lib.ErrorI) {
	value, err := b.store.Get(KeyForCachedPayload(srcChainId, srcChannelAddress, nonce))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	record := new(CachedPayload)
	if err = lib.Unmarshal(value, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Retry() re-dispatches a cached payload through its original processing
// path; the record is cleared only on success, so the operation resolves
// exactly once and a retry on a cleared key fails explicitly
func (b *Bridge) Retry(srcChainId uint64, srcChannelAddress string, nonce uint64) lib.ErrorI {
	record, err := b.GetCachedPayload(srcChainId, srcChannelAddress, nonce)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNothingToRetry(srcChainId, srcChannelAddress, nonce)
	}
	if err = b.process(srcChainId, record.Payload); err != nil {
		return err
	}
	return b.store.Delete(KeyForCachedPayload(srcChainId, srcChannelAddress, nonce))
}

// Revert() resolves a cached redeem-local hop by compensation instead of
// completion: the origin is told to re-mint the full amount as if the
// redemption never happened. Tags outside the redeem-local exchange have no
// compensating action and are not revertible.
func (b *Bridge) Revert(srcChainId uint64, srcChannelAddress string, nonce uint64, refundAddress string) lib.ErrorI {
	record, err := b.GetCachedPayload(srcChainId, srcChannelAddress, nonce)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNothingToRevert(srcChainId, srcChannelAddress, nonce)
	}
	p, err := DecodePayload(record.Payload)
	if err != nil {
		return err
	}
	m, revertible := p.(*PayloadWithdrawRemote)
	if !revertible {
		return ErrNotRevertible(p.Tag())
	}
	if err = b.state.Transact(func() lib.ErrorI {
		if e := b.state.EmitEvent(&pool.Event{Type: pool.EventRevert, PoolId: m.DstPoolId, DstChainId: srcChainId, DstPoolId: m.SrcPoolId, Account: m.To, ExtraSD: m.AmountSD}); e != nil {
			return e
		}
		return b.send(srcChainId, &PayloadRedeemLocalCallback{
			SrcPoolId:    m.DstPoolId,
			DstPoolId:    m.SrcPoolId,
			To:           m.To,
			MintAmountSD: m.AmountSD,
		}, refundAddress, TxParams{})
	}); err != nil {
		return err
	}
	return b.store.Delete(KeyForCachedPayload(srcChainId, srcChannelAddress, nonce))
}
