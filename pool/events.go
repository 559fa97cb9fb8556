package pool

import "github.com/omnipool-network/omnipool/lib"

// event types emitted by ledger operations and indexed in the store
const (
	EventMint                = "mint"
	EventBurn                = "burn"
	EventSwap                = "swap"
	EventSwapRemote          = "swap_remote"
	EventSendCredits         = "send_credits"
	EventCreditChainPath     = "credit_chain_path"
	EventRedeemLocal         = "redeem_local"
	EventWithdrawRemote      = "withdraw_remote"
	EventRedeemLocalCallback = "redeem_local_callback"
	EventInstantRedeemLocal  = "instant_redeem_local"
	EventChainPathUpdate     = "chain_path_update"
	EventFeeWithdrawal       = "fee_withdrawal"
	EventCachedPayloadSaved  = "cached_payload_saved"
	EventRevert              = "revert"
)

// Event is an indexed record of a ledger mutation, queryable by sequence number.
// Amount semantics depend on the type: AmountSD is the primary shared-decimal
// amount, AmountLP the share amount, ExtraSD a secondary amount such as a
// reward, a compensation, or a fee.
type Event struct {
	Seq        uint64 `json:"seq"`
	Type       string `json:"type"`
	PoolId     uint64 `json:"poolId"`
	DstChainId uint64 `json:"dstChainId,omitempty"`
	DstPoolId  uint64 `json:"dstPoolId,omitempty"`
	Account    string `json:"account,omitempty"`
	AmountSD   uint64 `json:"amountSD,omitempty"`
	AmountLP   uint64 `json:"amountLP,omitempty"`
	ExtraSD    uint64 `json:"extraSD,omitempty"`
}

// EmitEvent() assigns the next sequence number to the event and indexes it;
// emission rides the enclosing transaction, so an aborted operation leaves no events
func (s *State) EmitEvent(e *Event) lib.ErrorI {
	seq, err := s.nextEventSeq()
	if err != nil {
		return err
	}
	e.Seq = seq
	value, err := lib.Marshal(e)
	if err != nil {
		return err
	}
	return s.rw.Set(KeyForEvent(seq), value)
}

// nextEventSeq() increments and persists the event sequence counter
func (s *State) nextEventSeq() (uint64, lib.ErrorI) {
	value, err := s.rw.Get(KeyForEventSeq())
	if err != nil {
		return 0, err
	}
	seq := uint64(1)
	if value != nil {
		seq = lib.BytesToUint64(value) + 1
	}
	if err = s.rw.Set(KeyForEventSeq(), lib.Uint64ToBytes(seq)); err != nil {
		return 0, err
	}
	return seq, nil
}

// GetEvents() returns indexed events in sequence order, newest capped by limit (0 = all)
func (s *State) GetEvents(limit int) (events []*Event, err lib.ErrorI) {
	it, err := s.rw.Iterator(EventPrefix())
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		e := new(Event)
		if err = lib.Unmarshal(it.Value(), e); err != nil {
			return nil, err
		}
		events = append(events, e)
		if limit != 0 && len(events) >= limit {
			break
		}
	}
	return
}
