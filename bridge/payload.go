package bridge

import (
	"github.com/omnipool-network/omnipool/lib"
	"github.com/omnipool-network/omnipool/pool"
)

// wire-level operation tags carried as the first byte of every cross-chain payload
const (
	TagSwap                uint8 = 1 // deliver a swap to the destination pool
	TagCredit              uint8 = 2 // top up the counterpart chain path after liquidity events
	TagRedeemLocalCallback uint8 = 3 // third redeem-local hop: release and/or compensate at the origin
	TagWithdrawRemote      uint8 = 4 // second redeem-local hop: check coverage at the destination
)

// PayloadI is the closed set of cross-chain payload bodies; the dispatch
// boundary matches the concrete types exhaustively
type PayloadI interface {
	// Tag() returns the wire-level operation discriminator
	Tag() uint8
}

// PayloadSwap carries the local phase result of a swap or remote redemption
type PayloadSwap struct {
	SrcPoolId uint64       `json:"srcPoolId"`
	DstPoolId uint64       `json:"dstPoolId"`
	To        string       `json:"to"`
	Swap      pool.SwapObj `json:"swap"`
}

// PayloadCredit carries flushed chain-path credits toward the counterpart
type PayloadCredit struct {
	SrcPoolId uint64         `json:"srcPoolId"`
	DstPoolId uint64         `json:"dstPoolId"`
	Credit    pool.CreditObj `json:"credit"`
}

// PayloadWithdrawRemote asks the destination whether it can cover an optimistic redemption
type PayloadWithdrawRemote struct {
	SrcPoolId uint64 `json:"srcPoolId"`
	DstPoolId uint64 `json:"dstPoolId"`
	AmountSD  uint64 `json:"amountSD"`
	To        string `json:"to"`
}

// PayloadRedeemLocalCallback closes the redeem-local exchange: the covered
// amount is released at the origin and the uncovered amount re-minted
type PayloadRedeemLocalCallback struct {
	SrcPoolId    uint64 `json:"srcPoolId"`
	DstPoolId    uint64 `json:"dstPoolId"`
	To           string `json:"to"`
	SwapAmountSD uint64 `json:"swapAmountSD"`
	MintAmountSD uint64 `json:"mintAmountSD"`
}

func (p *PayloadSwap) Tag() uint8                { return TagSwap }
func (p *PayloadCredit) Tag() uint8              { return TagCredit }
func (p *PayloadRedeemLocalCallback) Tag() uint8 { return TagRedeemLocalCallback }
func (p *PayloadWithdrawRemote) Tag() uint8      { return TagWithdrawRemote }

// EncodePayload() serializes a payload as its tag byte followed by the binary body
func EncodePayload(p PayloadI) ([]byte, lib.ErrorI) {
	body, err := lib.Marshal(p)
	if err != nil {
		return nil, err
	}
	return append([]byte{p.Tag()}, body...), nil
}

// DecodePayload() parses the tag byte and deserializes the matching body;
// an unknown tag is an explicit error, never a silent drop
func DecodePayload(bz []byte) (PayloadI, lib.ErrorI) {
	if len(bz) == 0 {
		return nil, lib.ErrUnknownPayloadTag(0)
	}
	var p PayloadI
	switch bz[0] {
	case TagSwap:
		p = new(PayloadSwap)
	case TagCredit:
		p = new(PayloadCredit)
	case TagRedeemLocalCallback:
		p = new(PayloadRedeemLocalCallback)
	case TagWithdrawRemote:
		p = new(PayloadWithdrawRemote)
	default:
		return nil, lib.ErrUnknownPayloadTag(bz[0])
	}
	if err := lib.Unmarshal(bz[1:], p); err != nil {
		return nil, err
	}
	return p, nil
}
