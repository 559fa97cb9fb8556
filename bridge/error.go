package bridge

import (
	"fmt"

	"github.com/omnipool-network/omnipool/lib"
)

func ErrUnknownPeer(chainId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownPeer, lib.BridgeModule, fmt.Sprintf("no peer configured for chain %d", chainId))
}

// ErrUnauthorizedSource() is returned when a delivery does not originate from the configured transport entry point
func ErrUnauthorizedSource(chainId uint64, address string) lib.ErrorI {
	return lib.NewError(lib.CodeUnauthorizedSource, lib.BridgeModule, fmt.Sprintf("address %s is not the configured entry point for chain %d", address, chainId))
}

// ErrNothingToRetry() distinguishes "already resolved or never failed" from "in progress"
func ErrNothingToRetry(chainId uint64, address string, nonce uint64) lib.ErrorI {
	return lib.NewError(lib.CodeNothingToRetry, lib.BridgeModule, fmt.Sprintf("no cached payload for chain %d address %s nonce %d", chainId, address, nonce))
}

func ErrNothingToRevert(chainId uint64, address string, nonce uint64) lib.ErrorI {
	return lib.NewError(lib.CodeNothingToRevert, lib.BridgeModule, fmt.Sprintf("no cached payload to revert for chain %d address %s nonce %d", chainId, address, nonce))
}

// ErrNotRevertible() is returned for tags whose failure semantics define no compensating action
func ErrNotRevertible(tag uint8) lib.ErrorI {
	return lib.NewError(lib.CodeNotRevertible, lib.BridgeModule, fmt.Sprintf("payload tag %d has no compensating action", tag))
}

func ErrTransportSend(err error) lib.ErrorI {
	return lib.NewError(lib.CodeTransportSend, lib.BridgeModule, fmt.Sprintf("transport send failed with err: %s", err.Error()))
}

// ErrRemoteFailureCached() reports that processing failed and the payload was captured for retry
func ErrRemoteFailureCached(chainId uint64, nonce uint64, cause error) lib.ErrorI {
	return lib.NewError(lib.CodeRemoteFailureCached, lib.BridgeModule, fmt.Sprintf("payload from chain %d nonce %d cached after failure: %s", chainId, nonce, cause.Error()))
}

func ErrDuplicateEndpoint(chainId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeDuplicateEndpoint, lib.BridgeModule, fmt.Sprintf("an endpoint for chain %d is already registered", chainId))
}
