package token

import (
	"fmt"

	"github.com/omnipool-network/omnipool/lib"
)

// ErrTokenPaused() is returned when a transfer hits a paused asset; callers treat it as retryable
func ErrTokenPaused(symbol string) lib.ErrorI {
	return lib.NewError(lib.CodeTokenPaused, lib.TokenModule, fmt.Sprintf("token %s is paused", symbol))
}

// ErrInsufficientFunds() is returned when an account cannot cover a debit
func ErrInsufficientFunds(address string, amount uint64) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientFunds, lib.TokenModule, fmt.Sprintf("account %s cannot cover %d units", address, amount))
}
