// Package token implements the fungible asset ledger that pools draw on.
// Assets are tracked in local decimals; the pool layer converts to and from
// shared decimals at its boundary.
package token

import (
	"sync"

	"github.com/omnipool-network/omnipool/lib"
)

// TokenI is the minimal asset interface the pool engine requires
type TokenI interface {
	// Symbol() returns the ticker of the asset
	Symbol() string
	// Decimals() returns the local decimal precision of the asset
	Decimals() uint8
	// Mint() credits newly created units to an account
	Mint(address string, amount uint64) lib.ErrorI
	// Burn() destroys units held by an account
	Burn(address string, amount uint64) lib.ErrorI
	// Transfer() moves units between two accounts
	Transfer(from, to string, amount uint64) lib.ErrorI
	// BalanceOf() returns the units held by an account
	BalanceOf(address string) uint64
	// TotalSupply() returns the sum of all balances
	TotalSupply() uint64
}

// enforce the TokenI interface
var _ TokenI = &Token{}

// Token is an in-memory, thread-safe asset ledger.
// A paused token rejects transfers out of the vault, which is how the
// tests force delivery-side failures without touching the pool ledger.
type Token struct {
	sync.RWMutex
	symbol      string
	decimals    uint8
	balances    map[string]uint64
	totalSupply uint64
	paused      bool
}

// NewToken() creates an empty asset ledger with the given ticker and precision
func NewToken(symbol string, decimals uint8) *Token {
	return &Token{symbol: symbol, decimals: decimals, balances: make(map[string]uint64)}
}

// Symbol() returns the ticker of the asset
func (t *Token) Symbol() string { t.RLock(); defer t.RUnlock(); return t.symbol }

// Decimals() returns the local decimal precision of the asset
func (t *Token) Decimals() uint8 { t.RLock(); defer t.RUnlock(); return t.decimals }

// Mint() credits newly created units to an account
func (t *Token) Mint(address string, amount uint64) lib.ErrorI {
	t.Lock()
	defer t.Unlock()
	newBalance, err := lib.SafeAdd(t.balances[address], amount, "token.mint")
	if err != nil {
		return err
	}
	newSupply, err := lib.SafeAdd(t.totalSupply, amount, "token.mint.supply")
	if err != nil {
		return err
	}
	t.balances[address], t.totalSupply = newBalance, newSupply
	return nil
}

// Burn() destroys units held by an account
func (t *Token) Burn(address string, amount uint64) lib.ErrorI {
	t.Lock()
	defer t.Unlock()
	newBalance, err := lib.SafeSub(t.balances[address], amount, "token.burn")
	if err != nil {
		return ErrInsufficientFunds(address, amount)
	}
	t.balances[address], t.totalSupply = newBalance, t.totalSupply-amount
	return nil
}

// Transfer() moves units between two accounts
func (t *Token) Transfer(from, to string, amount uint64) lib.ErrorI {
	t.Lock()
	defer t.Unlock()
	if t.paused {
		return ErrTokenPaused(t.symbol)
	}
	fromBalance, err := lib.SafeSub(t.balances[from], amount, "token.transfer")
	if err != nil {
		return ErrInsufficientFunds(from, amount)
	}
	toBalance, err := lib.SafeAdd(t.balances[to], amount, "token.transfer")
	if err != nil {
		return err
	}
	t.balances[from], t.balances[to] = fromBalance, toBalance
	return nil
}

// BalanceOf() returns the units held by an account
func (t *Token) BalanceOf(address string) uint64 {
	t.RLock()
	defer t.RUnlock()
	return t.balances[address]
}

// TotalSupply() returns the sum of all balances
func (t *Token) TotalSupply() uint64 { t.RLock(); defer t.RUnlock(); return t.totalSupply }

// SetPaused() toggles the pause switch; paused tokens reject transfers
func (t *Token) SetPaused(paused bool) { t.Lock(); defer t.Unlock(); t.paused = paused }
