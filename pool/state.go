package pool

import (
	"fmt"
	"sync"

	"github.com/omnipool-network/omnipool/lib"
	"github.com/omnipool-network/omnipool/token"
)

/*
	State is the registry that owns every pool on one chain.

	Each entry point runs inside Transact(): a mutex serializes operations and
	a buffered store overlay gives the whole operation a single commit point,
	so a local phase either fully commits or leaves no trace. Operation
	methods on State assume an active transaction and never nest another.
*/

type State struct {
	mu      sync.Mutex               // serializes entry points; no reentrancy mid-mutation
	chainId uint64                   // identifier of the chain this ledger executes on
	store   lib.StoreI               // persistent backing store
	rw      lib.RWStoreI             // active read/write target; the overlay during a transaction
	config  lib.Config               // node configuration
	log     lib.LoggerI              // structured logger
	feeLibs map[string]FeeLibraryI   // registered fee strategies by name
	tokens  map[string]token.TokenI  // registered underlying assets by symbol
	shares  map[uint64]token.TokenI  // liquidity share ledgers by pool id
}

// New() creates a pool registry over the given store
func New(chainId uint64, store lib.StoreI, config lib.Config, log lib.LoggerI) *State {
	return &State{
		chainId: chainId,
		store:   store,
		rw:      store,
		config:  config,
		log:     log,
		feeLibs: make(map[string]FeeLibraryI),
		tokens:  make(map[string]token.TokenI),
		shares:  make(map[uint64]token.TokenI),
	}
}

// ChainId() returns the identifier of the chain this ledger executes on
func (s *State) ChainId() uint64 { return s.chainId }

// Log() returns the registry's logger
func (s *State) Log() lib.LoggerI { return s.log }

// RegisterToken() attaches an underlying asset ledger by symbol
func (s *State) RegisterToken(t token.TokenI) { s.tokens[t.Symbol()] = t }

// RegisterFeeLibrary() attaches a fee strategy by name
func (s *State) RegisterFeeLibrary(f FeeLibraryI) { s.feeLibs[f.Name()] = f }

// Token() returns the underlying asset ledger for a pool
func (s *State) Token(p *Pool) (token.TokenI, lib.ErrorI) {
	t, found := s.tokens[p.TokenSymbol]
	if !found {
		return nil, ErrUnknownToken(p.TokenSymbol)
	}
	return t, nil
}

// ShareToken() returns the liquidity share ledger for a pool, creating it on first use
func (s *State) ShareToken(p *Pool) token.TokenI {
	t, found := s.shares[p.Id]
	if !found {
		t = token.NewToken(fmt.Sprintf("LP-%d", p.Id), p.SharedDecimals)
		s.shares[p.Id] = t
	}
	return t
}

// VaultAddress() returns the account that holds a pool's underlying assets
func VaultAddress(poolId uint64) string { return fmt.Sprintf("pool/%d", poolId) }

// FeeLibrary() resolves the fee strategy configured on a pool
func (s *State) FeeLibrary(p *Pool) (FeeLibraryI, lib.ErrorI) {
	f, found := s.feeLibs[p.FeeLibrary]
	if !found {
		return nil, ErrUnknownFeeLibrary(p.FeeLibrary)
	}
	return f, nil
}

// Transact() runs fn inside the registry's transactional boundary: the mutex
// blocks concurrent entry points and the overlay collects every write, which
// is flushed only when fn succeeds and discarded entirely when it fails
func (s *State) Transact(fn func() lib.ErrorI) lib.ErrorI {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn := s.store.NewTxn()
	s.rw = txn
	defer func() { s.rw = s.store }()
	if err := fn(); err != nil {
		txn.Discard()
		return err
	}
	return txn.Write()
}

// GetPool() loads a pool record or returns a named error if it does not exist
func (s *State) GetPool(id uint64) (*Pool, lib.ErrorI) {
	value, err := s.rw.Get(KeyForPool(id))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, ErrUnknownPool(id)
	}
	p := new(Pool)
	if err = lib.Unmarshal(value, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetPool() persists a pool record
func (s *State) SetPool(p *Pool) lib.ErrorI {
	value, err := lib.Marshal(p)
	if err != nil {
		return err
	}
	return s.rw.Set(KeyForPool(p.Id), value)
}

// CreatePool() registers a new pool record; duplicate identifiers are rejected
func (s *State) CreatePool(p *Pool) lib.ErrorI {
	existing, err := s.rw.Get(KeyForPool(p.Id))
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicatePool(p.Id)
	}
	if p.LocalDecimals < p.SharedDecimals {
		return lib.ErrInvalidArgument("sharedDecimals")
	}
	if _, found := s.feeLibs[p.FeeLibrary]; !found {
		return ErrUnknownFeeLibrary(p.FeeLibrary)
	}
	if _, found := s.tokens[p.TokenSymbol]; !found {
		return ErrUnknownToken(p.TokenSymbol)
	}
	return s.SetPool(p)
}

// GetPools() returns every pool record in identifier order
func (s *State) GetPools() (pools []*Pool, err lib.ErrorI) {
	it, err := s.rw.Iterator(PoolPrefix())
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		p := new(Pool)
		if err = lib.Unmarshal(it.Value(), p); err != nil {
			return nil, err
		}
		pools = append(pools, p)
	}
	return
}
