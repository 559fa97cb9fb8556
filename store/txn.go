package store

import (
	"sort"
	"strings"

	"github.com/omnipool-network/omnipool/lib"
)

// enforce the StoreTxnI interface
var _ lib.StoreTxnI = &Txn{}

/*
	Txn acts like a database transaction:
	it saves set/del operations in memory and allows the caller to Write() to the parent or Discard().
	When read from, it merges with the parent as if Write() had already been called.

	Every ledger operation (a 'local phase' of the protocol) runs against a Txn so
	it either commits in one pass or leaves no trace, mirroring the atomicity the
	original host environment provided for free.

	CONTRACT:
	- only safe when writing to another memory store; Write() itself is not atomic
	- not thread safe
	- deleted values are set to nil
*/

type Txn struct {
	parent lib.RWStoreI // store to Write() to
	txn
}

// internal txn structure maintains the write operations sorted lexicographically by keys
type txn struct {
	ops       map[string]op // [string(key)] -> set/del operations saved in memory
	sorted    []string      // ops keys sorted lexicographically; needed for iteration
	sortedLen int           // len(sorted)
}

// op or Operation has the value portion of the operation and if it's a *delete* or a *set*
type op struct {
	value  []byte // value of key value pair
	delete bool   // is operation delete
}

// NewTxn() creates a new instance of a Txn with the specified parent store
func NewTxn(parent lib.RWStoreI) *Txn {
	return &Txn{parent: parent, txn: txn{ops: make(map[string]op), sorted: make([]string, 0)}}
}

// Get() retrieves the value for a given key from either the in-memory operations or the parent store
func (c *Txn) Get(key []byte) ([]byte, lib.ErrorI) {
	if v, found := c.ops[string(key)]; found {
		return v.value, nil
	}
	return c.parent.Get(key)
}

// Set() adds or updates the value for a key in the in-memory operations
func (c *Txn) Set(key, value []byte) lib.ErrorI { c.update(string(key), value, false); return nil }

// Delete() marks a key for deletion in the in-memory operations
func (c *Txn) Delete(key []byte) lib.ErrorI { c.update(string(key), nil, true); return nil }

// update() modifies or adds an operation for a key in the in-memory operations and maintains order
func (c *Txn) update(key string, v []byte, delete bool) {
	if _, found := c.ops[key]; !found {
		c.addToSorted(key)
	}
	c.ops[key] = op{value: v, delete: delete}
}

// addToSorted() inserts a key into the sorted list of operations maintaining lexicographical order
func (c *Txn) addToSorted(key string) {
	i := sort.Search(c.sortedLen, func(i int) bool { return c.sorted[i] >= key })
	c.sorted = append(c.sorted, "")
	copy(c.sorted[i+1:], c.sorted[i:])
	c.sorted[i] = key
	c.sortedLen++
}

// Iterator() returns a new iterator for merged iteration of both the in-memory operations and parent store with the given prefix
func (c *Txn) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	parent, err := c.parent.Iterator(prefix)
	if err != nil {
		return nil, err
	}
	return newTxnIterator(parent, c.txn, prefix), nil
}

// Discard() clears all in-memory operations and resets the sorted key list
func (c *Txn) Discard() { c.ops, c.sorted, c.sortedLen = nil, nil, 0 }

// Write() flushes the in-memory operations to the parent store and clears in-memory changes
func (c *Txn) Write() (err lib.ErrorI) {
	for k, v := range c.ops {
		if v.delete {
			if err = c.parent.Delete([]byte(k)); err != nil {
				return
			}
		} else {
			if err = c.parent.Set([]byte(k), v.value); err != nil {
				return
			}
		}
	}
	c.ops, c.sorted, c.sortedLen = make(map[string]op), make([]string, 0), 0
	return
}

// enforce the Iterator interface
var _ lib.IteratorI = &TxnIterator{}

// TxnIterator is a merged iterator of the parent and the in-memory operations
type TxnIterator struct {
	parent lib.IteratorI
	txn
	prefix string
	index  int
	useTxn bool
}

// newTxnIterator() initializes a new merged iterator for traversing both the in-memory operations and parent store
func newTxnIterator(parent lib.IteratorI, t txn, prefix []byte) *TxnIterator {
	it := &TxnIterator{parent: parent, txn: t, prefix: string(prefix)}
	// position at the first in-memory key under the prefix
	it.index = sort.Search(t.sortedLen, func(i int) bool { return t.sorted[i] >= it.prefix })
	return it
}

// Close() closes the merged iterator
func (c *TxnIterator) Close() { c.parent.Close() }

// Next() advances the iterator to the next entry, choosing between in-memory and parent store entries
func (c *TxnIterator) Next() {
	if !c.parent.Valid() {
		c.index++
		return
	}
	if c.txnInvalid() {
		c.parent.Next()
		return
	}
	// compare the keys of the in memory option and the parent option
	switch strings.Compare(c.txnKey(), string(c.parent.Key())) {
	case 1: // use parent
		c.parent.Next()
	case 0: // use both; txn shadows parent
		c.parent.Next()
		c.index++
	case -1: // use txn
		c.index++
	}
}

// Key() returns the current key from either the in-memory operations or the parent store
func (c *TxnIterator) Key() []byte {
	if c.useTxn {
		return []byte(c.txnKey())
	}
	return c.parent.Key()
}

// Value() returns the current value from either the in-memory operations or the parent store
func (c *TxnIterator) Value() []byte {
	if c.useTxn {
		return c.txnValue().value
	}
	return c.parent.Value()
}

// Valid() checks if the current position of the iterator is valid, considering both the parent and in-memory entries
func (c *TxnIterator) Valid() bool {
	for {
		if !c.parent.Valid() {
			// only using the in-memory ops; skip deletes
			for !c.txnInvalid() && c.txnValue().delete {
				c.index++
			}
			c.useTxn = true
			return !c.txnInvalid()
		}
		if c.txnInvalid() {
			// parent is valid; txn is not
			c.useTxn = false
			return true
		}
		// both are valid; key comparison matters
		switch strings.Compare(c.txnKey(), string(c.parent.Key())) {
		case 1: // use parent
			c.useTxn = false
			return true
		case 0: // when equal, txn shadows parent
			if c.txnValue().delete {
				c.parent.Next()
				c.index++
				continue
			}
			c.useTxn = true
			return true
		case -1: // use txn
			if c.txnValue().delete {
				c.index++
				continue
			}
			c.useTxn = true
			return true
		}
	}
}

// txnInvalid() returns true once the in-memory cursor leaves the prefix domain
func (c *TxnIterator) txnInvalid() bool {
	return c.index >= c.sortedLen || !strings.HasPrefix(c.sorted[c.index], c.prefix)
}

// txnKey() returns the in-memory key at the cursor
func (c *TxnIterator) txnKey() string { return c.sorted[c.index] }

// txnValue() returns the in-memory operation at the cursor
func (c *TxnIterator) txnValue() op { return c.ops[c.sorted[c.index]] }
