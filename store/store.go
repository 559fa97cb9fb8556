package store

import (
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/omnipool-network/omnipool/lib"
)

const maxKeyBytes = 65000 // upper bound guard for key lengths

// enforce the StoreI interface
var _ lib.StoreI = &Store{}

// Store is the persistent database layer backed by BadgerDB.
// All reads and writes go through short-lived badger transactions;
// multi-key atomicity is layered on top with a Txn overlay.
type Store struct {
	db  *badger.DB
	log lib.LoggerI
}

// New() opens (or creates) the store at the configured data directory
func New(config lib.Config, log lib.LoggerI) (*Store, lib.ErrorI) {
	if config.StoreConfig.InMemory {
		return NewStoreInMemory(log)
	}
	path := filepath.Join(config.StoreConfig.DataDirPath, config.StoreConfig.DBName)
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return &Store{db: db, log: log}, nil
}

// NewStoreInMemory() opens an ephemeral store that lives and dies with the process
func NewStoreInMemory(log lib.LoggerI) (*Store, lib.ErrorI) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return &Store{db: db, log: log}, nil
}

// Get() returns the value for a key or nil if the key is not present
func (s *Store) Get(key []byte) (value []byte, err lib.ErrorI) {
	if err = validateKey(key); err != nil {
		return
	}
	if e := s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(key)
		if getErr != nil {
			return getErr
		}
		value, getErr = item.ValueCopy(nil)
		return getErr
	}); e != nil {
		if e == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, ErrStoreGet(e)
	}
	return
}

// Set() writes a key value pair to the database
func (s *Store) Set(key, value []byte) lib.ErrorI {
	if err := validateKey(key); err != nil {
		return err
	}
	if e := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	}); e != nil {
		return ErrStoreSet(e)
	}
	return nil
}

// Delete() removes a key value pair from the database
func (s *Store) Delete(key []byte) lib.ErrorI {
	if err := validateKey(key); err != nil {
		return err
	}
	if e := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	}); e != nil {
		return ErrStoreDelete(e)
	}
	return nil
}

// Iterator() returns a snapshot iterator over all keys under the prefix in lexicographical order
func (s *Store) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	it := &Iterator{index: -1}
	if e := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		bIt := txn.NewIterator(opts)
		defer bIt.Close()
		for bIt.Seek(prefix); bIt.ValidForPrefix(prefix); bIt.Next() {
			item := bIt.Item()
			value, e := item.ValueCopy(nil)
			if e != nil {
				return e
			}
			it.keys = append(it.keys, item.KeyCopy(nil))
			it.values = append(it.values, value)
		}
		return nil
	}); e != nil {
		return nil, ErrStoreIter(e)
	}
	it.index = 0
	return it, nil
}

// NewTxn() returns a buffered write overlay on top of the store
func (s *Store) NewTxn() lib.StoreTxnI { return NewTxn(s) }

// Close() closes the underlying database handle
func (s *Store) Close() lib.ErrorI {
	if e := s.db.Close(); e != nil {
		return ErrCloseDB(e)
	}
	return nil
}

// validateKey() rejects nil and oversized keys before they reach the database
func validateKey(key []byte) lib.ErrorI {
	if len(key) == 0 {
		return ErrNilKey()
	}
	if len(key) > maxKeyBytes {
		return ErrKeyTooLarge(len(key))
	}
	return nil
}

// enforce the Iterator interface
var _ lib.IteratorI = &Iterator{}

// Iterator walks a materialized snapshot of the keys under a prefix.
// Snapshotting keeps the badger transaction short and makes iteration
// stable even when the caller writes during the walk.
type Iterator struct {
	keys   [][]byte
	values [][]byte
	index  int
}

// Valid() returns true while the cursor is within the snapshot
func (i *Iterator) Valid() bool { return i.index >= 0 && i.index < len(i.keys) }

// Next() advances the cursor
func (i *Iterator) Next() { i.index++ }

// Key() returns the key at the cursor
func (i *Iterator) Key() []byte { return i.keys[i.index] }

// Value() returns the value at the cursor
func (i *Iterator) Value() []byte { return i.values[i.index] }

// Close() is a no-op for snapshot iterators; it satisfies the interface
func (i *Iterator) Close() {}
