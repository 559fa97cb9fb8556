package lib

/* This file contains the persistence interfaces shared by every module */

// StoreI is the full store interface: CRUD plus lifecycle management
type StoreI interface {
	RWStoreI
	NewTxn() StoreTxnI // wrap the store in a discardable buffered overlay
	Close() ErrorI     // gracefully stop the database
}

// RWStoreI defines the Read/Write interface for basic db CRUD operations
type RWStoreI interface {
	RStoreI
	WStoreI
}

// WStoreI defines an interface for basic write operations
type WStoreI interface {
	Set(key, value []byte) ErrorI // set value bytes referenced by key bytes
	Delete(key []byte) ErrorI     // remove the key and its value
}

// RStoreI defines an interface for basic read operations
type RStoreI interface {
	Get(key []byte) ([]byte, ErrorI)            // access value bytes using key bytes; nil if absent
	Iterator(prefix []byte) (IteratorI, ErrorI) // iterate KV pairs under a prefix in lexicographical order
}

// StoreTxnI is a buffered write overlay over a parent store: reads merge with
// the parent as if the buffered operations were already applied; Write() flushes
// them to the parent in one pass, giving each ledger operation a single commit point
type StoreTxnI interface {
	RWStoreI
	Write() ErrorI // flush the buffered operations to the parent
	Discard()      // drop the buffered operations
}

// IteratorI defines an interface for iterating over key-value pairs in a data store
type IteratorI interface {
	Valid() bool           // if the item the iterator is pointing at is valid
	Next()                 // move to next item
	Key() (key []byte)     // retrieve key
	Value() (value []byte) // retrieve value
	Close()                // close the iterator when done, ensuring proper resource management
}
