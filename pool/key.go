package pool

import "github.com/omnipool-network/omnipool/lib"

var (
	poolPrefix     = []byte{1} // store key prefix for pool records
	eventPrefix    = []byte{2} // store key prefix for indexed event records
	eventSeqPrefix = []byte{3} // store key for the last event sequence number
)

// KeyForPool() returns the store key for a pool record
func KeyForPool(id uint64) []byte {
	return lib.JoinLenPrefix(poolPrefix, lib.Uint64ToBytes(id))
}

// PoolPrefix() returns the iterable prefix for all pool records
func PoolPrefix() []byte { return lib.JoinLenPrefix(poolPrefix) }

// KeyForEvent() returns the store key for an event record by sequence number
func KeyForEvent(seq uint64) []byte {
	return lib.JoinLenPrefix(eventPrefix, lib.Uint64ToBytes(seq))
}

// EventPrefix() returns the iterable prefix for all event records
func EventPrefix() []byte { return lib.JoinLenPrefix(eventPrefix) }

// KeyForEventSeq() returns the store key holding the last assigned event sequence
func KeyForEventSeq() []byte { return lib.JoinLenPrefix(eventSeqPrefix) }
