package store

import (
	"fmt"

	"github.com/omnipool-network/omnipool/lib"
)

// This file defines error objects for the store module

func ErrOpenDB(err error) lib.ErrorI {
	return lib.NewError(lib.CodeOpenDB, lib.StoreModule, fmt.Sprintf("opening the database failed with err: %s", err.Error()))
}

func ErrCloseDB(err error) lib.ErrorI {
	return lib.NewError(lib.CodeCloseDB, lib.StoreModule, fmt.Sprintf("closing the database failed with err: %s", err.Error()))
}

func ErrStoreSet(err error) lib.ErrorI {
	return lib.NewError(lib.CodeStoreSet, lib.StoreModule, fmt.Sprintf("store.set() failed with err: %s", err.Error()))
}

func ErrStoreGet(err error) lib.ErrorI {
	return lib.NewError(lib.CodeStoreGet, lib.StoreModule, fmt.Sprintf("store.get() failed with err: %s", err.Error()))
}

func ErrStoreDelete(err error) lib.ErrorI {
	return lib.NewError(lib.CodeStoreDelete, lib.StoreModule, fmt.Sprintf("store.delete() failed with err: %s", err.Error()))
}

func ErrStoreIter(err error) lib.ErrorI {
	return lib.NewError(lib.CodeStoreIter, lib.StoreModule, fmt.Sprintf("store.iterator() failed with err: %s", err.Error()))
}

func ErrCommitDB(err error) lib.ErrorI {
	return lib.NewError(lib.CodeCommitDB, lib.StoreModule, fmt.Sprintf("commit() failed with err: %s", err.Error()))
}

func ErrNilKey() lib.ErrorI {
	return lib.NewError(lib.CodeNilKey, lib.StoreModule, "key is nil")
}

func ErrKeyTooLarge(size int) lib.ErrorI {
	return lib.NewError(lib.CodeKeyTooLarge, lib.StoreModule, fmt.Sprintf("key size %d exceeds the maximum", size))
}

func ErrTxnWrite(err error) lib.ErrorI {
	return lib.NewError(lib.CodeTxnWrite, lib.StoreModule, fmt.Sprintf("txn.write() failed with err: %s", err.Error()))
}
