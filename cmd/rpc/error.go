package rpc

import (
	"fmt"

	"github.com/omnipool-network/omnipool/lib"
)

func ErrInvalidRequest(err error) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidRequest, lib.RPCModule, fmt.Sprintf("invalid request: %s", err.Error()))
}

func ErrInvalidParams(name string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidParams, lib.RPCModule, fmt.Sprintf("invalid param: %s", name))
}
