package pool

import (
	"fmt"

	"github.com/omnipool-network/omnipool/lib"
)

// caller/input errors: rejected synchronously before any ledger mutation

func ErrUnknownPool(id uint64) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownPool, lib.PoolModule, fmt.Sprintf("pool %d does not exist", id))
}

func ErrDuplicatePool(id uint64) lib.ErrorI {
	return lib.NewError(lib.CodeDuplicatePool, lib.PoolModule, fmt.Sprintf("pool %d already exists", id))
}

func ErrUnknownChainPath(dstChainId, dstPoolId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownChainPath, lib.PoolModule, fmt.Sprintf("no chain path to pool %d on chain %d", dstPoolId, dstChainId))
}

func ErrDuplicateChainPath(dstChainId, dstPoolId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeDuplicateChainPath, lib.PoolModule, fmt.Sprintf("chain path to pool %d on chain %d already exists", dstPoolId, dstChainId))
}

func ErrChainPathNotReady(dstChainId, dstPoolId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeChainPathNotReady, lib.PoolModule, fmt.Sprintf("chain path to pool %d on chain %d is not active", dstPoolId, dstChainId))
}

// ErrChainPathAlreadyActive() signals a double activation; activation is irreversible and happens once
func ErrChainPathAlreadyActive(dstChainId, dstPoolId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeChainPathAlreadyActive, lib.PoolModule, fmt.Sprintf("chain path to pool %d on chain %d is already active", dstPoolId, dstChainId))
}

func ErrNoChainPaths(poolId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeNoChainPaths, lib.PoolModule, fmt.Sprintf("pool %d has no chain paths", poolId))
}

func ErrZeroAmount() lib.ErrorI {
	return lib.NewError(lib.CodeZeroAmount, lib.PoolModule, "amount is zero after decimal conversion")
}

func ErrZeroAccount() lib.ErrorI {
	return lib.NewError(lib.CodeZeroAccount, lib.PoolModule, "account address is empty")
}

func ErrSwapsHalted(poolId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeSwapsHalted, lib.PoolModule, fmt.Sprintf("swaps are halted for pool %d", poolId))
}

func ErrInsufficientBalance(dstChainId, dstPoolId, have, need uint64) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientBalance, lib.PoolModule,
		fmt.Sprintf("chain path to pool %d on chain %d holds %d but %d is needed", dstPoolId, dstChainId, have, need))
}

func ErrInsufficientLiquidity(poolId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientLiquidity, lib.PoolModule, fmt.Sprintf("pool %d has insufficient liquidity", poolId))
}

func ErrZeroTotalSupply(poolId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeZeroTotalSupply, lib.PoolModule, fmt.Sprintf("pool %d has no outstanding shares", poolId))
}

func ErrZeroTotalWeight(poolId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeZeroTotalWeight, lib.PoolModule, fmt.Sprintf("pool %d has zero total chain path weight", poolId))
}

// ErrFeesExceedAmount() signals a fee library bug, not a transient condition
func ErrFeesExceedAmount(fees, amount uint64) lib.ErrorI {
	return lib.NewError(lib.CodeFeesExceedAmount, lib.PoolModule, fmt.Sprintf("fee breakdown %d exceeds amount %d", fees, amount))
}

func ErrSlippageTooHigh(amount, minAmount uint64) lib.ErrorI {
	return lib.NewError(lib.CodeSlippageTooHigh, lib.PoolModule, fmt.Sprintf("amount %d is below the minimum %d", amount, minAmount))
}

func ErrInvalidBasisPoints(bp uint64) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidBasisPoints, lib.PoolModule, fmt.Sprintf("basis points %d exceed the denominator %d", bp, lib.BasisPointDenominator))
}

func ErrUnknownFeeLibrary(name string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownFeeLibrary, lib.PoolModule, fmt.Sprintf("fee library %s is not registered", name))
}

func ErrUnknownToken(symbol string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownToken, lib.PoolModule, fmt.Sprintf("token %s is not registered", symbol))
}

// ErrLkbUnderflow() signals the destination consumed more than was ever promised outward
func ErrLkbUnderflow(dstChainId, dstPoolId, have, need uint64) lib.ErrorI {
	return lib.NewError(lib.CodeLkbUnderflow, lib.PoolModule,
		fmt.Sprintf("chain path to pool %d on chain %d promised %d but %d was consumed", dstPoolId, dstChainId, have, need))
}

func ErrInvalidGenesis(reason string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidGenesis, lib.PoolModule, fmt.Sprintf("invalid genesis: %s", reason))
}
