package lib

import (
	"fmt"
	"math"
)

// ErrorI is the error type shared by every module: a code for programmatic
// handling, a module for origin, and the built-in error interface for display
type ErrorI interface {
	Code() ErrorCode     // Returns the error code
	Module() ErrorModule // Returns the error module
	error                // Implements the built-in error interface
}

var _ ErrorI = &Error{} // Ensures *Error implements ErrorI

type ErrorCode uint32 // Defines a type for error codes

type ErrorModule string // Defines a type for error modules

type Error struct {
	ECode   ErrorCode   `json:"code"`   // Error code
	EModule ErrorModule `json:"module"` // Error module
	Msg     string      `json:"msg"`    // Error message
}

func NewError(code ErrorCode, module ErrorModule, msg string) *Error {
	// Constructs a new Error instance
	return &Error{ECode: code, EModule: module, Msg: msg}
}

// Code() returns the associated error code
func (p *Error) Code() ErrorCode { return p.ECode }

// Module() returns module field
func (p *Error) Module() ErrorModule { return p.EModule }

// String() calls Error()
func (p *Error) String() string { return p.Error() }

// Error() returns a formatted string including module, code, and message
func (p *Error) Error() string {
	return fmt.Sprintf("\nModule:  %s\nCode:    %d\nMessage: %s", p.EModule, p.ECode, p.Msg)
}

const (
	NoCode ErrorCode = math.MaxUint32

	// Main Module
	MainModule ErrorModule = "main"

	// Main Module Error Codes
	CodeMarshal            ErrorCode = 1
	CodeUnmarshal          ErrorCode = 2
	CodeJSONMarshal        ErrorCode = 3
	CodeJSONUnmarshal      ErrorCode = 4
	CodeWriteFile          ErrorCode = 5
	CodeReadFile           ErrorCode = 6
	CodeInvalidArgument    ErrorCode = 7
	CodeArithmeticOverflow ErrorCode = 8
	CodeLogWrite           ErrorCode = 9
	CodeUnknownPayloadTag  ErrorCode = 10

	// Store Module
	StoreModule ErrorModule = "store"

	// Store Module Error Codes
	CodeOpenDB      ErrorCode = 1
	CodeCloseDB     ErrorCode = 2
	CodeStoreSet    ErrorCode = 3
	CodeStoreGet    ErrorCode = 4
	CodeStoreDelete ErrorCode = 5
	CodeStoreIter   ErrorCode = 6
	CodeCommitDB    ErrorCode = 7
	CodeNilKey      ErrorCode = 8
	CodeKeyTooLarge ErrorCode = 9
	CodeTxnWrite    ErrorCode = 10

	// Pool Module
	PoolModule ErrorModule = "pool"

	// Pool Module Error Codes
	CodeUnknownPool            ErrorCode = 1
	CodeDuplicatePool          ErrorCode = 2
	CodeUnknownChainPath       ErrorCode = 3
	CodeDuplicateChainPath     ErrorCode = 4
	CodeChainPathNotReady      ErrorCode = 5
	CodeChainPathAlreadyActive ErrorCode = 6
	CodeNoChainPaths           ErrorCode = 7
	CodeZeroAmount             ErrorCode = 8
	CodeZeroAccount            ErrorCode = 9
	CodeSwapsHalted            ErrorCode = 10
	CodeInsufficientBalance    ErrorCode = 11
	CodeInsufficientLiquidity  ErrorCode = 12
	CodeZeroTotalSupply        ErrorCode = 13
	CodeZeroTotalWeight        ErrorCode = 14
	CodeFeesExceedAmount       ErrorCode = 15
	CodeSlippageTooHigh        ErrorCode = 16
	CodeInvalidBasisPoints     ErrorCode = 17
	CodeUnknownFeeLibrary      ErrorCode = 18
	CodeTokenFailure           ErrorCode = 19
	CodeUnknownToken           ErrorCode = 20
	CodeLkbUnderflow           ErrorCode = 21
	CodeInvalidGenesis         ErrorCode = 22

	// Token Module
	TokenModule ErrorModule = "token"

	// Token Module Error Codes
	CodeTokenPaused       ErrorCode = 1
	CodeInsufficientFunds ErrorCode = 2

	// Bridge Module
	BridgeModule ErrorModule = "bridge"

	// Bridge Module Error Codes
	CodeUnauthorizedSource  ErrorCode = 1
	CodeUnknownPeer         ErrorCode = 2
	CodeNothingToRetry      ErrorCode = 3
	CodeNothingToRevert     ErrorCode = 4
	CodeNotRevertible       ErrorCode = 5
	CodeTransportSend       ErrorCode = 6
	CodeRemoteFailureCached ErrorCode = 7
	CodeDuplicateEndpoint   ErrorCode = 8

	// RPC Module
	RPCModule ErrorModule = "rpc"

	// RPC Module Error Codes
	CodeInvalidRequest ErrorCode = 1
	CodeInvalidParams  ErrorCode = 2
)

// ErrMarshal() is returned when binary serialization fails
func ErrMarshal(err error) ErrorI {
	return NewError(CodeMarshal, MainModule, fmt.Sprintf("marshal() failed with err: %s", err.Error()))
}

// ErrUnmarshal() is returned when binary deserialization fails
func ErrUnmarshal(err error) ErrorI {
	return NewError(CodeUnmarshal, MainModule, fmt.Sprintf("unmarshal() failed with err: %s", err.Error()))
}

func ErrJSONMarshal(err error) ErrorI {
	return NewError(CodeJSONMarshal, MainModule, fmt.Sprintf("json.marshal() failed with err: %s", err.Error()))
}

func ErrJSONUnmarshal(err error) ErrorI {
	return NewError(CodeJSONUnmarshal, MainModule, fmt.Sprintf("json.unmarshal() failed with err: %s", err.Error()))
}

func ErrWriteFile(err error) ErrorI {
	return NewError(CodeWriteFile, MainModule, fmt.Sprintf("os.WriteFile() failed with err: %s", err.Error()))
}

func ErrReadFile(err error) ErrorI {
	return NewError(CodeReadFile, MainModule, fmt.Sprintf("os.ReadFile() failed with err: %s", err.Error()))
}

func ErrInvalidArgument(name string) ErrorI {
	return NewError(CodeInvalidArgument, MainModule, fmt.Sprintf("argument %s is invalid", name))
}

// ErrArithmeticOverflow() signals a fatal accounting bug, never a transient condition
func ErrArithmeticOverflow(op string) ErrorI {
	return NewError(CodeArithmeticOverflow, MainModule, fmt.Sprintf("arithmetic overflow during %s", op))
}

func ErrUnknownPayloadTag(tag uint8) ErrorI {
	return NewError(CodeUnknownPayloadTag, MainModule, fmt.Sprintf("unknown payload tag %d", tag))
}
