package lib

import (
	"encoding/binary"
	"math"
	"math/big"
	"os"
	"path/filepath"
)

/* This file contains math, key, and file helpers shared by every module */

// BasisPointDenominator is the denominator for all basis-point parameters (100% == 10_000)
const BasisPointDenominator = 10_000

// SafeMulDiv() computes a*b/c with big.Int intermediates to avoid uint64 overflow
func SafeMulDiv(a, b, c uint64) uint64 {
	if c == 0 {
		return 0
	}
	// product = a * b
	product := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	// result = product / c
	result := new(big.Int).Div(product, new(big.Int).SetUint64(c))
	// clamp at max uint64 since the callers operate on uint64 ledgers
	if !result.IsUint64() {
		return math.MaxUint64
	}
	return result.Uint64()
}

// SafeAdd() adds two uint64 and fails fatally on overflow
func SafeAdd(a, b uint64, op string) (uint64, ErrorI) {
	if a > math.MaxUint64-b {
		return 0, ErrArithmeticOverflow(op)
	}
	return a + b, nil
}

// SafeSub() subtracts b from a and fails fatally on underflow
func SafeSub(a, b uint64, op string) (uint64, ErrorI) {
	if b > a {
		return 0, ErrArithmeticOverflow(op)
	}
	return a - b, nil
}

// BasisPoints() returns amount scaled by a basis-point fraction
func BasisPoints(amount, bp uint64) uint64 {
	return SafeMulDiv(amount, bp, BasisPointDenominator)
}

// JoinLenPrefix() appends segments with a single length byte before each,
// preventing ambiguity between adjacent variable-length key parts
func JoinLenPrefix(toAppend ...[]byte) (res []byte) {
	// for each item to append
	for _, item := range toAppend {
		if item == nil {
			continue
		}
		// store the length of the segment in a single byte
		length := []byte{byte(len(item))}
		// append to the rest of the segment
		res = append(append(res, length...), item...)
	}
	return
}

// Uint64ToBytes() converts a uint64 to big-endian bytes preserving lexicographic order
func Uint64ToBytes(u uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, u)
	return bz
}

// BytesToUint64() converts big-endian bytes back to a uint64
func BytesToUint64(bz []byte) uint64 {
	if len(bz) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// NewJSONFromFile() reads a json object from file
func NewJSONFromFile(o any, dataDirPath, filePath string) ErrorI {
	bz, err := os.ReadFile(filepath.Join(dataDirPath, filePath))
	if err != nil {
		return ErrReadFile(err)
	}
	return UnmarshalJSON(bz, &o)
}

// SaveJSONToFile() saves a json object to a file
func SaveJSONToFile(j any, dataDirPath, filePath string) (err ErrorI) {
	bz, err := MarshalJSONIndent(j)
	if err != nil {
		return
	}
	if e := os.WriteFile(filepath.Join(dataDirPath, filePath), bz, os.ModePerm); e != nil {
		return ErrWriteFile(e)
	}
	return
}
