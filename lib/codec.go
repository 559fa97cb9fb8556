package lib

import (
	"encoding/json"
	"reflect"

	"github.com/near/borsh-go"
)

/*
	This file implements the shared serialization layer: Borsh for deterministic
	binary encoding of store values and wire payloads, JSON for configuration
	files and the RPC surface. Borsh is byte-for-byte deterministic for a given
	struct, which the cross-chain protocol relies on when a payload is cached,
	retried, and compared against the original.
*/

// Marshal() serializes an object into deterministic binary bytes
func Marshal(message any) ([]byte, ErrorI) {
	// dereference pointers before serializing: borsh encodes a pointer as an
	// option (leading presence byte) while Unmarshal() decodes into the bare
	// struct, so the pair is only symmetric on the dereferenced value
	if v := reflect.ValueOf(message); v.Kind() == reflect.Ptr && !v.IsNil() {
		message = v.Elem().Interface()
	}
	bz, err := borsh.Serialize(message)
	if err != nil {
		return nil, ErrMarshal(err)
	}
	return bz, nil
}

// Unmarshal() deserializes binary bytes into the specified pointer
func Unmarshal(data []byte, ptr any) ErrorI {
	if data == nil || ptr == nil {
		return nil
	}
	if err := borsh.Deserialize(ptr, data); err != nil {
		return ErrUnmarshal(err)
	}
	return nil
}

// MarshalJSON() serializes a message into a JSON byte slice
func MarshalJSON(message any) ([]byte, ErrorI) {
	bz, err := json.Marshal(message)
	if err != nil {
		return nil, ErrJSONMarshal(err)
	}
	return bz, nil
}

// MarshalJSONIndent() serializes a message into an indented JSON byte slice
func MarshalJSONIndent(message any) ([]byte, ErrorI) {
	bz, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return nil, ErrJSONMarshal(err)
	}
	return bz, nil
}

// UnmarshalJSON() deserializes a JSON byte slice into the specified object
func UnmarshalJSON(bz []byte, ptr any) ErrorI {
	if err := json.Unmarshal(bz, ptr); err != nil {
		return ErrJSONUnmarshal(err)
	}
	return nil
}
