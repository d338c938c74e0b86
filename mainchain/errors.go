package mainchain

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
)

// TransportError wraps a failure reported by the Transport for a single
// call. The transport's own error, e.g. a *btcjson.RPCError carrying the
// node's error code, is available through errors.As.
type TransportError struct {
	// Method is the RPC method that was being called.
	Method string

	// Err is the error returned by the transport, unmodified.
	Err error
}

// Error returns a human readable description of the failed call.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Method, e.Err)
}

// Unwrap returns the transport's error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeResponseError is returned when the node answered a call but the
// result could not be converted into its typed form. Err is, or wraps, a
// *codec.DecodeError naming the offending field.
type DecodeResponseError struct {
	// Method is the RPC method whose result failed to decode.
	Method string

	// Err is the decode failure.
	Err error
}

// Error returns a human readable description of the decode failure.
func (e *DecodeResponseError) Error() string {
	return fmt.Sprintf("%s: unable to decode response: %v", e.Method,
		e.Err)
}

// Unwrap returns the decode failure.
func (e *DecodeResponseError) Unwrap() error {
	return e.Err
}

// SubmitBlockError is returned by SubmitBlock when the node rejects a block.
// Reason is the BIP 22 rejection string, e.g. "bad-txnmrklroot" or
// "duplicate".
type SubmitBlockError struct {
	Reason string
}

// Error returns the rejection reason.
func (e *SubmitBlockError) Error() string {
	return fmt.Sprintf("block rejected: %s", e.Reason)
}

// IsRPCError reports whether err carries a JSON-RPC error object from the
// node with the given code.
func IsRPCError(err error, code btcjson.RPCErrorCode) bool {
	var rpcErr *btcjson.RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}

	return rpcErr.Code == code
}
