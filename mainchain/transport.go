package mainchain

import (
	"context"
	"encoding/json"

	"github.com/btcsuite/btcd/rpcclient"
)

// Transport performs a single JSON-RPC call and hands back the raw result.
// Connection handling, authentication and retries are entirely the
// transport's concern. Errors returned by Invoke are passed to the caller
// wrapped in a TransportError.
type Transport interface {
	// Invoke calls method with the given positional parameters.
	Invoke(ctx context.Context, method string,
		params []json.RawMessage) (json.RawMessage, error)
}

// NamedTransport is implemented by transports that can send parameters as
// a single JSON object instead of a positional array.
type NamedTransport interface {
	Transport

	// InvokeNamed calls method with params, which must encode a JSON
	// object.
	InvokeNamed(ctx context.Context, method string,
		params json.RawMessage) (json.RawMessage, error)
}

// RPCClientTransport adapts a btcd rpcclient to the Transport interface. The
// rpcclient should be created in HTTP POST mode when talking to bitcoind.
type RPCClientTransport struct {
	client *rpcclient.Client
}

// A compile-time check to ensure RPCClientTransport implements the Transport
// interface.
var _ Transport = (*RPCClientTransport)(nil)

// NewRPCClientTransport wraps client.
func NewRPCClientTransport(client *rpcclient.Client) *RPCClientTransport {
	return &RPCClientTransport{
		client: client,
	}
}

// Invoke sends the request through the rpcclient and waits for either the
// response or the context to be done. A cancelled context abandons the
// in-flight request; the rpcclient still owns it and will discard the
// response when it arrives.
//
// NOTE: This is part of the Transport interface.
func (t *RPCClientTransport) Invoke(ctx context.Context, method string,
	params []json.RawMessage) (json.RawMessage, error) {

	if params == nil {
		params = []json.RawMessage{}
	}

	type result struct {
		raw json.RawMessage
		err error
	}

	future := t.client.RawRequestAsync(method, params)
	resultChan := make(chan result, 1)
	go func() {
		raw, err := future.Receive()
		resultChan <- result{raw: raw, err: err}
	}()

	select {
	case res := <-resultChan:
		return res.raw, res.err

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
