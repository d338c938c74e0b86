package mainchain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/torkelrogstad/bip300301/codec"
	"github.com/torkelrogstad/bip300301/monitoring"
)

const (
	// DefaultMaxConcurrentRequests is the default number of requests that
	// batch helpers such as GetHeaders keep in flight at once.
	DefaultMaxConcurrentRequests = 8
)

// Client issues typed calls against a node through a Transport. It holds
// no state besides its configuration and is safe for concurrent use.
type Client struct {
	transport Transport

	// metrics is nil unless WithMetrics was given.
	metrics *monitoring.RPCMetrics

	maxConcurrentRequests int

	// headers caches GetBlockHeader results by hash. It is nil unless
	// WithHeaderCache was given.
	headers *lru.Cache[codec.BlockHash, Header]
}

// ClientOption is a functional option for NewClient.
type ClientOption func(*Client)

// WithMetrics records every call in the given collectors.
func WithMetrics(metrics *monitoring.RPCMetrics) ClientOption {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithMaxConcurrentRequests bounds the number of requests batch helpers keep
// in flight. Values below one are ignored.
func WithMaxConcurrentRequests(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxConcurrentRequests = n
		}
	}
}

// WithHeaderCache keeps up to size headers fetched by GetBlockHeader in
// memory. The header of a given hash never changes, so entries are never
// invalidated. A size below one disables the cache.
func WithHeaderCache(size int) ClientOption {
	return func(c *Client) {
		cache, err := lru.New[codec.BlockHash, Header](size)
		if err != nil {
			log.Debugf("Header cache disabled (size=%d): %v", size,
				err)
			return
		}
		c.headers = cache
	}
}

// NewClient creates a Client that sends its calls through transport.
func NewClient(transport Transport, opts ...ClientOption) *Client {
	c := &Client{
		transport:             transport,
		maxConcurrentRequests: DefaultMaxConcurrentRequests,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// absentParam marks an optional positional parameter that was not set.
type absentParam struct{}

// optionalParam turns an optional value into a call parameter.
func optionalParam[T any](o fn.Option[T]) any {
	return fn.ElimOption(
		o, func() any { return absentParam{} },
		func(v T) any { return v },
	)
}

// encodeParams marshals positional parameters. Unset optional parameters at
// the end of the list are dropped, unset ones followed by a set parameter
// are sent as null.
func encodeParams(method string, params []any) ([]json.RawMessage, error) {
	end := len(params)
	for end > 0 {
		if _, ok := params[end-1].(absentParam); !ok {
			break
		}
		end--
	}

	encoded := make([]json.RawMessage, 0, end)
	for i, param := range params[:end] {
		if _, ok := param.(absentParam); ok {
			encoded = append(encoded, json.RawMessage("null"))
			continue
		}

		raw, err := json.Marshal(param)
		if err != nil {
			return nil, fmt.Errorf("%s: unable to encode parameter "+
				"%d: %w", method, i, err)
		}
		encoded = append(encoded, raw)
	}

	return encoded, nil
}

// call encodes params, invokes method and decodes the result.
func call[T any](ctx context.Context, c *Client, method string,
	decode func(json.RawMessage) (T, error), params ...any) (T, error) {

	encoded, err := encodeParams(method, params)
	if err != nil {
		var zero T
		return zero, err
	}

	invoke := func(ctx context.Context) (json.RawMessage, error) {
		return c.transport.Invoke(ctx, method, encoded)
	}

	return roundTrip(ctx, c, method, invoke, decode)
}

// roundTrip runs a single request and decodes its result, recording the
// outcome in the client's metrics.
func roundTrip[T any](ctx context.Context, c *Client, method string,
	invoke func(context.Context) (json.RawMessage, error),
	decode func(json.RawMessage) (T, error)) (T, error) {

	var zero T

	log.Tracef("Calling %v", method)

	start := time.Now()
	raw, err := invoke(ctx)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(method, transportOutcome(err), elapsed)
		log.Debugf("Call to %v failed after %v: %v", method, elapsed,
			err)

		return zero, &TransportError{Method: method, Err: err}
	}

	result, err := decode(raw)
	if err != nil {
		c.observe(method, monitoring.OutcomeDecodeError, elapsed)
		log.Warnf("Unable to decode %v response: %v", method, err)

		return zero, &DecodeResponseError{Method: method, Err: err}
	}

	c.observe(method, monitoring.OutcomeSuccess, elapsed)
	log.Debugf("Call to %v returned %d bytes in %v", method, len(raw),
		elapsed)

	return result, nil
}

// observe records a finished call if metrics are enabled.
func (c *Client) observe(method string, outcome monitoring.Outcome,
	elapsed time.Duration) {

	if c.metrics == nil {
		return
	}
	c.metrics.Observe(method, outcome, elapsed)
}

// transportOutcome classifies a transport failure for metrics.
func transportOutcome(err error) monitoring.Outcome {
	var rpcErr *btcjson.RPCError
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):

		return monitoring.OutcomeCanceled

	case errors.As(err, &rpcErr):
		return monitoring.OutcomeRPCError

	default:
		return monitoring.OutcomeTransportError
	}
}

// decodeJSON decodes a result into a T. A null result is a type error, so
// a missing value is never reported as the zero value of T.
func decodeJSON[T any](raw json.RawMessage) (T, error) {
	var v T
	if codec.IsNull(raw) {
		return v, codec.NewDecodeError(
			"", "null", fmt.Errorf("%w: unexpected null",
				codec.ErrInvalidType),
		)
	}
	if err := codec.Unmarshal(raw, &v); err != nil {
		return v, err
	}

	return v, nil
}

// decodeNullable decodes a result that is either null or a T.
func decodeNullable[T any](raw json.RawMessage) (*T, error) {
	if codec.IsNull(raw) {
		return nil, nil
	}

	v, err := decodeJSON[T](raw)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// decodeObject decodes a result into a newly allocated T.
func decodeObject[T any](raw json.RawMessage) (*T, error) {
	v, err := decodeJSON[T](raw)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// decodeList decodes a JSON array result element by element, so that
// errors name the failing index.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	var list []T
	err := codec.DecodeArray(raw, func(_ int, elem json.RawMessage) error {
		var v T
		if err := codec.Unmarshal(elem, &v); err != nil {
			return err
		}
		list = append(list, v)

		return nil
	})
	if err != nil {
		return nil, err
	}

	if list == nil {
		list = []T{}
	}

	return list, nil
}

// decodeRaw passes the result through untouched.
func decodeRaw(raw json.RawMessage) (json.RawMessage, error) {
	return raw, nil
}

// decodeNull expects an empty result.
func decodeNull(raw json.RawMessage) (struct{}, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return struct{}{}, nil
	}

	return struct{}{}, codec.NewDecodeError(
		"", string(trimmed), fmt.Errorf("%w: expected null",
			codec.ErrInvalidType),
	)
}
