package mainchain

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// recordedCall is a call seen by mockTransport.
type recordedCall struct {
	method string
	params []json.RawMessage
	named  json.RawMessage
}

// mockTransport answers calls from canned per-method results and records
// every call it sees.
type mockTransport struct {
	mu      sync.Mutex
	calls   []recordedCall
	results map[string]json.RawMessage
	errs    map[string]error

	// respond, if set, overrides results and errs.
	respond func(method string,
		params []json.RawMessage) (json.RawMessage, error)
}

func newMockTransport() *mockTransport {
	return &mockTransport{
		results: make(map[string]json.RawMessage),
		errs:    make(map[string]error),
	}
}

// setResult makes method answer with raw.
func (m *mockTransport) setResult(method, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[method] = json.RawMessage(raw)
}

// setErr makes method fail with err.
func (m *mockTransport) setErr(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errs[method] = err
}

func (m *mockTransport) Invoke(ctx context.Context, method string,
	params []json.RawMessage) (json.RawMessage, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.calls = append(m.calls, recordedCall{
		method: method,
		params: params,
	})
	respond := m.respond
	result, hasResult := m.results[method]
	err := m.errs[method]
	m.mu.Unlock()

	if respond != nil {
		return respond(method, params)
	}
	if err != nil {
		return nil, err
	}
	if !hasResult {
		return nil, fmt.Errorf("no result for %s", method)
	}

	return result, nil
}

// lastCall returns the most recent call.
func (m *mockTransport) lastCall() recordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls[len(m.calls)-1]
}

// lastParams returns the parameters of the most recent call as a JSON
// array.
func (m *mockTransport) lastParams() string {
	params := m.lastCall().params
	if params == nil {
		params = []json.RawMessage{}
	}

	b, err := json.Marshal(params)
	if err != nil {
		panic(err)
	}

	return string(b)
}

// namedMockTransport additionally accepts named parameters.
type namedMockTransport struct {
	*mockTransport
}

func (m *namedMockTransport) InvokeNamed(ctx context.Context, method string,
	params json.RawMessage) (json.RawMessage, error) {

	m.mu.Lock()
	m.calls = append(m.calls, recordedCall{
		method: method,
		named:  params,
	})
	result := m.results[method]
	m.mu.Unlock()

	return result, nil
}
