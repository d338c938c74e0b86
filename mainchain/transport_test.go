package mainchain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/stretchr/testify/require"
)

// newTestRPCClient starts a JSON-RPC server answering with handle and
// returns an rpcclient connected to it in HTTP POST mode.
func newTestRPCClient(t *testing.T,
	handle func(method string, params []json.RawMessage) string) *rpcclient.Client {

	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				ID     json.RawMessage   `json:"id"`
				Method string            `json:"method"`
				Params []json.RawMessage `json:"params"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			fmt.Fprintf(w, `{%s,"id":%s}`,
				handle(req.Method, req.Params), req.ID)
		},
	))
	t.Cleanup(srv.Close)

	client, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         strings.TrimPrefix(srv.URL, "http://"),
		User:         "user",
		Pass:         "pass",
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(client.Shutdown)

	return client
}

// TestRPCClientTransport runs typed calls through the rpcclient adapter.
func TestRPCClientTransport(t *testing.T) {
	t.Parallel()

	rpcClient := newTestRPCClient(t, func(method string,
		params []json.RawMessage) string {

		switch method {
		case "getblockcount":
			return `"result":101,"error":null`

		case "countsidechaindeposits":
			if len(params) != 1 || string(params[0]) != "3" {
				return `"result":null,"error":{"code":-8,` +
					`"message":"bad params"}`
			}
			return `"result":12,"error":null`

		default:
			return `"result":null,"error":{"code":-32601,` +
				`"message":"Method not found"}`
		}
	})

	client := NewClient(NewRPCClientTransport(rpcClient))
	ctx := context.Background()

	count, err := client.GetBlockCount(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 101, count)

	deposits, err := client.CountSidechainDeposits(ctx, 3)
	require.NoError(t, err)
	require.EqualValues(t, 12, deposits)

	_, err = client.Stop(ctx)
	require.True(t, IsRPCError(err, btcjson.ErrRPCMethodNotFound.Code))
}

// TestRPCClientTransportCancel checks that a done context abandons the
// request.
func TestRPCClientTransportCancel(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	rpcClient := newTestRPCClient(t, func(string, []json.RawMessage) string {
		<-release
		return `"result":1,"error":null`
	})

	// Registered after the server so it runs before the server is
	// closed.
	t.Cleanup(func() { close(release) })

	client := NewClient(NewRPCClientTransport(rpcClient))

	ctx, cancel := context.WithTimeout(
		context.Background(), 50*time.Millisecond,
	)
	defer cancel()

	_, err := client.GetBlockCount(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}
