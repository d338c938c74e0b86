package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// TestRPCMetricsObserve checks that calls are counted per method and
// outcome.
func TestRPCMetricsObserve(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := NewRPCMetrics("mainchain")
	require.NoError(t, metrics.Register(reg))

	metrics.Observe("getblock", OutcomeSuccess, time.Millisecond)
	metrics.Observe("getblock", OutcomeSuccess, 2*time.Millisecond)
	metrics.Observe("getblock", OutcomeDecodeError, time.Millisecond)
	metrics.Observe("stop", OutcomeRPCError, time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(
		metrics.calls.WithLabelValues("getblock", "success"),
	))
	require.Equal(t, 1.0, testutil.ToFloat64(
		metrics.calls.WithLabelValues("getblock", "decode_error"),
	))
	require.Equal(t, 1.0, testutil.ToFloat64(
		metrics.calls.WithLabelValues("stop", "rpc_error"),
	))
	require.Equal(t, 2, testutil.CollectAndCount(metrics.latency))

	// Registering twice on the same registry must fail.
	require.Error(t, metrics.Register(reg))
}
