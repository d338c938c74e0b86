// Package monitoring exposes prometheus collectors for the mainchain RPC
// client.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels the result of a single RPC call.
type Outcome string

const (
	// OutcomeSuccess is a call whose response decoded cleanly.
	OutcomeSuccess Outcome = "success"

	// OutcomeRPCError is a call the node answered with an RPC error
	// object.
	OutcomeRPCError Outcome = "rpc_error"

	// OutcomeTransportError is a call that failed below the RPC layer,
	// e.g. a refused connection.
	OutcomeTransportError Outcome = "transport_error"

	// OutcomeDecodeError is a call whose response could not be converted
	// into its typed result.
	OutcomeDecodeError Outcome = "decode_error"

	// OutcomeCanceled is a call abandoned because its context was done.
	OutcomeCanceled Outcome = "canceled"
)

// RPCMetrics tracks calls made to the node, labelled by RPC method.
type RPCMetrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewRPCMetrics creates the collectors under the given namespace. They are
// not registered until Register is called.
func NewRPCMetrics(namespace string) *RPCMetrics {
	return &RPCMetrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rpc",
				Name:      "calls_total",
				Help:      "Number of RPC calls by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "rpc",
				Name:      "call_duration_seconds",
				Help:      "Round trip time of RPC calls by method.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// Register adds the collectors to reg.
func (m *RPCMetrics) Register(reg prometheus.Registerer) error {
	if err := reg.Register(m.calls); err != nil {
		return err
	}

	return reg.Register(m.latency)
}

// Observe records one finished call.
func (m *RPCMetrics) Observe(method string, outcome Outcome,
	elapsed time.Duration) {

	m.calls.WithLabelValues(method, string(outcome)).Inc()
	m.latency.WithLabelValues(method).Observe(elapsed.Seconds())
}
