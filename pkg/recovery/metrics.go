package recovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricRecoveredMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dpclient",
		Name:      "recovered_messages_total",
		Help:      "Total response messages recovered from query streams.",
	})

	metricRecoveredBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dpclient",
		Name:      "recovered_bytes_total",
		Help:      "Total wire bytes recovered from query streams.",
	})

	metricSubRequestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dpclient",
		Name:      "sub_request_failures_total",
		Help:      "Sub-request failures by error kind.",
	}, []string{"kind"})

	// depth aggregates across buffers: each buffer moves the gauge by
	// deltas, so concurrent operations do not overwrite one another.
	metricBufferDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "dpclient",
		Name:      "buffer_depth",
		Help:      "Queued messages across all active recovery buffers.",
	})
)
