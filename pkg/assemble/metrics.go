package assemble

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricRecoveryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dpclient",
		Name:      "recovery_duration_seconds",
		Help:      "Time spent recovering response messages for one request.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
	})

	metricAssemblyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dpclient",
		Name:      "assembly_duration_seconds",
		Help:      "Time spent correlating and assembling one request.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
	})
)
