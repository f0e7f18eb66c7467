package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	orderRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "order_service",
			Subsystem: "http",
			Name:      "order_requests_total",
			Help:      "Total number of order API requests by operation and status code",
		},
		[]string{"op", "code"},
	)

	orderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "order_service",
			Subsystem: "http",
			Name:      "order_request_duration_seconds",
			Help:      "Histogram of successful order API request durations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		orderRequestTotal,
		orderRequestDuration,
	)
}
