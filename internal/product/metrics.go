package product

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var lookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "order_service",
	Subsystem: "product_client",
	Name:      "lookup_duration_seconds",
	Help:      "Latency of product lookups by outcome.",
	Buckets:   prometheus.DefBuckets,
}, []string{"outcome"})
