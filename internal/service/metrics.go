package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "order_service",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total number of successfully created orders.",
	})

	orderCreationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_service",
		Subsystem: "orders",
		Name:      "creation_failures_total",
		Help:      "Total number of rejected or failed order creations by reason.",
	}, []string{"reason"})

	enrichmentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "order_service",
		Subsystem: "enrichment",
		Name:      "lookup_failures_total",
		Help:      "Total number of product lookups skipped during enrichment.",
	})

	eventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_service",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Total number of order events that failed to publish.",
	}, []string{"type"})
)
