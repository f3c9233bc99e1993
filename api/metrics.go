package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts served requests by route template, method and status
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carrental_http_requests_total",
		Help: "Total number of HTTP requests served.",
	},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route template and method
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carrental_http_request_duration_seconds",
		Help:    "Time spent serving HTTP requests.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route"},
	)

	// BookingsTotal counts booking submissions by final state
	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carrental_bookings_total",
		Help: "Total number of booking submissions by final state.",
	},
		[]string{"state"},
	)

	// OrdersCompletedTotal counts orders moved to completed by the scheduler
	OrdersCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carrental_orders_completed_total",
		Help: "Total number of orders marked completed after their end date.",
	})

	// LiveSearchConnections is the number of open live search websockets
	LiveSearchConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carrental_live_search_connections",
		Help: "Current number of open live search connections.",
	})
)
