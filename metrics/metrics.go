package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_pulse_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "status"})

	HTTPLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stock_pulse_http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	})

	PagesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_pulse_pages_rendered_total",
		Help: "Total number of rendered pages",
	}, []string{"page"})

	SearchQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_pulse_search_queries_total",
		Help: "Total number of search queries",
	})

	TickerClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stock_pulse_ticker_clients",
		Help: "Connected ticker websocket clients",
	})

	TickerBroadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_pulse_ticker_broadcasts_total",
		Help: "Total number of ticker broadcasts",
	})

	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_pulse_errors_total",
		Help: "Total number of errors",
	}, []string{"type"})
)
