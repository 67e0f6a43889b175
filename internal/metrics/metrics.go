package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auctionhouse"

// Metrics holds every collector the service records into. Collectors are
// registered on the Registerer passed to New, so tests can use a private
// registry.
type Metrics struct {
	BidsTotal         *prometheus.CounterVec
	ListingsTotal     *prometheus.CounterVec
	FinalizedTotal    *prometheus.CounterVec
	SinkFailuresTotal *prometheus.CounterVec
	ActiveAuctions    prometheus.Gauge
	SweepDuration     prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Auction domain metrics
		BidsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bids_total",
				Help:      "Bids received, by outcome",
			},
			[]string{"outcome"},
		),
		ListingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "listings_total",
				Help:      "Listings received, by outcome",
			},
			[]string{"outcome"},
		),
		FinalizedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auctions_finalized_total",
				Help:      "Auctions finalized, by status",
			},
			[]string{"status"},
		),
		SinkFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "result_sink_failures_total",
				Help:      "Failed result deliveries, by sink",
			},
			[]string{"sink"},
		),
		ActiveAuctions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_auctions",
				Help:      "Auctions listed and not yet finalized",
			},
		),
		SweepDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sweep_duration_seconds",
				Help:      "Time spent finalizing due auctions per heartbeat",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 16), // 10µs to ~0.3s
			},
		),

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to ~1.6s
			},
			[]string{"method", "route"},
		),
	}
}
