package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CheckoutAttempts counts checkout requests by outcome:
	// success, rejected, timeout, error.
	CheckoutAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ebuy_checkout_attempts_total",
		Help: "Checkout attempts partitioned by outcome.",
	}, []string{"outcome"})

	CheckoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ebuy_checkout_duration_seconds",
		Help:    "End to end checkout latency.",
		Buckets: prometheus.DefBuckets,
	})

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ebuy_orders_created_total",
		Help: "Orders created by successful checkouts.",
	})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ebuy_order_emails_total",
		Help: "Order confirmation emails by result.",
	}, []string{"result"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
