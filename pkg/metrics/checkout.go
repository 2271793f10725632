package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout routing decisions and request latency.
type CheckoutMetrics struct {
	routes   *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	gates    *prometheus.CounterVec
	requests *prometheus.HistogramVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	routes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_route_total",
		Help: "Checkout requests by selected flow.",
	}, []string{"route", "deprecated"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_payment_outcome_total",
		Help: "Pay page decisions by outcome and rejection reason.",
	}, []string{"outcome", "reason"})
	gates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_gate_total",
		Help: "Checkout page decisions.",
	}, []string{"outcome"})
	requests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
	reg.MustRegister(routes, outcomes, gates, requests)
	return &CheckoutMetrics{
		routes:   routes,
		outcomes: outcomes,
		gates:    gates,
		requests: requests,
	}
}

func (c *CheckoutMetrics) ObserveRoute(kind string, deprecated bool) {
	if c == nil || c.routes == nil {
		return
	}
	c.routes.WithLabelValues(normalizeLabel(kind), strconv.FormatBool(deprecated)).Inc()
}

func (c *CheckoutMetrics) ObserveOutcome(kind, reason string) {
	if c == nil || c.outcomes == nil {
		return
	}
	c.outcomes.WithLabelValues(normalizeLabel(kind), reason).Inc()
}

func (c *CheckoutMetrics) ObserveGate(kind string) {
	if c == nil || c.gates == nil {
		return
	}
	c.gates.WithLabelValues(normalizeLabel(kind)).Inc()
}

// ObserveRequest records the latency of a served request. route is the
// matched route pattern, not the raw path.
func (c *CheckoutMetrics) ObserveRequest(route string, status int, duration time.Duration) {
	if c == nil || c.requests == nil {
		return
	}
	c.requests.WithLabelValues(normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
