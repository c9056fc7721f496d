package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector is the interface used by the HTTP layer to record metrics.
type MetricsCollector interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordMessageReceived()
	RecordRateLimited()
}

// Collector records Prometheus metrics for the API.
type Collector struct {
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	messagesReceived prometheus.Counter
	rateLimited      prometheus.Counter
	reg              prometheus.Registerer
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		messagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_contact_messages_total",
			Help: "Contact messages accepted.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_contact_rate_limited_total",
			Help: "Contact submissions rejected by the rate limiter.",
		}),
		reg: reg,
	}

	reg.MustRegister(
		c.requests,
		c.requestDuration,
		c.messagesReceived,
		c.rateLimited,
	)
	return c
}

// RegisterClientGauge exposes the number of connected websocket clients.
func (c *Collector) RegisterClientGauge(count func() int) {
	c.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "portfolio_websocket_clients",
		Help: "Connected admin websocket clients.",
	}, func() float64 { return float64(count()) }))
}

// RecordRequest records one served HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordMessageReceived counts an accepted contact message.
func (c *Collector) RecordMessageReceived() {
	c.messagesReceived.Inc()
}

// RecordRateLimited counts a rejected contact submission.
func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
