// Package metrics exposes prometheus instruments for the HTTP and pricing paths.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics captures request-level health signals.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP instruments on the default registerer.
func NewHTTPMetrics() *HTTPMetrics {
	return newHTTPMetrics(prometheus.DefaultRegisterer)
}

func newHTTPMetrics(registerer prometheus.Registerer) *HTTPMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arfeen_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arfeen_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	registerer.MustRegister(m.requests, m.duration)
	return m
}

// GinMiddleware records request counts and latency.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// QuoteMetrics counts pricing engine outcomes.
type QuoteMetrics struct {
	quotes   *prometheus.CounterVec
	fallback *prometheus.CounterVec
}

// NewQuoteMetrics registers the pricing instruments on the default registerer.
func NewQuoteMetrics() *QuoteMetrics {
	return newQuoteMetrics(prometheus.DefaultRegisterer)
}

func newQuoteMetrics(registerer prometheus.Registerer) *QuoteMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &QuoteMetrics{
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arfeen_quotes_total",
			Help: "Quotes produced by service type and pricing source.",
		}, []string{"service_type", "source"}),
		fallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arfeen_quote_fallbacks_total",
			Help: "Quotes that fell back to the static rate table.",
		}, []string{"service_type"}),
	}

	registerer.MustRegister(m.quotes, m.fallback)
	return m
}

// RecordQuote increments quote counts. source is "rule" or "fallback".
func (m *QuoteMetrics) RecordQuote(serviceType, source string) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(serviceType, source).Inc()
	if source == "fallback" {
		m.fallback.WithLabelValues(serviceType).Inc()
	}
}
