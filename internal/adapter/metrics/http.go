package metrics

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds Prometheus metrics for HTTP request tracking.
type HTTPMetrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
	InFlightGauge   prometheus.Gauge
}

// NewHTTPMetrics creates and registers HTTP metrics on the given registry.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status_code"}),
		InFlightGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of HTTP requests currently being processed.",
		}),
	}

	reg.MustRegister(m.RequestDuration, m.RequestsTotal, m.InFlightGauge)
	return m
}

// Middleware records latency and counts per route template. Operational endpoints
// (/metrics, /version, /health/*) are skipped. Unmatched paths share one "unmatched" label
// so scanners cannot blow up the series count.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if isOperational(route) {
				return next(c)
			}

			m.InFlightGauge.Inc()
			defer m.InFlightGauge.Dec()

			start := time.Now()
			err := next(c)

			status := strconv.Itoa(responseStatus(c, err))
			if errors.Is(err, echo.ErrNotFound) {
				route = "unmatched"
			}
			method := c.Request().Method
			m.RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
			m.RequestsTotal.WithLabelValues(method, route, status).Inc()
			return err
		}
	}
}

// responseStatus is the status the client will see. An echo error returned up the chain
// has not been written yet, so its code wins over the recorder's default 200.
func responseStatus(c echo.Context, err error) int {
	var httpErr *echo.HTTPError
	if err != nil && !c.Response().Committed && errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return c.Response().Status
}

func isOperational(route string) bool {
	switch {
	case route == "/metrics", route == "/version":
		return true
	case strings.HasPrefix(route, "/health/"):
		return true
	default:
		return false
	}
}
