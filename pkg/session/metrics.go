package session

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coexm",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Requests sent to the container-infra endpoint, by method and status code.",
	}, []string{"method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "coexm",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of container-infra requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "coexm",
		Subsystem: "http",
		Name:      "request_retries_total",
		Help:      "Retries scheduled for idempotent requests.",
	})
)

type metricsRoundTripper struct {
	next http.RoundTripper
}

func instrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	return &metricsRoundTripper{next: next}
}

func (m *metricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := m.next.RoundTrip(req)
	requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	requestsTotal.WithLabelValues(req.Method, code).Inc()
	return resp, err
}
