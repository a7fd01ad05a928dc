package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "http_api",
		Name:      "requests_total",
		Help:      "Count of REST API requests.",
	}, []string{"route", "method", "code"})
	httpAPIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "http_api",
		Name:      "request_duration_seconds",
		Help:      "Duration of REST API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "code"})
)

// HTTPAPI tracks REST API requests by route template.
type HTTPAPI struct{}

// NewHTTPAPI creates an HTTPAPI metrics collector.
func NewHTTPAPI() *HTTPAPI {
	return &HTTPAPI{}
}

// ObserveRequest records a served request.
func (m HTTPAPI) ObserveRequest(route, method string, code int, started time.Time) {
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(code)

	httpAPIRequestsTotal.WithLabelValues(route, method, status).Inc()
	httpAPIRequestDuration.WithLabelValues(route, method, status).Observe(time.Since(started).Seconds())
}
