package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fabinv_session_requests_total",
		Help: "Number of management API requests.",
	}, []string{"op"})
	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fabinv_session_request_errors_total",
		Help: "Number of management API request errors.",
	}, []string{"op"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fabinv_session_request_duration_seconds",
		Help:    "Duration of management API requests.",
		Buckets: prometheus.LinearBuckets(.01, .1, 10),
	}, []string{"op"})
)

func init() {
	for _, labels := range []prometheus.Labels{
		{"op": "login"},
		{"op": "get"},
	} {
		requestCount.With(labels)
		requestErrors.With(labels)
		requestDuration.With(labels)
	}
}
