package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Kubeconfig load results.
const (
	LoadSuccess    = "success"
	LoadNotFound   = "not_found"
	LoadParseError = "parse_error"
)

var (
	KubeconfigLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kbearer_kubeconfig_loads_total",
		Help: "Total number of kubeconfig loads grouped by result",
	}, []string{"result"})
	// Transport failures are recorded with code "error".
	ClientRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kbearer_client_requests_total",
		Help: "Total number of requests sent by the authorized client",
	}, []string{"method", "code"})
	ClientRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kbearer_client_request_duration_seconds",
		Help:    "Latency of requests sent by the authorized client",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

func init() {
	prometheus.MustRegister(KubeconfigLoads)
	prometheus.MustRegister(ClientRequests)
	prometheus.MustRegister(ClientRequestDuration)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
