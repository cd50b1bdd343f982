package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	QRGenerated        *prometheus.CounterVec
	GenerationLatency  *prometheus.HistogramVec
	SlowGenerations    prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	TokenRequests      prometheus.Counter
	AuthFailures       prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		QRGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "qrgate_qr_generated_total",
			Help: "Total number of QR codes generated, labeled by output format",
		}, []string{"format"}),
		GenerationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qrgate_generation_latency_seconds",
			Help:    "Latency of QR code generation in seconds, labeled by output format",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		SlowGenerations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "qrgate_slow_generations_total",
			Help: "Total number of generations exceeding the advisory timeout",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "qrgate_validation_failures_total",
			Help: "Total number of rejected generation requests, labeled by reason",
		}, []string{"reason"}),
		TokenRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "qrgate_token_requests_total",
			Help: "Total number of token issuance requests",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "qrgate_auth_failures_total",
			Help: "Total number of authentication failures",
		}),
	}
}
