package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "assettrack"

// Upload results used as label values
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

// Metrics holds the upload gateway collectors
type Metrics struct {
	UploadsTotal  *prometheus.CounterVec
	UploadedBytes prometheus.Histogram
	CleanupFiles  prometheus.Counter
	CleanupErrors prometheus.Counter
}

// New registers the collectors with reg. Pass prometheus.NewRegistry() in
// tests to keep them isolated from the default registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		UploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "files_total",
			Help:      "Uploaded files by outcome and rejection code",
		}, []string{"result", "code"}),

		UploadedBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "stored_bytes",
			Help:      "Size of persisted uploads in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		}),

		CleanupFiles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cleanup",
			Name:      "deleted_files_total",
			Help:      "Files removed by the cleanup sweep",
		}),

		CleanupErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cleanup",
			Name:      "errors_total",
			Help:      "Per-file failures during cleanup sweeps",
		}),
	}
}

// Accepted records a persisted file
func (m *Metrics) Accepted(size int64) {
	if m == nil {
		return
	}
	m.UploadsTotal.WithLabelValues(ResultAccepted, "").Inc()
	m.UploadedBytes.Observe(float64(size))
}

// Rejected records a rejected file or request
func (m *Metrics) Rejected(code string) {
	if m == nil {
		return
	}
	m.UploadsTotal.WithLabelValues(ResultRejected, code).Inc()
}

// Swept records the outcome of a cleanup sweep
func (m *Metrics) Swept(deleted, failed int) {
	if m == nil {
		return
	}
	m.CleanupFiles.Add(float64(deleted))
	m.CleanupErrors.Add(float64(failed))
}
