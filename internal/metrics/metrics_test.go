package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordOutcomes(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Accepted(2048)
	m.Accepted(10)
	m.Rejected("CSRF_REQUIRED")
	m.Swept(3, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UploadsTotal.WithLabelValues(ResultAccepted, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UploadsTotal.WithLabelValues(ResultRejected, "CSRF_REQUIRED")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CleanupFiles))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CleanupErrors))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.Accepted(1)
		m.Rejected("X")
		m.Swept(1, 1)
	})
}
