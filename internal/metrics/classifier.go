package metrics

import (
	"time"

	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	classificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paywatch",
		Subsystem: "classifier",
		Name:      "classifications_total",
		Help:      "Count of payment classifications by resulting status.",
	}, []string{"network", "status"})

	classificationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "paywatch",
		Subsystem: "classifier",
		Name:      "classification_duration_seconds",
		Help:      "Duration of a payment classification including provider lookups.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	classificationDegradedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paywatch",
		Subsystem: "classifier",
		Name:      "degraded_total",
		Help:      "Count of classifications that fell back because provider data was missing.",
	}, []string{"network", "reason"})
)

// Classifier tracks metrics for payment status classification.
type Classifier struct {
	network model.Network
}

// NewClassifier constructs a Classifier metrics collector.
func NewClassifier(network model.Network) *Classifier {
	if network == "" {
		network = "unknown"
	}
	return &Classifier{network: network}
}

// ObserveClassification records the outcome of a single classification.
func (m Classifier) ObserveClassification(status model.Status, started time.Time) {
	if status == "" {
		status = "unknown"
	}
	classificationsTotal.WithLabelValues(string(m.network), string(status)).Inc()
	classificationDuration.WithLabelValues(string(m.network), string(status)).
		Observe(time.Since(started).Seconds())
}

// ObserveDegraded records a fallback branch taken for the given reason.
func (m Classifier) ObserveDegraded(reason string) {
	classificationDegradedTotal.WithLabelValues(string(m.network), reason).Inc()
}
