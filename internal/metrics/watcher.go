package metrics

import (
	"time"

	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	watcherRoundTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paywatch",
		Subsystem: "watcher",
		Name:      "round_total",
		Help:      "Count of polling rounds.",
	}, []string{"network", "status"})

	watcherRoundDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "paywatch",
		Subsystem: "watcher",
		Name:      "round_duration_seconds",
		Help:      "Duration of a polling round over all watched addresses.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	watcherRoundSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "paywatch",
		Subsystem: "watcher",
		Name:      "round_size",
		Help:      "Number of addresses checked per round.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1..512
	}, []string{"network"})

	watcherTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paywatch",
		Subsystem: "watcher",
		Name:      "transitions_total",
		Help:      "Count of observed payment status transitions.",
	}, []string{"network", "from", "to"})
)

// Watcher tracks metrics for the payment watcher loop.
type Watcher struct {
	network model.Network
}

// NewWatcher constructs a Watcher metrics collector.
func NewWatcher(network model.Network) *Watcher {
	if network == "" {
		network = "unknown"
	}
	return &Watcher{network: network}
}

// ObserveRound records a polling round outcome, its size and duration.
func (m Watcher) ObserveRound(err error, addresses int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	watcherRoundTotal.WithLabelValues(string(m.network), status).Inc()
	watcherRoundDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	watcherRoundSize.WithLabelValues(string(m.network)).Observe(float64(addresses))
}

// ObserveTransition records a status change for a watched address.
func (m Watcher) ObserveTransition(from, to model.Status) {
	if from == "" {
		from = "none"
	}
	watcherTransitionsTotal.WithLabelValues(string(m.network), string(from), string(to)).Inc()
}
