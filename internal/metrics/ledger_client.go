// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paywatch",
		Subsystem: "ledger_client",
		Name:      "operations_total",
		Help:      "Count of ledger provider API operations.",
	}, []string{"operation", "network", "status"})
	ledgerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "paywatch",
		Subsystem: "ledger_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger provider API operations.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation", "network", "status"})
)

// LedgerClient tracks metrics for calls to the ledger provider.
type LedgerClient struct {
	network model.Network
}

// NewLedgerClient constructs a metrics collector for ledger provider calls.
func NewLedgerClient(network model.Network) *LedgerClient {
	if network == "" {
		network = "unknown"
	}
	return &LedgerClient{network: network}
}

// Observe records a single provider call outcome and duration.
func (m LedgerClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ledgerRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	ledgerRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}
