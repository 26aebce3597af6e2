// Package classifier derives a payment status for a Bitcoin address from ledger provider lookups.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
	"github.com/goodnatureofminers/paywatch-backend/pkg/safe"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errUnexpected = errors.New("unexpected lookup failure")

// outcome holds the result of a single provider lookup: either a value or an error.
type outcome[T any] struct {
	value T
	err   error
}

func (o outcome[T]) ok() bool {
	return o.err == nil
}

// Service classifies the on-chain payment state of a single address per call.
// It keeps no state between calls.
type Service struct {
	ledger  Ledger
	metrics Metrics
	logger  *zap.Logger
}

// NewService builds a Service with dependencies.
func NewService(ledger Ledger, metrics Metrics, logger *zap.Logger) (*Service, error) {
	if ledger == nil {
		return nil, errors.New("classifier ledger is required")
	}
	if metrics == nil {
		return nil, errors.New("classifier metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger:  ledger,
		metrics: metrics,
		logger:  logger.Named("classifier"),
	}, nil
}

// Classify never fails: provider errors degrade the result towards pending,
// and a mined transaction is only reported confirmed with a verified count.
func (s *Service) Classify(ctx context.Context, req model.CheckRequest) (result model.CheckResult) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = s.unexpected(req, fmt.Errorf("%w: %v", errUnexpected, r))
		}
		s.metrics.ObserveClassification(result.Status, started)
	}()

	confirmed, mempool := s.lookup(ctx, req.Address)
	for _, err := range []error{confirmed.err, mempool.err} {
		if errors.Is(err, errUnexpected) {
			return s.unexpected(req, err)
		}
	}

	return s.decide(confirmed, mempool, func() outcome[uint64] {
		height, err := s.ledger.TipHeight(ctx)
		return outcome[uint64]{value: height, err: err}
	})
}

// lookup issues the confirmed and mempool lookups concurrently. A failure of
// one does not cancel the other.
func (s *Service) lookup(ctx context.Context, address string) (confirmed, mempool outcome[[]model.LedgerTransaction]) {
	var g errgroup.Group
	g.Go(capture(&confirmed, func() ([]model.LedgerTransaction, error) {
		return s.ledger.AddressTransactions(ctx, address)
	}))
	g.Go(capture(&mempool, func() ([]model.LedgerTransaction, error) {
		return s.ledger.AddressMempoolTransactions(ctx, address)
	}))
	_ = g.Wait()
	return confirmed, mempool
}

func capture[T any](o *outcome[T], fetch func() (T, error)) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				o.err = fmt.Errorf("%w: %v", errUnexpected, r)
			}
		}()
		o.value, o.err = fetch()
		return nil
	}
}

// decide maps lookup outcomes to a result. tip is only invoked when a
// confirmed transaction is the best evidence available.
func (s *Service) decide(
	confirmed, mempool outcome[[]model.LedgerTransaction],
	tip func() outcome[uint64],
) model.CheckResult {
	switch {
	case !confirmed.ok() && !mempool.ok():
		s.metrics.ObserveDegraded(degradedLedgerUnavailable)
		return pending(msgUnavailable)
	case mempool.ok() && len(mempool.value) > 0:
		return model.CheckResult{
			Status:  model.StatusDetected,
			TxID:    txRef(mempool.value[0].TxID),
			Message: msgInMempool,
		}
	case confirmed.ok() && len(confirmed.value) > 0:
		return s.mined(confirmed.value[0], tip())
	default:
		return pending(msgNoTransactions)
	}
}

func (s *Service) mined(candidate model.LedgerTransaction, tip outcome[uint64]) model.CheckResult {
	if !tip.ok() {
		return s.unknownDepth(candidate, degradedTipUnavailable)
	}
	if !candidate.Mined() {
		return s.unknownDepth(candidate, degradedNoBlockHeight)
	}
	confirmations, err := safe.SpanUint64(candidate.BlockHeight, tip.value)
	if err != nil {
		return s.unknownDepth(candidate, degradedTipBehind)
	}

	if confirmations >= confirmationThreshold {
		return model.CheckResult{
			Status:        model.StatusConfirmed,
			Confirmations: confirmations,
			TxID:          txRef(candidate.TxID),
			Message:       fmt.Sprintf(msgConfirmed, confirmations),
		}
	}
	return model.CheckResult{
		Status:        model.StatusDetected,
		Confirmations: confirmations,
		TxID:          txRef(candidate.TxID),
		Message:       fmt.Sprintf(msgDetected, confirmations),
	}
}

// unknownDepth never reports confirmed: the transaction is mined but its depth is not verified.
func (s *Service) unknownDepth(candidate model.LedgerTransaction, reason string) model.CheckResult {
	s.metrics.ObserveDegraded(reason)
	return model.CheckResult{
		Status:        model.StatusDetected,
		Confirmations: assumedConfirmations,
		TxID:          txRef(candidate.TxID),
		Message:       msgUnknownDepth,
	}
}

func (s *Service) unexpected(req model.CheckRequest, err error) model.CheckResult {
	s.logger.Error("blockchain check failed",
		zap.String("order_ref", req.OrderRef),
		zap.String("address", req.Address),
		zap.Error(err),
	)
	s.metrics.ObserveDegraded(degradedUnexpected)
	result := pending(msgUnavailable)
	result.Error = errLedgerUnavailable
	return result
}

func pending(message string) model.CheckResult {
	return model.CheckResult{
		Status:  model.StatusPending,
		Message: message,
	}
}

func txRef(txid string) *string {
	if txid == "" {
		return nil
	}
	return &txid
}
