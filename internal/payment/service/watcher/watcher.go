// Package watcher re-polls payment status for a set of addresses and reports transitions.
package watcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goodnatureofminers/paywatch-backend/internal/clock"
	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
	"github.com/goodnatureofminers/paywatch-backend/pkg/workerpool"
	"go.uber.org/zap"
)

var rank = map[model.Status]int{
	model.StatusPending:   1,
	model.StatusDetected:  2,
	model.StatusConfirmed: 3,
}

// Options tune the polling loop.
type Options struct {
	Interval        time.Duration
	Jitter          float64
	WorkerCount     int
	ExitOnConfirmed bool
}

// Service polls the classifier for every target on a cadence.
type Service struct {
	logger          *zap.Logger
	classifier      Classifier
	metrics         Metrics
	sleep           func(context.Context, time.Duration) error
	interval        time.Duration
	jitter          float64
	workerCount     int
	exitOnConfirmed bool
	targets         []Target

	mu   sync.Mutex
	last map[string]model.CheckResult
}

// NewService builds a Service; duplicate addresses are watched once.
func NewService(
	classifier Classifier,
	metrics Metrics,
	targets []Target,
	opts Options,
	logger *zap.Logger,
) (*Service, error) {
	if classifier == nil {
		return nil, errors.New("watcher classifier is required")
	}
	if metrics == nil {
		return nil, errors.New("watcher metrics is required")
	}
	if len(targets) == 0 {
		return nil, errors.New("watcher needs at least one target")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = defaultWorkerCount
	}

	seen := make(map[string]struct{}, len(targets))
	unique := make([]Target, 0, len(targets))
	for _, target := range targets {
		if _, ok := seen[target.Address]; ok {
			continue
		}
		seen[target.Address] = struct{}{}
		unique = append(unique, target)
	}

	return &Service{
		logger:          logger.Named("watcher"),
		classifier:      classifier,
		metrics:         metrics,
		sleep:           clock.SleepWithContext,
		interval:        opts.Interval,
		jitter:          opts.Jitter,
		workerCount:     opts.WorkerCount,
		exitOnConfirmed: opts.ExitOnConfirmed,
		targets:         unique,
		last:            make(map[string]model.CheckResult, len(unique)),
	}, nil
}

// Run polls until the context is canceled or, with ExitOnConfirmed, every target is confirmed.
func (s *Service) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		done, err := s.round(ctx)
		if err != nil {
			return err
		}
		if done {
			s.logger.Info("all watched payments confirmed", zap.Int("addresses", len(s.targets)))
			return nil
		}
		if err := s.sleep(ctx, clock.Jittered(s.interval, s.jitter)); err != nil {
			return err
		}
	}
}

// Results returns the latest result per watched address.
func (s *Service) Results() map[string]model.CheckResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]model.CheckResult, len(s.last))
	for address, result := range s.last {
		out[address] = result
	}
	return out
}

func (s *Service) round(ctx context.Context) (bool, error) {
	started := time.Now()
	err := workerpool.Each(ctx, s.workerCount, s.targets, s.check)
	s.metrics.ObserveRound(err, len(s.targets), started)
	if err != nil {
		return false, err
	}
	return s.exitOnConfirmed && s.allConfirmed(), nil
}

func (s *Service) check(ctx context.Context, target Target) {
	result := s.classifier.Classify(ctx, model.CheckRequest{
		Address:  target.Address,
		OrderRef: target.OrderRef,
	})
	// a canceled round folds into pending; do not record it as a regression.
	if ctx.Err() != nil {
		return
	}

	previous, known := s.record(target.Address, result)
	if known && previous.Status == result.Status {
		s.logger.Debug("payment status unchanged",
			zap.String("address", target.Address),
			zap.String("status", string(result.Status)),
			zap.Uint64("confirmations", result.Confirmations),
		)
		return
	}

	s.metrics.ObserveTransition(previous.Status, result.Status)
	fields := []zap.Field{
		zap.String("address", target.Address),
		zap.String("order_ref", target.OrderRef),
		zap.String("from", string(previous.Status)),
		zap.String("to", string(result.Status)),
		zap.Uint64("confirmations", result.Confirmations),
		zap.String("message", result.Message),
	}
	if result.HasTx() {
		fields = append(fields, zap.String("txid", *result.TxID))
	}
	if known && rank[result.Status] < rank[previous.Status] {
		s.logger.Warn("payment status regressed", fields...)
		return
	}
	s.logger.Info("payment status changed", fields...)
}

func (s *Service) record(address string, result model.CheckResult) (model.CheckResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.last[address]
	s.last[address] = result
	return previous, ok
}

func (s *Service) allConfirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, target := range s.targets {
		if s.last[target.Address].Status != model.StatusConfirmed {
			return false
		}
	}
	return true
}
