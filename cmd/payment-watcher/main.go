// Package main runs the payment watcher: it re-polls payment status for a set of
// addresses and logs every status transition.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/paywatch-backend/internal/metrics"
	"github.com/goodnatureofminers/paywatch-backend/internal/payment/mempool"
	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
	"github.com/goodnatureofminers/paywatch-backend/internal/payment/service/classifier"
	"github.com/goodnatureofminers/paywatch-backend/internal/payment/service/watcher"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Network         model.Network `long:"network" env:"PAYMENT_WATCHER_NETWORK" description:"bitcoin network (mainnet, testnet, signet)" default:"mainnet"`
	LedgerURL       string        `long:"ledger-url" env:"PAYMENT_WATCHER_LEDGER_URL" description:"Esplora API root, defaults to mempool.space for the network"`
	LedgerRPS       int           `long:"ledger-rps" env:"PAYMENT_WATCHER_LEDGER_RPS" description:"max ledger requests per second, 0 for unlimited" default:"5"`
	HTTPTimeout     time.Duration `long:"http-timeout" env:"PAYMENT_WATCHER_HTTP_TIMEOUT" description:"timeout for a single ledger request" default:"10s"`
	Addresses       []string      `long:"address" env:"PAYMENT_WATCHER_ADDRESSES" env-delim:"," description:"address to watch, optionally address:order_ref" required:"true"`
	Interval        time.Duration `long:"interval" env:"PAYMENT_WATCHER_INTERVAL" description:"delay between polling rounds" default:"30s"`
	Jitter          float64       `long:"jitter" env:"PAYMENT_WATCHER_JITTER" description:"fraction of the interval used as random spread" default:"0.1"`
	Workers         int           `long:"workers" env:"PAYMENT_WATCHER_WORKERS" description:"addresses checked concurrently" default:"4"`
	ExitOnConfirmed bool          `long:"exit-on-confirmed" env:"PAYMENT_WATCHER_EXIT_ON_CONFIRMED" description:"stop once every address is confirmed"`
	MetricsAddr     string        `long:"metrics-addr" env:"PAYMENT_WATCHER_METRICS_ADDR" description:"address for metrics server" default:":2113"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("payment watcher failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	targets := make([]watcher.Target, 0, len(cfg.Addresses))
	for _, raw := range cfg.Addresses {
		target, err := watcher.ParseTarget(raw)
		if err != nil {
			return fmt.Errorf("parse address %q: %w", raw, err)
		}
		targets = append(targets, target)
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	ledger, err := mempool.New(mempool.Config{
		Network:           cfg.Network,
		BaseURL:           cfg.LedgerURL,
		RequestsPerSecond: cfg.LedgerRPS,
		HTTPClient:        mempool.NewRestyClient(cfg.HTTPTimeout, logger),
	}, metrics.NewLedgerClient(cfg.Network))
	if err != nil {
		return fmt.Errorf("init ledger client: %w", err)
	}
	svc, err := classifier.NewService(ledger, metrics.NewClassifier(cfg.Network), logger)
	if err != nil {
		return err
	}
	w, err := watcher.NewService(svc, metrics.NewWatcher(cfg.Network), targets, watcher.Options{
		Interval:        cfg.Interval,
		Jitter:          cfg.Jitter,
		WorkerCount:     cfg.Workers,
		ExitOnConfirmed: cfg.ExitOnConfirmed,
	}, logger)
	if err != nil {
		return err
	}

	runErr := w.Run(ctx)
	for address, result := range w.Results() {
		logger.Info("final payment status",
			zap.String("address", address),
			zap.String("status", string(result.Status)),
			zap.Uint64("confirmations", result.Confirmations),
		)
	}
	return runErr
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
