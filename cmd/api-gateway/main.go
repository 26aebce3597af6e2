package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/paywatch-backend/internal/metrics"
	"github.com/goodnatureofminers/paywatch-backend/internal/payment/mempool"
	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
	"github.com/goodnatureofminers/paywatch-backend/internal/payment/service/classifier"
	"github.com/goodnatureofminers/paywatch-backend/internal/transport"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type config struct {
	GRPCAddr     string        `long:"grpc-addr" env:"API_GATEWAY_GRPC_ADDR" description:"gRPC health server addr" default:":8000"`
	RestAddr     string        `long:"rest-addr" env:"API_GATEWAY_REST_ADDR" description:"rest addr" default:":8001"`
	Network      model.Network `long:"network" env:"API_GATEWAY_NETWORK" description:"bitcoin network (mainnet, testnet, signet)" default:"mainnet"`
	LedgerURL    string        `long:"ledger-url" env:"API_GATEWAY_LEDGER_URL" description:"Esplora API root, defaults to mempool.space for the network"`
	LedgerRPS    int           `long:"ledger-rps" env:"API_GATEWAY_LEDGER_RPS" description:"max ledger requests per second, 0 for unlimited" default:"10"`
	HTTPTimeout  time.Duration `long:"http-timeout" env:"API_GATEWAY_HTTP_TIMEOUT" description:"timeout for a single ledger request" default:"8s"`
	CheckTimeout time.Duration `long:"check-timeout" env:"API_GATEWAY_CHECK_TIMEOUT" description:"deadline for a whole payment check" default:"15s"`
	CacheMaxAge  time.Duration `long:"cache-max-age" env:"API_GATEWAY_CACHE_MAX_AGE" description:"Cache-Control max-age of check responses" default:"30s"`
	ProbeTimeout time.Duration `long:"probe-timeout" env:"API_GATEWAY_PROBE_TIMEOUT" description:"deadline for the health ledger probe" default:"3s"`
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
	grpcZap.ReplaceGrpcLoggerV2(logger)
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("api gateway failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := cfg.Network.Params()
	if err != nil {
		return err
	}
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

	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	healthpb.RegisterHealthServer(grpcServer, transport.NewHealthHandler(ledger, cfg.ProbeTimeout, logger))
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	go func() {
		logger.Info("Starting gRPC server", zap.String("addr", cfg.GRPCAddr))
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server failed", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	payment := transport.NewPaymentHandler(svc, params, cfg.CheckTimeout, cfg.CacheMaxAge, logger)
	s := &http.Server{
		Addr:              cfg.RestAddr,
		Handler:           transport.NewRouter(payment, promhttp.Handler()),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.CheckTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server",
		zap.String("addr", cfg.RestAddr),
		zap.String("network", string(cfg.Network)),
	)
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}
