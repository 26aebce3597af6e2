package transport

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// HealthServiceName is the service name accepted by health checks besides the empty server-wide name.
const HealthServiceName = "paywatch.PaymentStatus"

// HealthHandler implements the gRPC health service; the server is healthy while the ledger answers.
type HealthHandler struct {
	healthpb.UnimplementedHealthServer

	probe   LedgerProbe
	timeout time.Duration
	logger  *zap.Logger
}

// NewHealthHandler returns a HealthHandler instance.
func NewHealthHandler(probe LedgerProbe, timeout time.Duration, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		probe:   probe,
		timeout: timeout,
		logger:  logger.Named("health_handler"),
	}
}

// Check reports server health.
func (h *HealthHandler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if service := req.GetService(); service != "" && service != HealthServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", service)
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	if _, err := h.probe.TipHeight(ctx); err != nil {
		h.logger.Warn("ledger probe failed", zap.Error(err))
		return &healthpb.HealthCheckResponse{
			Status: healthpb.HealthCheckResponse_NOT_SERVING,
		}, nil
	}
	return &healthpb.HealthCheckResponse{
		Status: healthpb.HealthCheckResponse_SERVING,
	}, nil
}
