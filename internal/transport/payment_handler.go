// Package transport exposes gRPC/HTTP handlers.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/go-playground/validator/v10"
	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckBTCPath is the route of the payment status endpoint.
const CheckBTCPath = "/api/check-btc"

const allowedMethods = "GET, OPTIONS"

type checkQuery struct {
	Address  string `validate:"required"`
	OrderRef string
}

type errorResponse struct {
	Error string `json:"error"`
}

// PaymentHandler serves payment status checks for a single network.
type PaymentHandler struct {
	classifier   Classifier
	params       *chaincfg.Params
	validate     *validator.Validate
	checkTimeout time.Duration
	cacheControl string
	logger       *zap.Logger
}

// NewPaymentHandler returns a PaymentHandler instance.
func NewPaymentHandler(
	classifier Classifier,
	params *chaincfg.Params,
	checkTimeout time.Duration,
	cacheMaxAge time.Duration,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		classifier:   classifier,
		params:       params,
		validate:     validator.New(),
		checkTimeout: checkTimeout,
		cacheControl: fmt.Sprintf("public, max-age=%d", int(cacheMaxAge.Seconds())),
		logger:       logger.Named("payment_handler"),
	}
}

// ServeHTTP answers GET with the payment status of the queried address.
func (h *PaymentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-Id", requestID)

	switch r.Method {
	case http.MethodGet:
	case http.MethodOptions:
		// OPTIONS without preflight headers is not answered by the CORS layer.
		w.Header().Set("Allow", allowedMethods)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		w.Header().Set("Allow", allowedMethods)
		h.write(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	w.Header().Set("Cache-Control", h.cacheControl)
	query := checkQuery{
		Address:  r.URL.Query().Get("address"),
		OrderRef: r.URL.Query().Get("order_ref"),
	}
	if err := h.validate.Struct(query); err != nil {
		h.write(w, http.StatusBadRequest, errorResponse{Error: "Missing address parameter"})
		return
	}

	logger := h.logger.With(
		zap.String("request_id", requestID),
		zap.String("order_ref", query.OrderRef),
		zap.String("address", query.Address),
	)
	h.checkNetwork(logger, query.Address)

	ctx := r.Context()
	if h.checkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.checkTimeout)
		defer cancel()
	}

	result := h.classifier.Classify(ctx, model.CheckRequest{
		Address:  query.Address,
		OrderRef: query.OrderRef,
	})
	logger.Debug("payment status checked",
		zap.String("status", string(result.Status)),
		zap.Uint64("confirmations", result.Confirmations),
	)
	h.write(w, http.StatusOK, result)
}

// checkNetwork only logs: a malformed address still goes to the classifier and comes back pending.
func (h *PaymentHandler) checkNetwork(logger *zap.Logger, address string) {
	if h.params == nil {
		return
	}
	decoded, err := btcutil.DecodeAddress(address, h.params)
	if err != nil {
		logger.Warn("address does not decode", zap.String("network", h.params.Name), zap.Error(err))
		return
	}
	if !decoded.IsForNet(h.params) {
		logger.Warn("address belongs to another network", zap.String("network", h.params.Name))
	}
}

func (h *PaymentHandler) write(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
