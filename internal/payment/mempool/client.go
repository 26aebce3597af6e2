// Package mempool implements the ledger provider on top of the mempool.space (Esplora) REST API.
package mempool

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/go-resty/resty/v2"
	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	userAgent = "paywatch-backend/1"
	jsonType  = "application/json"
)

// ErrUnexpectedStatus is returned when the provider answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected provider status")

var defaultBaseURLs = map[model.Network]string{
	model.Mainnet: "https://mempool.space/api",
	model.Testnet: "https://mempool.space/testnet/api",
	model.Signet:  "https://mempool.space/signet/api",
}

// DefaultBaseURL returns the public mempool.space API root for a network.
func DefaultBaseURL(network model.Network) (string, error) {
	u, ok := defaultBaseURLs[network]
	if !ok {
		return "", fmt.Errorf("no default ledger url for network %q", string(network))
	}
	return u, nil
}

// NewRestyClient returns an HTTP client for the provider. Retries stay disabled:
// a failed lookup is reported to the classifier as is.
func NewRestyClient(timeout time.Duration, logger *zap.Logger) *resty.Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", jsonType).
		SetLogger(logger.Named("resty").Sugar())
}

// Config holds what is needed to reach a provider.
type Config struct {
	Network model.Network
	// BaseURL overrides the mempool.space root for Network.
	BaseURL string
	// RequestsPerSecond throttles outbound calls, 0 disables throttling.
	RequestsPerSecond int
	HTTPClient        *resty.Client
}

// New resolves the base URL and rate limiter from cfg and builds a Client.
func New(cfg Config, metrics Metrics) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		var err error
		if baseURL, err = DefaultBaseURL(cfg.Network); err != nil {
			return nil, err
		}
	}
	if cfg.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("requests per second must not be negative, got %d", cfg.RequestsPerSecond)
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}
	return NewClient(baseURL, cfg.HTTPClient, limiter, metrics), nil
}

type esploraTx struct {
	TxID   string `json:"txid"`
	Status struct {
		Confirmed   bool    `json:"confirmed"`
		BlockHeight *uint64 `json:"block_height"`
	} `json:"status"`
}

// Client queries address transactions and the chain tip from an Esplora compatible API.
type Client struct {
	baseURL    string
	httpClient *resty.Client
	limiter    ratelimit.Limiter
	metrics    Metrics
}

// NewClient constructs an instrumented, rate limited provider client.
func NewClient(baseURL string, httpClient *resty.Client, limiter ratelimit.Limiter, metrics Metrics) *Client {
	if httpClient == nil {
		httpClient = NewRestyClient(0, nil)
	}
	if limiter == nil {
		limiter = ratelimit.NewUnlimited()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		metrics:    metrics,
	}
}

// AddressTransactions returns confirmed transactions for the address in provider order.
func (c *Client) AddressTransactions(ctx context.Context, address string) (txs []model.LedgerTransaction, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("address_txs", err, started)
	}()
	return c.transactions(ctx, "/address/"+url.PathEscape(address)+"/txs")
}

// AddressMempoolTransactions returns unconfirmed transactions for the address in provider order.
func (c *Client) AddressMempoolTransactions(ctx context.Context, address string) (txs []model.LedgerTransaction, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("address_mempool_txs", err, started)
	}()
	return c.transactions(ctx, "/address/"+url.PathEscape(address)+"/txs/mempool")
}

// TipHeight returns the height of the most recent block known to the provider.
func (c *Client) TipHeight(ctx context.Context) (height uint64, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("tip_height", err, started)
	}()

	res, err := c.get(ctx, "/blocks/tip/height", nil)
	if err != nil {
		return 0, err
	}
	height, err = strconv.ParseUint(strings.TrimSpace(res.String()), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse tip height: %w", err)
	}
	return height, nil
}

func (c *Client) transactions(ctx context.Context, path string) ([]model.LedgerTransaction, error) {
	var raw []esploraTx
	if _, err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}

	txs := make([]model.LedgerTransaction, 0, len(raw))
	for _, tx := range raw {
		txID, err := normalizeTxID(tx.TxID)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		lt := model.LedgerTransaction{TxID: txID}
		if tx.Status.BlockHeight != nil {
			lt.BlockHeight = *tx.Status.BlockHeight
		}
		txs = append(txs, lt)
	}
	return txs, nil
}

// normalizeTxID checks a provider txid is a well-formed hash and returns its
// canonical lowercase form. An empty txid is passed through.
func normalizeTxID(txID string) (string, error) {
	if txID == "" {
		return "", nil
	}
	if len(txID) != chainhash.MaxHashStringSize {
		return "", fmt.Errorf("txid %q: want %d hex characters", txID, chainhash.MaxHashStringSize)
	}
	hash, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return "", fmt.Errorf("txid %q: %w", txID, err)
	}
	return hash.String(), nil
}

// get issues one throttled GET. When result is set the body is decoded into it as JSON.
func (c *Client) get(ctx context.Context, path string, result any) (*resty.Response, error) {
	c.limiter.Take()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := c.httpClient.R().SetContext(ctx)
	if result != nil {
		req = req.SetResult(result).ForceContentType(jsonType)
	}

	res, err := req.Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("get %s: %w: %d", path, ErrUnexpectedStatus, res.StatusCode())
	}
	return res, nil
}
