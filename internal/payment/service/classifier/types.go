package classifier

import (
	"context"
	"time"

	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		AddressTransactions(ctx context.Context, address string) ([]model.LedgerTransaction, error)
		AddressMempoolTransactions(ctx context.Context, address string) ([]model.LedgerTransaction, error)
		TipHeight(ctx context.Context) (uint64, error)
	}
	Metrics interface {
		ObserveClassification(status model.Status, started time.Time)
		ObserveDegraded(reason string)
	}
)
