package transport

import (
	"context"

	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Classifier interface {
		Classify(ctx context.Context, req model.CheckRequest) model.CheckResult
	}
	LedgerProbe interface {
		TipHeight(ctx context.Context) (uint64, error)
	}
)
