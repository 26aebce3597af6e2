package watcher

import (
	"context"
	"time"

	"github.com/goodnatureofminers/paywatch-backend/internal/payment/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Classifier interface {
		Classify(ctx context.Context, req model.CheckRequest) model.CheckResult
	}
	Metrics interface {
		ObserveRound(err error, addresses int, started time.Time)
		ObserveTransition(from, to model.Status)
	}
)
