package cache

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Storage interface {
		BlockDetails(ctx context.Context, number model.BlockNumber) (*model.BlockDetails, error)
	}
	HeadStorage interface {
		LastFinalizedBlockNumber(ctx context.Context) (model.BlockNumber, error)
	}
	Metrics interface {
		ObserveLookup(outcome string, started time.Time)
	}
)
