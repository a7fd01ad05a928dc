package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockService interface {
		ResolvePosition(ctx context.Context, position string) (model.BlockNumber, error)
		GetBlock(ctx context.Context, position string) (*model.BlockInfo, error)
		ListBlocks(ctx context.Context, query model.PaginationQuery[model.BlockNumber]) (model.Paginated[model.BlockInfo, model.BlockNumber], error)
		ListTransactions(ctx context.Context, position string, query model.PaginationQuery[model.TxHash]) (model.Paginated[model.Transaction, model.BlockAndTxHash], error)
	}
	Pinger interface {
		Ping(ctx context.Context) error
	}
	Metrics interface {
		ObserveRequest(route, method string, code int, started time.Time)
	}
)
