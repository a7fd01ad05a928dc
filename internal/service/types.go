package service

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	PositionStorage interface {
		LastCommittedBlockNumber(ctx context.Context) (model.BlockNumber, error)
		LastFinalizedBlockNumber(ctx context.Context) (model.BlockNumber, error)
	}
	PageStorage interface {
		BlocksPage(ctx context.Context, query model.PaginationQuery[model.BlockNumber]) ([]model.BlockDetails, error)
		BlockCount(ctx context.Context) (uint64, error)
		TransactionIndex(ctx context.Context, number model.BlockNumber, hash model.TxHash) (uint32, bool, error)
		BlockTransactionsPage(ctx context.Context, number model.BlockNumber, index, limit uint32, direction model.Direction) ([]model.Transaction, error)
		BlockTransactionCount(ctx context.Context, number model.BlockNumber) (uint64, error)
	}
	Storage interface {
		PositionStorage
		PageStorage
	}
	BlockCache interface {
		Get(ctx context.Context, number model.BlockNumber) (*model.BlockDetails, error)
	}
)
