package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

// BlockService answers block and transaction queries of the explorer API.
type BlockService struct {
	resolver  *BlockPositionResolver
	cache     BlockCache
	paginator *Paginator
	logger    *zap.Logger
}

// NewBlockService wires the resolver, the shared block cache and the paginator over storage.
func NewBlockService(storage Storage, cache BlockCache, logger *zap.Logger) *BlockService {
	return &BlockService{
		resolver:  NewBlockPositionResolver(storage),
		cache:     cache,
		paginator: NewPaginator(storage),
		logger:    logger,
	}
}

// ResolvePosition returns the block number a textual position points at.
func (s *BlockService) ResolvePosition(ctx context.Context, position string) (model.BlockNumber, error) {
	return s.resolver.ResolveString(ctx, position)
}

// GetBlock returns the block at position, or nil when no such block exists yet.
func (s *BlockService) GetBlock(ctx context.Context, position string) (*model.BlockInfo, error) {
	number, err := s.resolver.ResolveString(ctx, position)
	if err != nil {
		return nil, err
	}

	details, err := s.cache.Get(ctx, number)
	if err != nil {
		return nil, storageFailure(ctx, err)
	}
	if details == nil {
		s.logger.Debug("block not found", zap.String("position", position), zap.Uint64("number", uint64(number)))
		return nil, nil
	}

	info := model.NewBlockInfo(*details)
	return &info, nil
}

// ListBlocks returns a page of blocks around query.From.
func (s *BlockService) ListBlocks(ctx context.Context, query model.PaginationQuery[model.BlockNumber]) (model.Paginated[model.BlockInfo, model.BlockNumber], error) {
	return s.paginator.PaginateBlocks(ctx, query)
}

// ListTransactions returns a page of the transactions of the block at position,
// anchored at the transaction query.From.
func (s *BlockService) ListTransactions(ctx context.Context, position string, query model.PaginationQuery[model.TxHash]) (model.Paginated[model.Transaction, model.BlockAndTxHash], error) {
	number, err := s.resolver.ResolveString(ctx, position)
	if err != nil {
		return model.Paginated[model.Transaction, model.BlockAndTxHash]{}, err
	}

	return s.paginator.PaginateTransactions(ctx, model.PaginationQuery[model.BlockAndTxHash]{
		From: model.BlockAndTxHash{
			BlockNumber: number,
			TxHash:      query.From,
		},
		Limit:     query.Limit,
		Direction: query.Direction,
	})
}
