package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

// MaxLimit caps the page size of every listing.
const MaxLimit uint32 = 100

// Paginator serves cursor pages over blocks and over the transactions of one block.
//
// Storage returns items in selection order: ascending for newer, nearest-first
// (descending) for older. Returned lists are always ascending by cursor.
type Paginator struct {
	storage PageStorage
}

// NewPaginator constructs a Paginator.
func NewPaginator(storage PageStorage) *Paginator {
	return &Paginator{storage: storage}
}

// PaginateBlocks returns blocks strictly after (newer) or before (older) query.From.
func (p *Paginator) PaginateBlocks(ctx context.Context, query model.PaginationQuery[model.BlockNumber]) (model.Paginated[model.BlockInfo, model.BlockNumber], error) {
	if err := validateQuery(query.Limit, query.Direction); err != nil {
		return model.Paginated[model.BlockInfo, model.BlockNumber]{}, err
	}

	var (
		blocks []model.BlockDetails
		count  uint64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if blocks, err = p.storage.BlocksPage(gctx, query); err != nil {
			return fmt.Errorf("load blocks page: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if count, err = p.storage.BlockCount(gctx); err != nil {
			return fmt.Errorf("count blocks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Paginated[model.BlockInfo, model.BlockNumber]{}, storageFailure(ctx, err)
	}

	blocks = selectPage(blocks, query.Limit, func(b model.BlockDetails) bool {
		return beyondCursor(b.Number, query.From, query.Direction)
	})
	slices.SortFunc(blocks, func(a, b model.BlockDetails) int {
		return cmp.Compare(a.Number, b.Number)
	})

	list := make([]model.BlockInfo, 0, len(blocks))
	for _, b := range blocks {
		list = append(list, model.NewBlockInfo(b))
	}

	return model.Paginated[model.BlockInfo, model.BlockNumber]{
		List:      list,
		Count:     count,
		Limit:     query.Limit,
		Direction: query.Direction,
		From:      query.From,
	}, nil
}

// PaginateTransactions returns transactions of query.From.BlockNumber strictly after (newer)
// or before (older) the transaction query.From.TxHash. Count is the block's transaction total.
func (p *Paginator) PaginateTransactions(ctx context.Context, query model.PaginationQuery[model.BlockAndTxHash]) (model.Paginated[model.Transaction, model.BlockAndTxHash], error) {
	if err := validateQuery(query.Limit, query.Direction); err != nil {
		return model.Paginated[model.Transaction, model.BlockAndTxHash]{}, err
	}

	block := query.From.BlockNumber
	index, found, err := p.storage.TransactionIndex(ctx, block, query.From.TxHash)
	if err != nil {
		return model.Paginated[model.Transaction, model.BlockAndTxHash]{}, storageFailure(ctx, fmt.Errorf("locate transaction %s: %w", query.From.TxHash, err))
	}
	if !found {
		return model.Paginated[model.Transaction, model.BlockAndTxHash]{}, InvalidInput(CodeTransactionNotFoundInBlock, ErrTransactionNotFoundInBlock,
			"transaction %s not found in block %d", query.From.TxHash, block)
	}

	var (
		txs   []model.Transaction
		count uint64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if txs, err = p.storage.BlockTransactionsPage(gctx, block, index, query.Limit, query.Direction); err != nil {
			return fmt.Errorf("load transactions page of block %d: %w", block, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if count, err = p.storage.BlockTransactionCount(gctx, block); err != nil {
			return fmt.Errorf("count transactions of block %d: %w", block, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Paginated[model.Transaction, model.BlockAndTxHash]{}, storageFailure(ctx, err)
	}

	txs = selectPage(txs, query.Limit, func(tx model.Transaction) bool {
		return tx.BlockNumber == block && beyondCursor(tx.BlockIndex, index, query.Direction)
	})
	slices.SortFunc(txs, func(a, b model.Transaction) int {
		return cmp.Compare(a.BlockIndex, b.BlockIndex)
	})

	return model.Paginated[model.Transaction, model.BlockAndTxHash]{
		List:      txs,
		Count:     count,
		Limit:     query.Limit,
		Direction: query.Direction,
		From:      query.From,
	}, nil
}

func validateQuery(limit uint32, direction model.Direction) error {
	if limit == 0 || limit > MaxLimit {
		return InvalidInput(CodeInvalidLimit, ErrInvalidLimit, "limit must be between 1 and %d, got %d", MaxLimit, limit)
	}
	if _, err := model.ParseDirection(string(direction)); err != nil {
		return InvalidInput(CodeInvalidDirection, ErrInvalidDirection, "direction must be %q or %q, got %q",
			model.DirectionNewer, model.DirectionOlder, direction)
	}
	return nil
}

// selectPage keeps the first limit items, in selection order, that satisfy keep.
func selectPage[T any](items []T, limit uint32, keep func(T) bool) []T {
	page := make([]T, 0, min(len(items), int(limit)))
	for _, item := range items {
		if len(page) == int(limit) {
			break
		}
		if keep(item) {
			page = append(page, item)
		}
	}
	return page
}

func beyondCursor[C cmp.Ordered](value, from C, direction model.Direction) bool {
	if direction == model.DirectionOlder {
		return value < from
	}
	return value > from
}
