package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/workerpool"
)

// Warmer preloads the most recent finalized blocks so the first requests hit memory.
type Warmer struct {
	cache   *BlockDetailsCache
	storage HeadStorage
	limiter ratelimit.Limiter
	workers int
	logger  *zap.Logger
}

// NewWarmer constructs a Warmer issuing at most rps storage fetches per second (rps <= 0: unlimited).
func NewWarmer(cache *BlockDetailsCache, storage HeadStorage, workers, rps int, logger *zap.Logger) *Warmer {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}

	return &Warmer{
		cache:   cache,
		storage: storage,
		limiter: limiter,
		workers: workers,
		logger:  logger,
	}
}

// Warm loads up to count blocks ending at the last finalized one.
func (w *Warmer) Warm(ctx context.Context, count uint64) error {
	if count == 0 {
		return nil
	}

	started := time.Now()
	last, err := w.storage.LastFinalizedBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("get last finalized block number: %w", err)
	}

	numbers := warmupRange(last, count)
	err = workerpool.Process(ctx, w.workers, numbers, func(ctx context.Context, number model.BlockNumber) error {
		w.limiter.Take()
		if _, err := w.cache.Get(ctx, number); err != nil {
			return fmt.Errorf("warm block %d: %w", number, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.logger.Info("block cache warmed",
		zap.Uint64("last_finalized", uint64(last)),
		zap.Int("requested", len(numbers)),
		zap.Int("cached", w.cache.Len()),
		zap.Duration("took", time.Since(started)),
	)
	return nil
}

// warmupRange lists count block numbers from last downwards, stopping at zero.
func warmupRange(last model.BlockNumber, count uint64) []model.BlockNumber {
	if count > uint64(last)+1 {
		count = uint64(last) + 1
	}

	numbers := make([]model.BlockNumber, 0, count)
	for i := uint64(0); i < count; i++ {
		numbers = append(numbers, last-model.BlockNumber(i))
	}
	return numbers
}
