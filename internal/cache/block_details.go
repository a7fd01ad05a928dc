// Package cache keeps immutable block metadata in memory in front of storage.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

// Lookup outcomes reported to Metrics.
const (
	OutcomeHit       = "hit"
	OutcomeFinalized = "finalized"
	OutcomePending   = "pending"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

const defaultFetchTimeout = 10 * time.Second

// BlockDetailsCache is a bounded read-through cache of finalized block details.
//
// Only finalized blocks are stored: pending details may still change and missing
// blocks may appear later. Entries never expire; the least recently used entry is
// evicted once capacity is reached.
type BlockDetailsCache struct {
	storage      Storage
	metrics      Metrics
	items        *ttlcache.Cache[model.BlockNumber, model.BlockDetails]
	inflight     singleflight.Group
	fetchTimeout time.Duration
}

// NewBlockDetailsCache constructs a cache holding at most capacity blocks.
// fetchTimeout bounds a storage fetch shared by concurrent misses; zero means the default.
func NewBlockDetailsCache(storage Storage, metrics Metrics, capacity uint64, fetchTimeout time.Duration) (*BlockDetailsCache, error) {
	if capacity == 0 {
		return nil, errors.New("block details cache capacity must be positive")
	}
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}

	return &BlockDetailsCache{
		storage: storage,
		metrics: metrics,
		items: ttlcache.New[model.BlockNumber, model.BlockDetails](
			ttlcache.WithCapacity[model.BlockNumber, model.BlockDetails](capacity),
		),
		fetchTimeout: fetchTimeout,
	}, nil
}

// Get returns the details of block number, or nil when storage does not know the block.
func (c *BlockDetailsCache) Get(ctx context.Context, number model.BlockNumber) (*model.BlockDetails, error) {
	started := time.Now()
	if item := c.items.Get(number); item != nil {
		c.metrics.ObserveLookup(OutcomeHit, started)
		details := item.Value()
		return &details, nil
	}

	// Concurrent misses for one block share a single fetch detached from the caller that started it.
	result := c.inflight.DoChan(strconv.FormatUint(uint64(number), 10), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		return c.fetch(fetchCtx, number, started)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		details, _ := res.Val.(*model.BlockDetails)
		if details == nil {
			return nil, nil
		}
		shared := *details
		return &shared, nil
	}
}

// Len returns the number of cached blocks.
func (c *BlockDetailsCache) Len() int {
	return c.items.Len()
}

func (c *BlockDetailsCache) fetch(ctx context.Context, number model.BlockNumber, started time.Time) (*model.BlockDetails, error) {
	details, err := c.storage.BlockDetails(ctx, number)
	switch {
	case err != nil:
		c.metrics.ObserveLookup(OutcomeError, started)
		return nil, fmt.Errorf("fetch block %d details: %w", number, err)
	case details == nil:
		c.metrics.ObserveLookup(OutcomeNotFound, started)
		return nil, nil
	case !details.IsFinalized():
		c.metrics.ObserveLookup(OutcomePending, started)
		return details, nil
	}

	c.items.Set(number, *details, ttlcache.NoTTL)
	c.metrics.ObserveLookup(OutcomeFinalized, started)
	return details, nil
}
