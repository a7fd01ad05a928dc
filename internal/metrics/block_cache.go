package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blockCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "block_cache",
		Name:      "lookups_total",
		Help:      "Count of block details lookups by outcome.",
	}, []string{"outcome"})
	blockCacheLookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "block_cache",
		Name:      "lookup_duration_seconds",
		Help:      "Duration of block details lookups.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"outcome"})
)

// BlockCache tracks hits and storage fetches of the block details cache.
type BlockCache struct{}

// NewBlockCache creates a BlockCache metrics collector.
func NewBlockCache() *BlockCache {
	return &BlockCache{}
}

// ObserveLookup records a lookup outcome ("hit", "finalized", "pending", "not_found", "error").
func (m BlockCache) ObserveLookup(outcome string, started time.Time) {
	if outcome == "" {
		outcome = "unknown"
	}

	blockCacheLookupsTotal.WithLabelValues(outcome).Inc()
	blockCacheLookupDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
}
