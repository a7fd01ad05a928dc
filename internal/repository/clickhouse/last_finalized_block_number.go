package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

// LastFinalizedBlockNumber returns the highest verified block number, 0 when nothing is verified yet.
func (r *Repository) LastFinalizedBlockNumber(ctx context.Context) (model.BlockNumber, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("last_finalized_block_number", err, start)
	}()

	const query = `
SELECT coalesce(max(number), toUInt64(0)) AS last_finalized
FROM blocks FINAL
WHERE verify_tx_hash IS NOT NULL AND verified_at IS NOT NULL`

	number, err := r.queryBlockNumber(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("last finalized block number: %w", err)
	}
	return number, nil
}
