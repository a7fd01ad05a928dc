package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

// BlockTransactionCount returns the number of transactions stored for block number.
func (r *Repository) BlockTransactionCount(ctx context.Context, number model.BlockNumber) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_transaction_count", err, start)
	}()

	const query = `
SELECT count() AS transactions
FROM block_transactions FINAL
WHERE block_number = ?`

	count, err := r.queryCount(ctx, query, uint64(number))
	if err != nil {
		return 0, fmt.Errorf("count transactions of block %d: %w", number, err)
	}
	return count, nil
}
