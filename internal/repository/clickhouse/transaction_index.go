package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

// TransactionIndex returns the position of transaction hash inside block number.
// found is false when the block holds no such transaction.
func (r *Repository) TransactionIndex(ctx context.Context, number model.BlockNumber, hash model.TxHash) (index uint32, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("transaction_index", err, start)
	}()

	const query = `
SELECT block_index
FROM block_transactions FINAL
WHERE block_number = ? AND tx_hash = CAST(? AS FixedString(64))
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, uint64(number), hash.String())
	if err != nil {
		return 0, false, fmt.Errorf("query transaction index: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return 0, false, fmt.Errorf("iterate transaction index: %w", err)
		}
		return 0, false, nil
	}

	if err = rows.Scan(&index); err != nil {
		return 0, false, fmt.Errorf("scan transaction index: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate transaction index: %w", err)
	}

	return index, true, nil
}
