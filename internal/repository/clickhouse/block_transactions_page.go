package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

const (
	newerTransactionsQuery = `
SELECT` + transactionColumns + `
FROM block_transactions FINAL
WHERE block_number = ? AND block_index > ?
ORDER BY block_index ASC
LIMIT ?`

	olderTransactionsQuery = `
SELECT` + transactionColumns + `
FROM block_transactions FINAL
WHERE block_number = ? AND block_index < ?
ORDER BY block_index DESC
LIMIT ?`
)

// BlockTransactionsPage returns up to limit transactions of block number beyond position index, nearest first.
func (r *Repository) BlockTransactionsPage(ctx context.Context, number model.BlockNumber, index, limit uint32, direction model.Direction) ([]model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_transactions_page", err, start)
	}()

	var statement string
	switch direction {
	case model.DirectionNewer:
		statement = newerTransactionsQuery
	case model.DirectionOlder:
		statement = olderTransactionsQuery
	default:
		err = fmt.Errorf("unsupported direction %q", direction)
		return nil, err
	}

	rows, err := r.conn.Query(ctx, statement, uint64(number), index, limit)
	if err != nil {
		return nil, fmt.Errorf("query block transactions page: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	txs := make([]model.Transaction, 0, limit)
	for rows.Next() {
		var tx model.Transaction
		if tx, err = scanTransaction(rows); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate block transactions page: %w", err)
	}

	return txs, nil
}
