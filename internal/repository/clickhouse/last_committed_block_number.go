package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

// LastCommittedBlockNumber returns the highest stored block number, 0 for an empty chain.
func (r *Repository) LastCommittedBlockNumber(ctx context.Context) (model.BlockNumber, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("last_committed_block_number", err, start)
	}()

	const query = `
SELECT coalesce(max(number), toUInt64(0)) AS last_committed
FROM blocks FINAL`

	number, err := r.queryBlockNumber(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("last committed block number: %w", err)
	}
	return number, nil
}

func (r *Repository) queryBlockNumber(ctx context.Context, query string) (_ model.BlockNumber, err error) {
	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		return 0, fmt.Errorf("no rows returned")
	}

	var number uint64
	if err = rows.Scan(&number); err != nil {
		return 0, fmt.Errorf("scan: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate: %w", err)
	}

	return model.BlockNumber(number), nil
}
