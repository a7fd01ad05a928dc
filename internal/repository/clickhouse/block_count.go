package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// BlockCount returns the number of stored blocks.
func (r *Repository) BlockCount(ctx context.Context) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_count", err, start)
	}()

	const query = `
SELECT count() AS blocks
FROM blocks FINAL`

	count, err := r.queryCount(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("count blocks: %w", err)
	}
	return count, nil
}

func (r *Repository) queryCount(ctx context.Context, query string, args ...any) (_ uint64, err error) {
	rows, err := r.conn.Query(ctx, query, args...)
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

	var count uint64
	if err = rows.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate: %w", err)
	}

	return count, nil
}
