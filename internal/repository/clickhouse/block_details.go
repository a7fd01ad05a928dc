package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

// BlockDetails returns the block stored under number, or nil when there is none.
func (r *Repository) BlockDetails(ctx context.Context, number model.BlockNumber) (*model.BlockDetails, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_details", err, start)
	}()

	const query = `
SELECT` + blockColumns + `
FROM blocks FINAL
WHERE number = ?`

	rows, err := r.conn.Query(ctx, query, uint64(number))
	if err != nil {
		return nil, fmt.Errorf("query block details: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate block details: %w", err)
		}
		return nil, nil
	}

	block, err := scanBlock(rows)
	if err != nil {
		return nil, err
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate block details: %w", err)
	}

	return &block, nil
}
