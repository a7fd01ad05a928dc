package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

const (
	newerBlocksQuery = `
SELECT` + blockColumns + `
FROM blocks FINAL
WHERE number > ?
ORDER BY number ASC
LIMIT ?`

	olderBlocksQuery = `
SELECT` + blockColumns + `
FROM blocks FINAL
WHERE number < ?
ORDER BY number DESC
LIMIT ?`
)

// BlocksPage returns up to query.Limit blocks beyond query.From, nearest first.
func (r *Repository) BlocksPage(ctx context.Context, query model.PaginationQuery[model.BlockNumber]) ([]model.BlockDetails, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("blocks_page", err, start)
	}()

	var statement string
	switch query.Direction {
	case model.DirectionNewer:
		statement = newerBlocksQuery
	case model.DirectionOlder:
		statement = olderBlocksQuery
	default:
		err = fmt.Errorf("unsupported direction %q", query.Direction)
		return nil, err
	}

	rows, err := r.conn.Query(ctx, statement, uint64(query.From), query.Limit)
	if err != nil {
		return nil, fmt.Errorf("query blocks page: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	blocks := make([]model.BlockDetails, 0, query.Limit)
	for rows.Next() {
		var block model.BlockDetails
		if block, err = scanBlock(rows); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks page: %w", err)
	}

	return blocks, nil
}
