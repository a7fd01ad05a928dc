// Package clickhouse stores explorer blocks and transactions in ClickHouse.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
//go:generate mockgen -destination=driver_mocks_test.go -package=$GOPACKAGE github.com/ClickHouse/clickhouse-go/v2/lib/driver Conn,Rows

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

type Repository struct {
	conn    driver.Conn
	metrics Metrics
}

func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: conn, metrics: metrics}, nil
}

// Ping checks that ClickHouse answers.
func (r *Repository) Ping(ctx context.Context) error {
	start := time.Now()
	err := r.conn.Ping(ctx)
	r.metrics.Observe("ping", err, start)
	if err != nil {
		return fmt.Errorf("ping clickhouse: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.conn.Close()
}
