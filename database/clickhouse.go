package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"folio/api/config"
)

type ClickHouseClient struct {
	Conn clickhouse.Conn
	log  *zap.Logger
}

func NewClickHouseDB(ctx context.Context, cfg config.ClickHouseConfig, log *zap.Logger) (*ClickHouseClient, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("clickhouse host is not set")
	}

	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		ClientInfo: clickhouse.ClientInfo{
			Products: []struct {
				Name    string
				Version string
			}{{Name: "folio-api", Version: "1.0.0"}},
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout: 5 * time.Second,
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse via Native TCP: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	log.Info("connected to ClickHouse", zap.String("addr", options.Addr[0]))
	return &ClickHouseClient{Conn: conn, log: log}, nil
}

// Migrate creates the events table. Rows are ordered by created_at so range
// cutoffs prune parts.
func (c *ClickHouseClient) Migrate(ctx context.Context) error {
	err := c.Conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analytics_events (
			id UUID,
			visitor_id String,
			session_id String,
			page_path String,
			country Nullable(String),
			device_type Nullable(String),
			duration_seconds Nullable(Int64),
			section Nullable(String),
			interaction Nullable(String),
			created_at DateTime64(3, 'UTC')
		) ENGINE = MergeTree
		ORDER BY created_at
	`)
	if err != nil {
		return fmt.Errorf("failed to create analytics_events in ClickHouse: %w", err)
	}
	return nil
}

func (c *ClickHouseClient) Close() {
	if c.Conn != nil {
		if err := c.Conn.Close(); err != nil {
			c.log.Error("error closing ClickHouse connection", zap.Error(err))
			return
		}
		c.log.Info("ClickHouse connection closed")
	}
}
