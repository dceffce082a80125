package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"folio/api/config"
)

type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) bindType() int {
	if d == SQLite {
		return sqlx.QUESTION
	}
	return sqlx.DOLLAR
}

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// DBClient is the content row store connection.
type DBClient struct {
	DB      *sqlx.DB
	Dialect Dialect
	log     *zap.Logger
}

// NewSQLDB opens and pings the database selected by cfg.Driver.
func NewSQLDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DBClient, error) {
	dialect := Postgres
	if cfg.Driver == "sqlite" {
		dialect = SQLite
	}

	db, err := sqlx.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error opening %s connection: %w", cfg.Driver, err)
	}

	if dialect == SQLite {
		// a single connection keeps in-memory databases shared and serializes writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database (ping failed): %w", err)
	}

	log.Info("connected to database", zap.String("driver", cfg.Driver))
	return &DBClient{DB: db, Dialect: dialect, log: log}, nil
}

// Rebind rewrites ? placeholders into the dialect's form.
func (c *DBClient) Rebind(query string) string {
	return Rebind(c.Dialect, query)
}

func (c *DBClient) Close() {
	if c.DB == nil {
		return
	}
	if err := c.DB.Close(); err != nil {
		c.log.Error("error closing database connection", zap.Error(err))
		return
	}
	c.log.Info("database connection closed")
}

// Rebind replaces each ? with $1, $2, ... for Postgres. SQLite keeps ?.
func Rebind(d Dialect, query string) string {
	return sqlx.Rebind(d.bindType(), query)
}
