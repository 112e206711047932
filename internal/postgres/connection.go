package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	"github.com/rs/zerolog/log"
)

type DBConnection struct {
	Conn   DBConn
	pgxCon *pgxpool.Pool
}

// Connect opens a pool of read-only sessions. The catalog is only read, the schema is owned by the card importer.
func Connect(ctx context.Context, cfg config.Database) (*DBConnection, error) {
	return connect(ctx, cfg, true)
}

func connect(ctx context.Context, cfg config.Database, readOnly bool) (*DBConnection, error) {
	c, err := pgxpool.ParseConfig(cfg.ConnectionURL())
	if err != nil {
		return nil, err
	}
	c.MaxConnLifetime = time.Minute * 5
	c.MaxConnIdleTime = time.Second * 30
	c.HealthCheckPeriod = time.Second * 30
	c.MaxConns = cfg.MaxConnectionsOrDefault()
	if readOnly {
		c.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"
	}
	log.Info().Msgf("max database connection is set to %d", c.MaxConns)

	pool, err := pgxpool.ConnectConfig(ctx, c)
	if err != nil {
		return nil, err
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, err
	}

	return &DBConnection{
		Conn:   pool,
		pgxCon: pool,
	}, nil
}

func (d *DBConnection) Close() error {
	d.pgxCon.Close()

	return nil
}

// Cleanup removes all catalog rows. Only used by tests with a writable connection.
func (d *DBConnection) Cleanup(ctx context.Context) error {
	tables := []string{
		"card_image",
		"card",
		"card_set",
	}
	_, err := d.Conn.Exec(ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(tables, ",")))

	return err
}

// DBConn implemented by pgx.Conn and pgx.Tx
type DBConn interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...interface{}) pgx.Row
}
