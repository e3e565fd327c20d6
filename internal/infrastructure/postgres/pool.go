package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/mygameon-ops/pkg/config"
)

// NewPool abre el pool de PostgreSQL y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// buildPoolConfig traduce DBConfig a la configuración de pgxpool.
// Un commit de importación ocupa hasta maxParallelBatches conexiones a la vez,
// por eso MaxConns nunca queda por debajo de ese número.
func buildPoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = int32(max(cfg.MaxConns, maxParallelBatches))
	poolConfig.MinConns = int32(min(max(cfg.MinConns, 0), int(poolConfig.MaxConns)))
	if cfg.ConnLifetimeMinutes > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.ConnLifetimeMinutes) * time.Minute
	}
	poolConfig.MaxConnIdleTime = poolConfig.MaxConnLifetime / 2
	poolConfig.HealthCheckPeriod = time.Minute

	// Redes sin IPv6 (algunos contenedores): resolver sólo registros A.
	if cfg.ForceIPv4 {
		poolConfig.ConnConfig.DialFunc = func(ctx context.Context, _, addr string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "tcp4", addr)
		}
	}

	// NUMERIC -> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}
