package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/mygameon-ops/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewTxRunner construye el runner con el pool. batchSize se propaga al repo de ingresos.
func NewTxRunner(pool *pgxpool.Pool, batchSize int) *TxRunner {
	return &TxRunner{pool: pool, batchSize: batchSize}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Si fn devuelve error no queda ninguna escritura aplicada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	revenueRepo repository.DailyRevenueRepository,
	shiftRepo repository.AdminShiftRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	revenueRepo := NewDailyRevenueRepository(tx, r.batchSize)
	shiftRepo := NewAdminShiftRepository(tx)

	if err := fn(revenueRepo, shiftRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
