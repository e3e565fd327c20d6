package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/repository"
)

var _ repository.DailyRevenueRepository = (*DailyRevenueRepo)(nil)

// Lotes de importación en vuelo a la vez cuando el repo corre sobre el pool.
const maxParallelBatches = 4

// DefaultBatchSize operaciones por lote cuando no se configura otro valor.
const DefaultBatchSize = 400

const dailyRevenueColumns = `
	date_key, date, gross_income, total_orders, canceled_orders, canceled_value,
	returned_orders, returned_value, voucher_cost, ad_spend, successful_orders,
	calculated_net_revenue, month, year, created_at, updated_at`

const upsertDailyRevenueSQL = `
	INSERT INTO daily_revenues (` + dailyRevenueColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (date_key) DO UPDATE SET
		date = EXCLUDED.date,
		gross_income = EXCLUDED.gross_income,
		total_orders = EXCLUDED.total_orders,
		canceled_orders = EXCLUDED.canceled_orders,
		canceled_value = EXCLUDED.canceled_value,
		returned_orders = EXCLUDED.returned_orders,
		returned_value = EXCLUDED.returned_value,
		voucher_cost = EXCLUDED.voucher_cost,
		ad_spend = EXCLUDED.ad_spend,
		successful_orders = EXCLUDED.successful_orders,
		calculated_net_revenue = EXCLUDED.calculated_net_revenue,
		month = EXCLUDED.month,
		year = EXCLUDED.year,
		updated_at = EXCLUDED.updated_at`

// DailyRevenueRepo implementación de DailyRevenueRepository (usable con pool o tx).
type DailyRevenueRepo struct {
	q         Querier
	batchSize int
}

// NewDailyRevenueRepository construye el adaptador. Pasar pool o tx (Querier).
// batchSize <= 0 usa DefaultBatchSize.
func NewDailyRevenueRepository(q Querier, batchSize int) *DailyRevenueRepo {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &DailyRevenueRepo{q: q, batchSize: batchSize}
}

// GetByDateKey obtiene el registro del día; nil, nil si no existe.
func (r *DailyRevenueRepo) GetByDateKey(ctx context.Context, dateKey string) (*entity.DailyRevenue, error) {
	query := `SELECT ` + dailyRevenueColumns + ` FROM daily_revenues WHERE date_key = $1`
	rec, err := scanDailyRevenue(r.q.QueryRow(ctx, query, dateKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily revenue: %w", err)
	}
	return rec, nil
}

// ListByDateKeys trae en una sola consulta los días existentes de la lista.
func (r *DailyRevenueRepo) ListByDateKeys(ctx context.Context, dateKeys []string) (map[string]*entity.DailyRevenue, error) {
	out := make(map[string]*entity.DailyRevenue, len(dateKeys))
	if len(dateKeys) == 0 {
		return out, nil
	}
	query := `SELECT ` + dailyRevenueColumns + ` FROM daily_revenues WHERE date_key = ANY($1)`
	rows, err := r.q.Query(ctx, query, dateKeys)
	if err != nil {
		return nil, fmt.Errorf("list daily revenues by key: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		rec, err := scanDailyRevenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		out[rec.DateKey] = rec
	}
	return out, rows.Err()
}

// ListByRange lista los días de [start, end] por día calendario, ordenados por fecha.
func (r *DailyRevenueRepo) ListByRange(ctx context.Context, start, end time.Time) ([]*entity.DailyRevenue, error) {
	from, _ := dates.ToLocalMidnight(start)
	to := dates.EndOfDay(end)
	query := `SELECT ` + dailyRevenueColumns + `
		FROM daily_revenues WHERE date >= $1 AND date <= $2 ORDER BY date`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily revenues: %w", err)
	}
	defer rows.Close()
	var list []*entity.DailyRevenue
	for rows.Next() {
		rec, err := scanDailyRevenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Upsert inserta o reemplaza el registro completo del día.
func (r *DailyRevenueRepo) Upsert(ctx context.Context, rec *entity.DailyRevenue) error {
	if _, err := r.q.Exec(ctx, upsertDailyRevenueSQL, upsertArgs(rec)...); err != nil {
		return fmt.Errorf("upsert daily revenue %s: %w", rec.DateKey, err)
	}
	return nil
}

// UpsertMany escribe los registros en lotes de batchSize, cada lote atómico.
// Sobre el pool los lotes corren en paralelo; dentro de una tx van en serie
// sobre la misma conexión (savepoint por lote).
func (r *DailyRevenueRepo) UpsertMany(ctx context.Context, records []*entity.DailyRevenue) error {
	chunks := chunk(records, r.batchSize)
	if len(chunks) == 0 {
		return nil
	}

	if _, onPool := r.q.(*pgxpool.Pool); !onPool {
		for i, c := range chunks {
			if err := r.upsertBatch(ctx, c); err != nil {
				return fmt.Errorf("lote %d/%d: %w", i+1, len(chunks), err)
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelBatches)
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			if err := r.upsertBatch(gctx, c); err != nil {
				return fmt.Errorf("lote %d/%d: %w", i+1, len(chunks), err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *DailyRevenueRepo) upsertBatch(ctx context.Context, records []*entity.DailyRevenue) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, rec := range records {
			batch.Queue(upsertDailyRevenueSQL, upsertArgs(rec)...)
		}
		br := tx.SendBatch(ctx, batch)
		for _, rec := range records {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("upsert daily revenue %s: %w", rec.DateKey, err)
			}
		}
		return br.Close()
	})
}

// Delete elimina el registro del día. No falla si no existe.
func (r *DailyRevenueRepo) Delete(ctx context.Context, dateKey string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM daily_revenues WHERE date_key = $1`, dateKey); err != nil {
		return fmt.Errorf("delete daily revenue: %w", err)
	}
	return nil
}

func upsertArgs(rec *entity.DailyRevenue) []any {
	return []any{
		rec.DateKey, rec.Date, rec.GrossIncome, rec.TotalOrders, rec.CanceledOrders, rec.CanceledValue,
		rec.ReturnedOrders, rec.ReturnedValue, rec.VoucherCost, rec.AdSpend, rec.SuccessfulOrders,
		rec.CalculatedNetRevenue, rec.Month, rec.Year, rec.CreatedAt, rec.UpdatedAt,
	}
}

func scanDailyRevenue(row pgx.Row) (*entity.DailyRevenue, error) {
	var rec entity.DailyRevenue
	err := row.Scan(
		&rec.DateKey, &rec.Date, &rec.GrossIncome, &rec.TotalOrders, &rec.CanceledOrders, &rec.CanceledValue,
		&rec.ReturnedOrders, &rec.ReturnedValue, &rec.VoucherCost, &rec.AdSpend, &rec.SuccessfulOrders,
		&rec.CalculatedNetRevenue, &rec.Month, &rec.Year, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	// TIMESTAMPTZ vuelve en la zona de la sesión; la fecha de negocio es la medianoche local.
	if d, ok := dates.ToLocalMidnight(rec.Date); ok {
		rec.Date = d
	}
	return &rec, nil
}

// chunk parte records en porciones de como mucho size elementos.
func chunk[T any](records []T, size int) [][]T {
	var out [][]T
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		out = append(out, records[start:end])
	}
	return out
}
