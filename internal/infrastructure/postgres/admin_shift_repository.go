package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/repository"
)

var _ repository.AdminShiftRepository = (*AdminShiftRepo)(nil)

// uqSingleActiveShift índice parcial que admite un único turno 'active'.
const uqSingleActiveShift = "uq_admin_shifts_single_active"

const adminShiftColumns = `
	id, admin_name, start_time, end_time, status, duration,
	gross_income, orders_count, created_at, updated_at`

// AdminShiftRepo implementación de AdminShiftRepository (usable con pool o tx).
type AdminShiftRepo struct {
	q Querier
}

// NewAdminShiftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdminShiftRepository(q Querier) *AdminShiftRepo {
	return &AdminShiftRepo{q: q}
}

// Create persiste un turno nuevo. El índice parcial rechaza un segundo turno activo.
func (r *AdminShiftRepo) Create(ctx context.Context, s *entity.AdminShift) error {
	query := `
		INSERT INTO admin_shifts (` + adminShiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.AdminName, s.StartTime, s.EndTime, s.Status, s.Duration,
		s.GrossIncome, s.OrdersCount, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == uqSingleActiveShift {
				return domain.ErrActiveShiftExists
			}
			return domain.ErrConflict
		}
		return fmt.Errorf("insert admin shift: %w", err)
	}
	return nil
}

// GetByID obtiene un turno por ID; nil, nil si no existe.
func (r *AdminShiftRepo) GetByID(ctx context.Context, id string) (*entity.AdminShift, error) {
	query := `SELECT ` + adminShiftColumns + ` FROM admin_shifts WHERE id = $1`
	s, err := scanAdminShift(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin shift: %w", err)
	}
	return s, nil
}

// GetActive devuelve el turno activo o nil, nil si no hay.
func (r *AdminShiftRepo) GetActive(ctx context.Context) (*entity.AdminShift, error) {
	query := `SELECT ` + adminShiftColumns + ` FROM admin_shifts WHERE status = $1 LIMIT 1`
	s, err := scanAdminShift(r.q.QueryRow(ctx, query, entity.ShiftStatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active shift: %w", err)
	}
	return s, nil
}

// Complete cierra el turno sólo si sigue activo.
func (r *AdminShiftRepo) Complete(ctx context.Context, s *entity.AdminShift) error {
	query := `
		UPDATE admin_shifts
		SET end_time = $2, status = $3, duration = $4, gross_income = $5, orders_count = $6, updated_at = $7
		WHERE id = $1 AND status = $8`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.EndTime, entity.ShiftStatusCompleted, s.Duration, s.GrossIncome, s.OrdersCount, s.UpdatedAt,
		entity.ShiftStatusActive,
	)
	if err != nil {
		return fmt.Errorf("complete admin shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, s.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return domain.ErrShiftAlreadyComplete
	}
	s.Status = entity.ShiftStatusCompleted
	return nil
}

// ListCompletedByRange turnos completados cuyo inicio cae en [start, end] por día calendario.
func (r *AdminShiftRepo) ListCompletedByRange(ctx context.Context, start, end time.Time) ([]*entity.AdminShift, error) {
	return r.listByRange(ctx, start, end, entity.ShiftStatusCompleted)
}

// ListByRange todos los turnos (activos y completados) iniciados en [start, end].
func (r *AdminShiftRepo) ListByRange(ctx context.Context, start, end time.Time) ([]*entity.AdminShift, error) {
	return r.listByRange(ctx, start, end, "")
}

func (r *AdminShiftRepo) listByRange(ctx context.Context, start, end time.Time, status string) ([]*entity.AdminShift, error) {
	from, _ := dates.ToLocalMidnight(start)
	to := dates.EndOfDay(end)
	query := `SELECT ` + adminShiftColumns + `
		FROM admin_shifts
		WHERE start_time >= $1 AND start_time <= $2 AND ($3::text = '' OR status = $3::text)
		ORDER BY start_time`
	rows, err := r.q.Query(ctx, query, from, to, status)
	if err != nil {
		return nil, fmt.Errorf("list admin shifts: %w", err)
	}
	defer rows.Close()
	var list []*entity.AdminShift
	for rows.Next() {
		s, err := scanAdminShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin shift: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanAdminShift(row pgx.Row) (*entity.AdminShift, error) {
	var s entity.AdminShift
	err := row.Scan(
		&s.ID, &s.AdminName, &s.StartTime, &s.EndTime, &s.Status, &s.Duration,
		&s.GrossIncome, &s.OrdersCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
