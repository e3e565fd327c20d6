package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
)

// DailyRevenueRepository define el puerto de persistencia para los registros diarios (DIP).
// La clave natural es DateKey; Upsert sobrescribe el registro completo del día.
type DailyRevenueRepository interface {
	// GetByDateKey devuelve nil, nil si el día no existe.
	GetByDateKey(ctx context.Context, dateKey string) (*entity.DailyRevenue, error)
	// ListByDateKeys devuelve los días existentes de la lista, indexados por DateKey.
	ListByDateKeys(ctx context.Context, dateKeys []string) (map[string]*entity.DailyRevenue, error)
	// ListByRange devuelve los días dentro de [start, end] (inclusivo), ordenados por fecha.
	ListByRange(ctx context.Context, start, end time.Time) ([]*entity.DailyRevenue, error)
	Upsert(ctx context.Context, r *entity.DailyRevenue) error
	// UpsertMany escribe en lotes por debajo del límite de operaciones por transacción.
	UpsertMany(ctx context.Context, records []*entity.DailyRevenue) error
	Delete(ctx context.Context, dateKey string) error
}
