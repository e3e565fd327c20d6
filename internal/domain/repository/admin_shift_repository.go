package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
)

// AdminShiftRepository define el puerto de persistencia para turnos de admins (DIP).
type AdminShiftRepository interface {
	// Create devuelve domain.ErrActiveShiftExists si ya hay un turno activo.
	Create(ctx context.Context, shift *entity.AdminShift) error
	GetByID(ctx context.Context, id string) (*entity.AdminShift, error)
	// GetActive devuelve nil, nil si no hay turno activo.
	GetActive(ctx context.Context) (*entity.AdminShift, error)
	// Complete cierra un turno activo; devuelve domain.ErrShiftAlreadyComplete si ya estaba cerrado.
	Complete(ctx context.Context, shift *entity.AdminShift) error
	// ListCompletedByRange turnos completados cuyo inicio cae en [start, end] (inclusivo por día).
	ListCompletedByRange(ctx context.Context, start, end time.Time) ([]*entity.AdminShift, error)
	ListByRange(ctx context.Context, start, end time.Time) ([]*entity.AdminShift, error)
}
