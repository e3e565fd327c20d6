package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un turno.
const (
	ShiftStatusActive    = "active"
	ShiftStatusCompleted = "completed"
)

// AdminShift un segmento continuo de trabajo de un admin.
// EndTime es nil mientras el turno está activo. Duration (horas), GrossIncome y
// OrdersCount se fijan una única vez al cerrar el turno.
type AdminShift struct {
	ID          string
	AdminName   string
	StartTime   time.Time
	EndTime     *time.Time
	Status      string
	Duration    decimal.Decimal
	GrossIncome decimal.Decimal
	OrdersCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si el turno sigue abierto.
func (s *AdminShift) IsActive() bool {
	return s.Status == ShiftStatusActive
}
