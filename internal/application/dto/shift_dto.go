package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartShiftRequest AdminName vacío usa el admin del token.
type StartShiftRequest struct {
	AdminName string `json:"admin_name"`
}

// EndShiftRequest resultados del turno que se cierra.
type EndShiftRequest struct {
	GrossIncome decimal.Decimal `json:"gross_income"`
	OrdersCount int             `json:"orders_count"`
}

// ShiftResponse salida de un turno.
type ShiftResponse struct {
	ID          string           `json:"id"`
	AdminName   string           `json:"admin_name"`
	StartTime   time.Time        `json:"start_time"`
	EndTime     *time.Time       `json:"end_time,omitempty"`
	Status      string           `json:"status"`
	Duration    decimal.Decimal  `json:"duration_hours"`
	GrossIncome decimal.Decimal  `json:"gross_income"`
	OrdersCount int              `json:"orders_count"`
	ShiftPay    *decimal.Decimal `json:"shift_pay,omitempty"` // pago del turno aislado; el pago real se calcula por día
}

// ActiveShiftResponse respuesta de GET /api/shifts/active.
type ActiveShiftResponse struct {
	Active bool           `json:"active"`
	Shift  *ShiftResponse `json:"shift,omitempty"`
}

// ShiftListResponse turnos de un rango, ordenados por inicio.
type ShiftListResponse struct {
	Items []ShiftResponse `json:"items"`
	Count int             `json:"count"`
}
