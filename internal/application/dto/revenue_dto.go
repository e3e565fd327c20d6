package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRevenueResponse salida de un registro diario.
type DailyRevenueResponse struct {
	Date                 string          `json:"date"` // YYYY-MM-DD
	GrossIncome          decimal.Decimal `json:"gross_income"`
	TotalOrders          int             `json:"total_orders"`
	CanceledOrders       int             `json:"canceled_orders"`
	CanceledValue        decimal.Decimal `json:"canceled_value"`
	ReturnedOrders       int             `json:"returned_orders"`
	ReturnedValue        decimal.Decimal `json:"returned_value"`
	VoucherCost          decimal.Decimal `json:"voucher_cost"`
	AdSpend              decimal.Decimal `json:"ad_spend"`
	SuccessfulOrders     int             `json:"successful_orders"`
	CalculatedNetRevenue decimal.Decimal `json:"calculated_net_revenue"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// DailyRevenueListResponse registros de un rango, ordenados por fecha.
type DailyRevenueListResponse struct {
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Items     []DailyRevenueResponse `json:"items"`
	Count     int                    `json:"count"`
}

// UpdateDailyRevenueRequest edición manual: sólo se aplican los campos presentes.
// AdSpend no se edita a mano; proviene siempre de una asignación confirmada.
type UpdateDailyRevenueRequest struct {
	GrossIncome    *decimal.Decimal `json:"gross_income"`
	TotalOrders    *int             `json:"total_orders"`
	CanceledOrders *int             `json:"canceled_orders"`
	CanceledValue  *decimal.Decimal `json:"canceled_value"`
	ReturnedOrders *int             `json:"returned_orders"`
	ReturnedValue  *decimal.Decimal `json:"returned_value"`
	VoucherCost    *decimal.Decimal `json:"voucher_cost"`
}

// ImportResultResponse resultado de una importación de reporte.
type ImportResultResponse struct {
	ParsedRows int    `json:"parsed_rows"`
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}
