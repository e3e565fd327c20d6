package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRevenue representa el consolidado de ventas de un día calendario (medianoche local).
// La fecha es la clave única: todas las importaciones hacen upsert por DateKey.
//
// Los campos opcionales de los reportes arrancan en cero; VoucherCost y AdSpend
// pueden llegar por separado del reporte de ventas.
type DailyRevenue struct {
	Date           time.Time
	DateKey        string // YYYY-MM-DD
	GrossIncome    decimal.Decimal
	TotalOrders    int
	CanceledOrders int
	CanceledValue  decimal.Decimal
	ReturnedOrders int
	ReturnedValue  decimal.Decimal
	VoucherCost    decimal.Decimal
	AdSpend        decimal.Decimal // siempre proviene de una asignación confirmada

	// Derivados y almacenados; son caché de la fórmula, nunca fuente de verdad.
	SuccessfulOrders     int
	CalculatedNetRevenue decimal.Decimal

	Month     int
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalesReportRow fila normalizada del reporte de ventas.
type SalesReportRow struct {
	Date           time.Time
	GrossIncome    decimal.Decimal
	TotalOrders    int
	CanceledOrders int
	CanceledValue  decimal.Decimal
	ReturnedOrders int
	ReturnedValue  decimal.Decimal
}

// VoucherReportRow costo de vouchers del vendedor consolidado por día.
type VoucherReportRow struct {
	Date        time.Time
	VoucherCost decimal.Decimal
}

// AdSpendReport total de publicidad de un período completo (reporte CSV de anuncios).
type AdSpendReport struct {
	Start          time.Time
	End            time.Time
	PeriodDetected bool // false si el archivo no trae el rango "DD/MM/YYYY - DD/MM/YYYY"
	TotalAdSpend   decimal.Decimal
	CostColumn     int // índice de la columna usada para sumar
	RowsSummed     int
}
