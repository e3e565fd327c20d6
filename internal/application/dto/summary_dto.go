package dto

import "github.com/shopspring/decimal"

// PeriodSummaryResponse respuesta de GET /api/summary.
type PeriodSummaryResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	DateLabel string `json:"date_label"` // ej: "Januari 2024"

	TotalGrossRevenue     decimal.Decimal `json:"total_gross_revenue"`
	TotalVoucherCost      decimal.Decimal `json:"total_voucher_cost"`
	TotalAdSpend          decimal.Decimal `json:"total_ad_spend"`
	TotalNetRevenue       decimal.Decimal `json:"total_net_revenue"`
	TotalSuccessfulOrders int             `json:"total_successful_orders"`
	TotalAdminPay         decimal.Decimal `json:"total_admin_pay"`
	NetProfit             decimal.Decimal `json:"net_profit"`
	SalaryPercentage      decimal.Decimal `json:"salary_percentage"`
	AvgRevenuePerOrder    decimal.Decimal `json:"avg_revenue_per_order"`
	RevenueDays           int             `json:"revenue_days"`

	AdminPay []AdminDayPayDTO `json:"admin_pay"`
}

// AdminDayPayDTO pago de un admin en un día (turnos del día sumados).
type AdminDayPayDTO struct {
	Date        string          `json:"date"`
	AdminName   string          `json:"admin_name"`
	Shifts      int             `json:"shifts"`
	Hours       decimal.Decimal `json:"hours"`
	GrossIncome decimal.Decimal `json:"gross_income"`
	OrdersCount int             `json:"orders_count"`
	Pay         decimal.Decimal `json:"pay"`
}
