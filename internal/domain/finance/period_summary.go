package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// AdminDayPay pago de un admin en un día: sus turnos del día se suman antes de
// aplicar la política, de modo que dos turnos de 5h pagan como uno de 10h.
type AdminDayPay struct {
	DateKey     string
	AdminName   string
	Shifts      int
	Hours       decimal.Decimal
	GrossIncome decimal.Decimal
	OrdersCount int
	Pay         decimal.Decimal
}

// PeriodSummary totales del período seleccionado. Se recalcula completo en cada consulta.
type PeriodSummary struct {
	TotalGrossRevenue     decimal.Decimal
	TotalVoucherCost      decimal.Decimal
	TotalAdSpend          decimal.Decimal
	TotalNetRevenue       decimal.Decimal
	TotalSuccessfulOrders int
	TotalAdminPay         decimal.Decimal
	NetProfit             decimal.Decimal // TotalNetRevenue - TotalAdminPay
	SalaryPercentage      decimal.Decimal // TotalAdminPay / TotalNetRevenue * 100; 0 si no hay ingreso neto positivo
	AvgRevenuePerOrder    decimal.Decimal // TotalNetRevenue / TotalSuccessfulOrders; 0 sin pedidos
	RevenueDays           int
	AdminPay              []AdminDayPay
}

type adminDayKey struct {
	day   string
	admin string
}

// SummarizePeriod consolida turnos y registros diarios ya filtrados por el rango.
// Los turnos activos se ignoran: su duración e ingreso aún no existen.
func SummarizePeriod(shifts []*entity.AdminShift, revenues []*entity.DailyRevenue) PeriodSummary {
	var s PeriodSummary

	// ── Pago de admins por (día, admin) ───────────────────────────────────────
	groups := make(map[adminDayKey]*AdminDayPay)
	for _, sh := range shifts {
		if sh == nil || sh.Status != entity.ShiftStatusCompleted {
			continue
		}
		day, ok := dates.DateKey(sh.StartTime)
		if !ok {
			continue
		}
		k := adminDayKey{day: day, admin: sh.AdminName}
		g, exists := groups[k]
		if !exists {
			g = &AdminDayPay{DateKey: day, AdminName: sh.AdminName}
			groups[k] = g
		}
		g.Shifts++
		g.Hours = g.Hours.Add(sh.Duration)
		g.GrossIncome = g.GrossIncome.Add(sh.GrossIncome)
		g.OrdersCount += sh.OrdersCount
	}

	s.AdminPay = make([]AdminDayPay, 0, len(groups))
	for _, g := range groups {
		g.Pay = CalculateShiftPay(g.Hours, g.GrossIncome)
		s.TotalAdminPay = s.TotalAdminPay.Add(g.Pay)
		s.AdminPay = append(s.AdminPay, *g)
	}
	sort.Slice(s.AdminPay, func(i, j int) bool {
		if s.AdminPay[i].DateKey != s.AdminPay[j].DateKey {
			return s.AdminPay[i].DateKey < s.AdminPay[j].DateKey
		}
		return s.AdminPay[i].AdminName < s.AdminPay[j].AdminName
	})

	// ── Totales de ingresos ───────────────────────────────────────────────────
	for _, r := range revenues {
		if r == nil {
			continue
		}
		s.RevenueDays++
		s.TotalGrossRevenue = s.TotalGrossRevenue.Add(r.GrossIncome)
		s.TotalVoucherCost = s.TotalVoucherCost.Add(r.VoucherCost)
		s.TotalAdSpend = s.TotalAdSpend.Add(r.AdSpend)
		s.TotalNetRevenue = s.TotalNetRevenue.Add(r.CalculatedNetRevenue)
		s.TotalSuccessfulOrders += r.SuccessfulOrders
	}

	// ── Derivados ─────────────────────────────────────────────────────────────
	s.NetProfit = s.TotalNetRevenue.Sub(s.TotalAdminPay)
	if s.TotalNetRevenue.IsPositive() {
		s.SalaryPercentage = s.TotalAdminPay.Div(s.TotalNetRevenue).Mul(hundred).Round(2)
	}
	if s.TotalSuccessfulOrders > 0 {
		s.AvgRevenuePerOrder = s.TotalNetRevenue.Div(decimal.NewFromInt(int64(s.TotalSuccessfulOrders))).Round(2)
	}

	return s
}
